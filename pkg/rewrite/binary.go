// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rewrite

// 🔍 binarySample is how much of a file is inspected before deciding
const binarySample = 8000

// IsBinary reports whether content looks binary: a null byte within the
// first binarySample bytes. Content starting with a UTF-16 or UTF-32 byte
// order mark is treated as text, since those encodings are full of nulls.
func IsBinary(content []byte) bool {
	if len(content) >= 2 {
		if (content[0] == 0xFF && content[1] == 0xFE) ||
			(content[0] == 0xFE && content[1] == 0xFF) {
			return false
		}
	}
	if len(content) >= 4 {
		if content[0] == 0x00 && content[1] == 0x00 && content[2] == 0xFE && content[3] == 0xFF {
			return false
		}
	}

	n := min(len(content), binarySample)
	for i := range n {
		if content[i] == 0 {
			return true
		}
	}
	return false
}
