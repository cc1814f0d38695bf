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

package config

import "time"

// ProcessIDLayout renders a process id with one second resolution.
// Two runs started in the same second share an id.
const ProcessIDLayout = "01022006-150405"

// 🔑 NewProcessID derives the id used to name the log and backups of a run
func NewProcessID(now time.Time) string {
	return now.Format(ProcessIDLayout)
}
