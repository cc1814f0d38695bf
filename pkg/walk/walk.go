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

// Package walk enumerates the files of a directory tree and selects the ones
// a run may rewrite.
package walk

import (
	"iter"
	"os"
	"path/filepath"
	"slices"

	"gitlab.com/tozd/go/errors"
)

// 📁 Batch is one directory and the regular files directly inside it
type Batch struct {
	Dir   string   // Directory path, as reached from the root
	Names []string // Regular file names, sorted
}

// JoinPath joins dir and name with exactly one separator. Unlike
// filepath.Join it does not clean dir, so paths keep the shape the user gave.
func JoinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	if os.IsPathSeparator(dir[len(dir)-1]) {
		return dir + name
	}
	return dir + string(os.PathSeparator) + name
}

// 🚶 Walk returns the directories under root, parents before children and
// siblings in name order. Every range over the sequence walks the tree again
// from the top.
//
// Symbolic links are never followed and no directory is yielded twice. When
// root is a regular file a single batch holding that file is yielded. A
// directory that cannot be read ends the sequence with its error.
func Walk(root string) iter.Seq2[Batch, error] {
	return func(yield func(Batch, error) bool) {
		info, err := os.Stat(root)
		if err != nil {
			yield(Batch{Dir: root}, errors.Errorf("reading search path %s: %w", root, err))
			return
		}

		if !info.IsDir() {
			if info.Mode().IsRegular() {
				yield(Batch{Dir: filepath.Dir(root), Names: []string{filepath.Base(root)}}, nil)
			}
			return
		}

		visited := make(map[string]struct{})
		stack := []string{root}

		for len(stack) > 0 {
			dir := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			key := filepath.Clean(dir)
			if _, seen := visited[key]; seen {
				continue
			}
			visited[key] = struct{}{}

			entries, err := os.ReadDir(dir)
			if err != nil {
				yield(Batch{Dir: dir}, errors.Errorf("reading directory %s: %w", dir, err))
				return
			}

			batch := Batch{Dir: dir}
			var subdirs []string
			for _, entry := range entries {
				switch {
				case entry.IsDir():
					subdirs = append(subdirs, JoinPath(dir, entry.Name()))
				case entry.Type().IsRegular():
					batch.Names = append(batch.Names, entry.Name())
				}
			}

			if !yield(batch, nil) {
				return
			}

			// os.ReadDir sorts by name; push in reverse so the first pops first
			slices.Reverse(subdirs)
			stack = append(stack, subdirs...)
		}
	}
}
