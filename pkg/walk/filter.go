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

package walk

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/replacer/pkg/config"
)

// Skip reasons reported by Filter.Apply.
const (
	ReasonBackup   = "backup artifact"
	ReasonExcluded = "excluded"
	ReasonIgnored  = "ignored by pattern"
)

// ⏭️ Skip is a file the filter rejected
type Skip struct {
	Path   string
	Reason string
}

// 🔍 Filter decides which files of a batch become tasks
type Filter struct {
	root    string
	ignore  []string
	exclude map[string]struct{}
}

// 🏭 NewFilter builds a filter for files under root.
//
// ignore holds doublestar patterns matched against the slash separated path
// relative to root. exclude lists exact files to leave alone, such as the
// run's own log file.
func NewFilter(root string, ignore []string, exclude ...string) *Filter {
	f := &Filter{
		root:    root,
		ignore:  ignore,
		exclude: make(map[string]struct{}, len(exclude)),
	}
	for _, path := range exclude {
		if path == "" {
			continue
		}
		f.exclude[absPath(path)] = struct{}{}
	}
	return f
}

// IsBackup reports whether name is a backup artifact of any run.
func IsBackup(name string) bool {
	return strings.HasSuffix(name, config.BackupSuffix)
}

// Apply splits a batch into the paths to rewrite and the ones to skip.
func (f *Filter) Apply(b Batch) ([]string, []Skip) {
	var (
		tasks   []string
		skipped []Skip
	)

	for _, name := range b.Names {
		path := JoinPath(b.Dir, name)
		if reason, skip := f.reason(path, name); skip {
			skipped = append(skipped, Skip{Path: path, Reason: reason})
			continue
		}
		tasks = append(tasks, path)
	}

	return tasks, skipped
}

func (f *Filter) reason(path, name string) (string, bool) {
	if IsBackup(name) {
		return ReasonBackup, true
	}

	if _, ok := f.exclude[absPath(path)]; ok {
		return ReasonExcluded, true
	}

	if len(f.ignore) > 0 {
		rel, err := filepath.Rel(f.root, path)
		if err != nil {
			rel = path
		}
		// a file root is matched by its own name
		if rel == "." {
			rel = name
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range f.ignore {
			if doublestar.MatchUnvalidated(pattern, rel) {
				return ReasonIgnored, true
			}
		}
	}

	return "", false
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
