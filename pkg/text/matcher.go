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

// Package text holds the word-boundary matcher used to rewrite lines.
package text

import (
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔤 wordBoundary is asserted in front of the search text only.
//
// Nothing is asserted after the match, so "cat" also matches the start of
// "category". Keep it that way unless the trailing edge is meant to change
// for every user of the tool.
const wordBoundary = `\b`

// LineReplacer rewrites a single line of text.
type LineReplacer interface {
	// ReplaceLine returns the rewritten line and the number of substitutions.
	// With zero substitutions the returned line is the input line.
	ReplaceLine(line string) (string, int)
}

// 🎯 WordReplacer substitutes search text found at a leading word boundary
type WordReplacer struct {
	search      string
	replacement string
	pattern     *regexp.Regexp
}

var _ LineReplacer = (*WordReplacer)(nil)

// 🏭 NewWordReplacer compiles search into a leading-boundary pattern.
//
// The search text is used as a pattern fragment as given; metacharacters are
// not escaped. The replacement is always inserted literally.
func NewWordReplacer(search, replacement string) (*WordReplacer, error) {
	if search == "" {
		return nil, errors.New("search text is required")
	}

	pattern, err := regexp.Compile(wordBoundary + search)
	if err != nil {
		return nil, errors.Errorf("compiling search text %q: %w", search, err)
	}

	return &WordReplacer{
		search:      search,
		replacement: replacement,
		pattern:     pattern,
	}, nil
}

// ReplaceLine implements LineReplacer.ReplaceLine.
//
// Matches are found left to right and never overlap.
func (r *WordReplacer) ReplaceLine(line string) (string, int) {
	matches := r.pattern.FindAllStringIndex(line, -1)
	if len(matches) == 0 {
		return line, 0
	}

	var b strings.Builder
	if n := len(line) + len(matches)*(len(r.replacement)-len(r.search)); n > 0 {
		b.Grow(n)
	}

	last := 0
	for _, m := range matches {
		b.WriteString(line[last:m[0]])
		b.WriteString(r.replacement)
		last = m[1]
	}
	b.WriteString(line[last:])

	return b.String(), len(matches)
}

// Pattern returns the compiled expression, for diagnostics.
func (r *WordReplacer) Pattern() string {
	return r.pattern.String()
}
