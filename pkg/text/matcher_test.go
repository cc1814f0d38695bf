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

package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordReplacer_ReplaceLine(t *testing.T) {
	tests := []struct {
		name        string
		search      string
		replacement string
		line        string
		want        string
		wantCount   int
	}{
		{
			name:        "whole_word",
			search:      "cat",
			replacement: "dog",
			line:        "the cat sat\n",
			want:        "the dog sat\n",
			wantCount:   1,
		},
		{
			name:        "leading_boundary_only",
			search:      "cat",
			replacement: "dog",
			line:        "category theory",
			want:        "dogegory theory",
			wantCount:   1,
		},
		{
			name:        "no_leading_boundary",
			search:      "cat",
			replacement: "dog",
			line:        "concatenate\n",
			want:        "concatenate\n",
		},
		{
			name:        "start_of_line",
			search:      "cat",
			replacement: "dog",
			line:        "cat",
			want:        "dog",
			wantCount:   1,
		},
		{
			name:        "multiple_matches",
			search:      "cat",
			replacement: "dog",
			line:        "cat, cat; (cat)",
			want:        "dog, dog; (dog)",
			wantCount:   3,
		},
		{
			name:        "adjacent_occurrences",
			search:      "cat",
			replacement: "dog",
			line:        "catcat",
			want:        "dogcat",
			wantCount:   1,
		},
		{
			name:        "underscore_is_word_character",
			search:      "cat",
			replacement: "dog",
			line:        "my_cat 9cat",
			want:        "my_cat 9cat",
		},
		{
			name:        "non_ascii_letter_is_not_word_character",
			search:      "cat",
			replacement: "dog",
			line:        "écat",
			want:        "édog",
			wantCount:   1,
		},
		{
			name:        "replacement_is_literal",
			search:      "cat",
			replacement: "$1${x}",
			line:        "a cat",
			want:        "a $1${x}",
			wantCount:   1,
		},
		{
			name:        "empty_replacement_deletes",
			search:      "cat",
			replacement: "",
			line:        "the cat sat",
			want:        "the  sat",
			wantCount:   1,
		},
		{
			name:        "crlf_terminator_preserved",
			search:      "cat",
			replacement: "dog",
			line:        "cat\r\n",
			want:        "dog\r\n",
			wantCount:   1,
		},
		{
			name:        "empty_line",
			search:      "cat",
			replacement: "dog",
			line:        "",
			want:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewWordReplacer(tt.search, tt.replacement)
			require.NoError(t, err)

			got, count := r.ReplaceLine(tt.line)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestWordReplacer_IdentityWithoutMatch(t *testing.T) {
	r, err := NewWordReplacer("cat", "dog")
	require.NoError(t, err)

	lines := []string{
		"",
		"\n",
		"nothing to see here\n",
		"scatter the bobcat\r\n",
		"CAT is upper case",
		"tomcat_cat",
	}

	for _, line := range lines {
		got, count := r.ReplaceLine(line)
		assert.Equal(t, line, got, "line %q should be returned as is", line)
		assert.Zero(t, count)
	}
}

// Replacing "cat" with "big cat" keeps producing new matches on every pass.
func TestWordReplacer_NotIdempotent(t *testing.T) {
	r, err := NewWordReplacer("cat", "big cat")
	require.NoError(t, err)

	first, count := r.ReplaceLine("the cat sat\n")
	require.Equal(t, 1, count)
	assert.Equal(t, "the big cat sat\n", first)

	second, count := r.ReplaceLine(first)
	require.Equal(t, 1, count)
	assert.Equal(t, "the big big cat sat\n", second)
}

func TestNewWordReplacer(t *testing.T) {
	tests := []struct {
		name        string
		search      string
		wantPattern string
		wantError   string
	}{
		{
			name:        "literal",
			search:      "cat",
			wantPattern: `\bcat`,
		},
		{
			name:      "empty_search",
			search:    "",
			wantError: "search text is required",
		},
		{
			name:      "invalid_pattern",
			search:    "cat(",
			wantError: "compiling search text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewWordReplacer(tt.search, "dog")
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPattern, r.Pattern())
		})
	}
}
