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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 createTree lays out files relative to a fresh temp dir
func createTree(t *testing.T, files ...string) string {
	t.Helper()

	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		if f[len(f)-1] == '/' {
			require.NoError(t, os.MkdirAll(path, 0755), "creating dir %s", f)
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "creating parent of %s", f)
		require.NoError(t, os.WriteFile(path, []byte(f+"\n"), 0644), "writing %s", f)
	}
	return root
}

func collect(t *testing.T, root string) []Batch {
	t.Helper()

	var batches []Batch
	for batch, err := range Walk(root) {
		require.NoError(t, err)
		batches = append(batches, batch)
	}
	return batches
}

func TestWalk(t *testing.T) {
	root := createTree(t,
		"a.txt",
		"b.txt.10192026-140509.rbak",
		"empty/",
		"sub/c.txt",
		"sub/deeper/d.txt",
		"sub/deeper/e.txt",
	)

	batches := collect(t, root)

	want := []Batch{
		{Dir: root, Names: []string{"a.txt", "b.txt.10192026-140509.rbak"}},
		{Dir: filepath.Join(root, "empty")},
		{Dir: filepath.Join(root, "sub"), Names: []string{"c.txt"}},
		{Dir: filepath.Join(root, "sub", "deeper"), Names: []string{"d.txt", "e.txt"}},
	}
	assert.Equal(t, want, batches)
}

func batchPaths(b Batch) []string {
	paths := make([]string, 0, len(b.Names))
	for _, name := range b.Names {
		paths = append(paths, JoinPath(b.Dir, name))
	}
	return paths
}

func TestWalk_VisitsEveryFileOnce(t *testing.T) {
	root := createTree(t, "x/1", "x/2", "x/y/3", "x/y/z/4", "w/5", "6")

	seen := map[string]int{}
	for _, batch := range collect(t, root) {
		for _, path := range batchPaths(batch) {
			seen[path]++
		}
	}

	assert.Len(t, seen, 6)
	for path, n := range seen {
		assert.Equal(t, 1, n, "%s visited more than once", path)
	}
}

func TestWalk_Restartable(t *testing.T) {
	root := createTree(t, "a", "b/c")

	first := collect(t, root)
	second := collect(t, root)
	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}

func TestWalk_StopsEarly(t *testing.T) {
	root := createTree(t, "a/1", "b/2", "c/3")

	count := 0
	for _, err := range Walk(root) {
		require.NoError(t, err)
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestWalk_TrailingSeparator(t *testing.T) {
	root := createTree(t, "a.txt", "sub/b.txt")

	batches := collect(t, root+string(os.PathSeparator))
	require.Len(t, batches, 2)

	sep := string(os.PathSeparator)
	assert.Equal(t, []string{root + sep + "a.txt"}, batchPaths(batches[0]))
	assert.Equal(t, []string{root + sep + "sub" + sep + "b.txt"}, batchPaths(batches[1]))
}

func TestWalk_SkipsSymlinks(t *testing.T) {
	root := createTree(t, "a.txt", "sub/b.txt")
	if err := os.Symlink(filepath.Join(root, "sub"), filepath.Join(root, "loop")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "a.txt"), filepath.Join(root, "alias.txt")))

	batches := collect(t, root)
	require.Len(t, batches, 2, "the linked directory should not be entered")
	assert.Equal(t, []string{"a.txt"}, batches[0].Names)
}

func TestWalk_RootIsFile(t *testing.T) {
	root := createTree(t, "only.txt")
	file := filepath.Join(root, "only.txt")

	batches := collect(t, file)
	require.Len(t, batches, 1)
	assert.Equal(t, []string{file}, batchPaths(batches[0]))
}

func TestWalk_MissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	var errs []error
	for _, err := range Walk(missing) {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	require.Error(t, errs[0])
	assert.Contains(t, errs[0].Error(), "reading search path")
}

func TestJoinPath(t *testing.T) {
	sep := string(os.PathSeparator)

	tests := []struct {
		dir  string
		name string
		want string
	}{
		{dir: "src", name: "a.txt", want: "src" + sep + "a.txt"},
		{dir: "src" + sep, name: "a.txt", want: "src" + sep + "a.txt"},
		{dir: sep, name: "a.txt", want: sep + "a.txt"},
		{dir: "", name: "a.txt", want: "a.txt"},
		{dir: "." + sep + "x" + sep + ".." + sep, name: "a", want: "." + sep + "x" + sep + ".." + sep + "a"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, JoinPath(tt.dir, tt.name), "JoinPath(%q, %q)", tt.dir, tt.name)
	}
}
