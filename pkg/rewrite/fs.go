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

import (
	"io"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// 💾 fileSystem holds the syscalls the rewriter needs, swappable in tests
type fileSystem struct {
	createTemp func(dir, pattern string) (*os.File, error)
	rename     func(oldpath, newpath string) error
	chmod      func(name string, mode os.FileMode) error
	remove     func(name string) error
	copyFile   func(src, dst string, mode os.FileMode) error
}

func osFileSystem() fileSystem {
	return fileSystem{
		createTemp: os.CreateTemp,
		rename:     os.Rename,
		chmod:      os.Chmod,
		remove:     os.Remove,
		copyFile:   copyFile,
	}
}

// tempFor creates the file that will replace path. It lives next to path so
// the final rename stays on one filesystem.
func (fsys fileSystem) tempFor(path string) (*os.File, error) {
	tmp, err := fsys.createTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, errors.Errorf("creating temp file: %w", err)
	}
	return tmp, nil
}

// commit moves the finished temp file over path with the original mode.
func (fsys fileSystem) commit(tmpPath, path string, mode os.FileMode) error {
	if err := fsys.chmod(tmpPath, mode); err != nil {
		return errors.Errorf("setting mode on temp file: %w", err)
	}
	if err := fsys.rename(tmpPath, path); err != nil {
		return errors.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// copyFile copies src to dst byte for byte, creating or truncating dst.
func copyFile(src, dst string, mode os.FileMode) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	destination, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		_ = os.Remove(dst)
		return errors.Errorf("copying file: %w", err)
	}

	if err := destination.Close(); err != nil {
		_ = os.Remove(dst)
		return errors.Errorf("closing destination file: %w", err)
	}

	return nil
}
