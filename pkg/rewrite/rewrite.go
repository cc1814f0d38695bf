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

// Package rewrite applies a line replacer to files in place.
package rewrite

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/replacer/pkg/log"
	"github.com/walteh/replacer/pkg/text"
	"gitlab.com/tozd/go/errors"
)

const readBufferSize = 64 * 1024

// 🔧 Options controls how files are rewritten
type Options struct {
	Backup          bool   // Copy the original next to the file before replacing it
	BackupExtension string // Appended to the file path to name the backup
	DryRun          bool   // Report changes but leave every file untouched
	SkipBinary      bool   // Leave files that look binary alone
}

// 📄 Result describes what happened to one file
type Result struct {
	Path         string
	LinesChanged int
	Replacements int
	BackupPath   string // Empty when no backup was written
	Written      bool   // The file content was replaced
	Skipped      string // Reason the file was not processed, if any
}

// Modified reports whether the file has (or, in a dry run, would have) changed.
func (r *Result) Modified() bool {
	return r.LinesChanged > 0
}

// 🔄 Rewriter rewrites files line by line
type Rewriter struct {
	replacer text.LineReplacer
	logger   *log.Logger
	opts     Options
	fs       fileSystem
	dmp      *diffmatchpatch.DiffMatchPatch
}

// 🏭 New creates a rewriter using replacer on every line
func New(replacer text.LineReplacer, logger *log.Logger, opts Options) (*Rewriter, error) {
	if replacer == nil {
		return nil, errors.Errorf("replacer is required")
	}
	if logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	if opts.Backup && !opts.DryRun && opts.BackupExtension == "" {
		return nil, errors.Errorf("backup extension is required when backups are enabled")
	}

	return &Rewriter{
		replacer: replacer,
		logger:   logger,
		opts:     opts,
		fs:       osFileSystem(),
		dmp:      diffmatchpatch.New(),
	}, nil
}

// 🏃 Rewrite streams path through the replacer.
//
// The new content is written to a temp file next to path. Only when at least
// one line changed is the original backed up (if enabled) and replaced by the
// temp file; otherwise path is left untouched. Every changed line is logged
// in file order. Nothing but the optional backup is left behind, whether the
// rewrite succeeds or fails.
func (r *Rewriter) Rewrite(ctx context.Context, path string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("rewriting %s: %w", path, err)
	}

	result := &Result{Path: path}

	src, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening %s: %w", path, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return nil, errors.Errorf("reading file info of %s: %w", path, err)
	}

	reader := bufio.NewReaderSize(src, readBufferSize)

	if r.opts.SkipBinary {
		head, err := reader.Peek(binarySample)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
			return nil, errors.Errorf("reading %s: %w", path, err)
		}
		if IsBinary(head) {
			result.Skipped = "binary content"
			return result, nil
		}
	}

	var (
		out     io.Writer = io.Discard
		writer  *bufio.Writer
		tmp     *os.File
		tmpPath string
	)

	if !r.opts.DryRun {
		tmp, err = r.fs.tempFor(path)
		if err != nil {
			return nil, errors.Errorf("rewriting %s: %w", path, err)
		}
		tmpPath = tmp.Name()
		defer func() {
			if !result.Written {
				tmp.Close()
				_ = r.fs.remove(tmpPath)
			}
		}()
		writer = bufio.NewWriterSize(tmp, readBufferSize)
		out = writer
	}

	for lineNo := 1; ; lineNo++ {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, errors.Errorf("reading %s: %w", path, readErr)
		}
		if line == "" {
			break
		}

		replaced, count := r.replacer.ReplaceLine(line)
		if _, err := io.WriteString(out, replaced); err != nil {
			return nil, errors.Errorf("writing %s: %w", path, err)
		}

		if replaced != line {
			result.LinesChanged++
			result.Replacements += count

			change := log.LineChange{
				Path:     path,
				Line:     lineNo,
				Original: line,
				Replaced: replaced,
				Count:    count,
			}
			if r.opts.DryRun {
				change.Diff = r.inlineDiff(log.TrimTerminator(line), log.TrimTerminator(replaced))
			}
			r.logger.LineReplaced(change)
		}

		if readErr != nil {
			break
		}
	}

	if r.opts.DryRun || result.LinesChanged == 0 {
		return result, nil
	}

	if err := writer.Flush(); err != nil {
		return nil, errors.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		return nil, errors.Errorf("syncing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, errors.Errorf("closing temp file for %s: %w", path, err)
	}

	if r.opts.Backup {
		backupPath := path + r.opts.BackupExtension
		if err := r.fs.copyFile(path, backupPath, info.Mode().Perm()); err != nil {
			return nil, errors.Errorf("backing up %s: %w", path, err)
		}
		result.BackupPath = backupPath
		r.logger.BackedUp(path, backupPath)
	}

	// the source must be closed before it is replaced on some platforms
	src.Close()

	if err := r.fs.commit(tmpPath, path, info.Mode().Perm()); err != nil {
		return nil, errors.Errorf("replacing %s: %w", path, err)
	}
	result.Written = true

	return result, nil
}

// inlineDiff renders before -> after as "[-removed-]{+added+}" segments.
func (r *Rewriter) inlineDiff(before, after string) string {
	diffs := r.dmp.DiffMain(before, after, false)
	diffs = r.dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+" + d.Text + "+}")
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}
