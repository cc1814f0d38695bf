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

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎨 File sink layout
const (
	TimeFormat = "Mon, 02 Jan 2006 15:04:05"
	levelWidth = 8
)

// ❌ SetupError is a failure to create the log sink. A run cannot proceed
// without its log, so callers treat it as fatal.
type SetupError struct {
	Path string
	Err  error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("creating log file %s: %v", e.Path, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// 🎯 LineChange is one rewritten line
type LineChange struct {
	Path     string // File being modified
	Line     int    // 1-based line number
	Original string // Line before substitution, terminator included
	Replaced string // Line after substitution, terminator included
	Count    int    // Substitutions made on the line
	Diff     string // Inline diff, set for dry runs
}

// 📊 Summary describes a finished run
type Summary struct {
	Directories   int
	FilesScanned  int
	FilesSkipped  int
	FilesModified int
	LinesChanged  int
	Backups       int
	DryRun        bool
}

// 🎯 Logger writes the run log and mirrors the important part to the console.
//
// Records go to the file sink at info level (debug when verbose). The console
// sees errors, plus info records when verbose. Writes are serialised so the
// order of records always matches the order of calls.
type Logger struct {
	zlog         zerolog.Logger
	console      io.Writer
	consoleLevel zerolog.Level
	closer       io.Closer
	path         string
	mu           sync.Mutex
}

// 🏭 Open creates (or truncates) the log file at path and returns a Logger
// writing to it. Failures are returned as *SetupError.
func Open(path string, console io.Writer, verbose bool) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.WithStack(&SetupError{Path: path, Err: err})
	}

	l := New(f, console, verbose)
	l.closer = f
	l.path = path
	return l, nil
}

// 🏭 New creates a logger over an already open sink
func New(sink io.Writer, console io.Writer, verbose bool) *Logger {
	fileLevel := zerolog.InfoLevel
	consoleLevel := zerolog.ErrorLevel
	if verbose {
		fileLevel = zerolog.DebugLevel
		consoleLevel = zerolog.InfoLevel
	}

	if console == nil {
		console = io.Discard
	}

	zlog := zerolog.New(NewFileWriter(sink)).Level(fileLevel).With().Timestamp().Logger()
	return &Logger{
		zlog:         zlog,
		console:      console,
		consoleLevel: consoleLevel,
	}
}

// NewFileWriter renders records as "<time> <LEVEL>   <message> <fields>".
func NewFileWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		TimeFormat: TimeFormat,
		FormatLevel: func(i interface{}) string {
			s, _ := i.(string)
			return fmt.Sprintf("%-*s", levelWidth, strings.ToUpper(s))
		},
	}
}

// Path returns the log file location, empty when the logger was built with New.
func (l *Logger) Path() string {
	return l.path
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	if err != nil {
		return errors.Errorf("closing log file: %w", err)
	}
	return nil
}

// 📝 mirror prints msg to the console when level reaches the console threshold
func (l *Logger) mirror(level zerolog.Level, msg string) {
	if level < l.consoleLevel {
		return
	}

	if level >= zerolog.ErrorLevel {
		fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
		return
	}
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
}

// 📝 Started records the configuration before any file is touched
func (l *Logger) Started(processID string, cfg fmt.Stringer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf("Started text replacement process %s with configuration %s", processID, cfg)
	ev := l.zlog.Info().Str("process_id", processID)
	if m, ok := cfg.(zerolog.LogObjectMarshaler); ok {
		ev = ev.Object("config", m)
	}
	ev.Msg(msg)
	l.mirror(zerolog.InfoLevel, msg)
}

// 📝 ConfigFileLoaded records the config file the run defaults came from
func (l *Logger) ConfigFileLoaded(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf("Loaded configuration file %s", path)
	l.zlog.Info().Str("config_file", path).Msg(msg)
	l.mirror(zerolog.InfoLevel, msg)
}

// 📝 Matching records the compiled search pattern
func (l *Logger) Matching(pattern string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.zlog.Debug().Str("pattern", pattern).Msgf("Matching pattern %s", pattern)
}

// 📝 VisitingDirectory records traversal detail
func (l *Logger) VisitingDirectory(dir string, files []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.zlog.Debug().Str("dir", dir).Msgf("Visiting directory %s", dir)
	l.zlog.Debug().Str("dir", dir).Int("files", len(files)).Msgf("Scanning through %v", files)
}

// 📝 Skipped records a file left alone and why
func (l *Logger) Skipped(path, reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.zlog.Debug().Str("file", path).Str("reason", reason).Msgf("Skipping %s", path)
}

// 📝 LineReplaced records a changed line. Line terminators are stripped.
func (l *Logger) LineReplaced(change LineChange) {
	l.mu.Lock()
	defer l.mu.Unlock()

	original := TrimTerminator(change.Original)
	replaced := TrimTerminator(change.Replaced)
	msg := fmt.Sprintf("Replaced line '%s' with '%s' in %s", original, replaced, change.Path)

	ev := l.zlog.Info().
		Str("file", change.Path).
		Int("line", change.Line).
		Int("replacements", change.Count)
	if change.Diff == "" {
		ev.Msg(msg)
		l.mirror(zerolog.InfoLevel, msg)
		return
	}
	ev.Str("diff", change.Diff).Msg(msg)
	l.mirror(zerolog.InfoLevel, msg+": "+change.Diff)
}

// 📝 BackedUp records a backup artifact
func (l *Logger) BackedUp(path, backupPath string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.zlog.Debug().Str("file", path).Str("backup", backupPath).Msgf("Backed up %s to %s", path, backupPath)
}

// 📝 Completed records the end of a successful run
func (l *Logger) Completed(s Summary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.zlog.Info().
		Int("directories", s.Directories).
		Int("files_scanned", s.FilesScanned).
		Int("files_skipped", s.FilesSkipped).
		Int("files_modified", s.FilesModified).
		Int("lines_changed", s.LinesChanged).
		Int("backups", s.Backups).
		Bool("dry_run", s.DryRun).
		Msg("Completed replacement operation.")
	l.mirror(zerolog.InfoLevel, "Completed replacement operation.")
}

// 📝 Failed records a run-aborting error with its full context.
// The file gets the stack and details, the console only the message.
func (l *Logger) Failed(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	const msg = "An error occurred during the replacement operation"
	ev := l.zlog.Error()
	for k, v := range errors.AllDetails(err) {
		ev = ev.Interface(k, v)
	}
	ev.Msg(fmt.Sprintf("%s\n%+v", msg, err))
	l.mirror(zerolog.ErrorLevel, msg+": "+err.Error())
}

// TrimTerminator drops a trailing "\n" or "\r\n".
func TrimTerminator(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
