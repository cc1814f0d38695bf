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

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/replacer/pkg/text"
)

const (
	// BackupSuffix marks every backup artifact, whichever run created it.
	BackupSuffix = "rbak"

	// LogFileSuffix is appended to the process id to name the run log.
	LogFileSuffix = "-replacement.log"
)

// 🚩 Options are the flag values of one invocation
type Options struct {
	Backup     bool     // Copy each modified file to a backup sibling first
	Verbose    bool     // Debug records in the log file, info records on the console
	DryRun     bool     // Report changes without writing anything
	SkipBinary bool     // Leave files that look binary alone
	Ignore     []string // Doublestar globs, relative to the search path
	LogDir     string   // Directory receiving the run log
}

// 📚 RunConfig is the validated configuration of a single run.
// It is built once by Parse and must not be modified afterwards.
type RunConfig struct {
	ProcessID       string
	RootPath        string
	SearchText      string
	ReplacementText string
	Verbose         bool
	Backup          bool
	DryRun          bool
	SkipBinary      bool
	Ignore          []string
	LogDir          string
}

// 🎯 Parse turns the positional arguments and flag values into a RunConfig.
//
// positional holds, in order, the search path, the search text and the
// replacement text; any of them may be missing. Every rule is checked and all
// failures are returned together as a *ValidationError.
func Parse(positional []string, opts Options, now time.Time) (*RunConfig, error) {
	rootPath, hasRoot := arg(positional, 0)
	search, hasSearch := arg(positional, 1)
	replacement, hasReplacement := arg(positional, 2)

	var problems []*ConfigError

	switch {
	case !hasRoot || strings.TrimSpace(rootPath) == "":
		problems = append(problems, newConfigError(MissingOrInvalidPath, "A search path is required", nil))
	default:
		if _, err := os.Stat(rootPath); err != nil {
			problems = append(problems, newConfigError(MissingOrInvalidPath,
				fmt.Sprintf("Search path %s does not exist.", rootPath), err))
		}
	}

	if !hasSearch || search == "" {
		problems = append(problems, newConfigError(MissingSearchText, "Search text must be specified", nil))
	}

	if !hasReplacement {
		problems = append(problems, newConfigError(MissingReplacementText, "Replacement text must be specified", nil))
	}

	if hasSearch && hasReplacement && search == replacement {
		problems = append(problems, newConfigError(IdenticalSearchAndReplacement,
			"The search and replacement text must differ", nil))
	}

	if hasSearch && search != "" {
		if _, err := text.NewWordReplacer(search, replacement); err != nil {
			problems = append(problems, newConfigError(InvalidSearchPattern,
				fmt.Sprintf("Search text %q is not a valid pattern", search), err))
		}
	}

	for _, pattern := range opts.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			problems = append(problems, newConfigError(InvalidIgnorePattern,
				fmt.Sprintf("Ignore pattern %q is not a valid glob", pattern), nil))
		}
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	logDir := opts.LogDir
	if logDir == "" {
		logDir = "."
	}

	return &RunConfig{
		ProcessID:       NewProcessID(now),
		RootPath:        rootPath,
		SearchText:      search,
		ReplacementText: replacement,
		Verbose:         opts.Verbose,
		Backup:          opts.Backup,
		DryRun:          opts.DryRun,
		SkipBinary:      opts.SkipBinary,
		Ignore:          append([]string(nil), opts.Ignore...),
		LogDir:          logDir,
	}, nil
}

func arg(args []string, i int) (string, bool) {
	if i < len(args) {
		return args[i], true
	}
	return "", false
}

// BackupExtension is the extension appended to a file name to name its backup.
func (c *RunConfig) BackupExtension() string {
	return "." + c.ProcessID + "." + BackupSuffix
}

// BackupPath returns where the backup of path goes for this run.
func (c *RunConfig) BackupPath(path string) string {
	return path + c.BackupExtension()
}

// LogFileName is the base name of the run log.
func (c *RunConfig) LogFileName() string {
	return c.ProcessID + LogFileSuffix
}

// LogFilePath is the location of the run log.
func (c *RunConfig) LogFilePath() string {
	return filepath.Join(c.LogDir, c.LogFileName())
}

// 📝 String returns a string representation of the config
func (c *RunConfig) String() string {
	return fmt.Sprintf("processId=%s verbose=%t backup=%t dryRun=%t skipBinary=%t rootDirectory=%s findText=%s replacementText=%s ignore=%v",
		c.ProcessID, c.Verbose, c.Backup, c.DryRun, c.SkipBinary, c.RootPath, c.SearchText, c.ReplacementText, c.Ignore)
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (c *RunConfig) MarshalZerologObject(e *zerolog.Event) {
	e.Str("process_id", c.ProcessID).
		Str("root", c.RootPath).
		Str("search", c.SearchText).
		Str("replacement", c.ReplacementText).
		Bool("verbose", c.Verbose).
		Bool("backup", c.Backup).
		Bool("dry_run", c.DryRun).
		Bool("skip_binary", c.SkipBinary).
		Strs("ignore", c.Ignore).
		Str("log_dir", c.LogDir)
}
