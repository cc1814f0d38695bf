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

package main

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/walteh/replacer/pkg/config"
	"github.com/walteh/replacer/pkg/log"
	"github.com/walteh/replacer/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// 🚩 rootFlags holds the flag values of one invocation
type rootFlags struct {
	configFile string
	opts       config.Options
}

// exitError carries the process exit code out of the command
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// now is replaced in tests to pin the process id
var now = time.Now

// 🏃 run executes the command line args and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	user := newUserLogger(stdout, stderr)
	cmd := newRootCmd(user)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}

	// flag parsing failures never reach RunE
	user.usageProblems(cmd.UsageString(), []string{err.Error()})
	return exitUsage
}

// newRootCmd creates the replacer command
func newRootCmd(user *userLogger) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "replacer [flags] <search_path> <search_text> <replacement_text>",
		Short: "Replace whole words in every file under a directory",
		Long: `replacer rewrites, in place, every regular file under search_path,
replacing each occurrence of search_text that starts at a word boundary with
replacement_text. A log of every change is written to
<process id>-replacement.log.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       GetVersionInfo().Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd.Context(), cmd, user, flags, args)
		},
	}

	cmd.SetVersionTemplate(FormatVersion())

	f := cmd.Flags()
	f.BoolVarP(&flags.opts.Backup, "backup", "b", false, "keep a backup of every modified file")
	f.BoolVarP(&flags.opts.Verbose, "verbose", "v", false, "log traversal detail and mirror changes to the console")
	f.BoolVarP(&flags.opts.DryRun, "dry-run", "n", false, "report changes without modifying any file")
	f.BoolVar(&flags.opts.SkipBinary, "skip-binary", false, "leave files that look binary untouched")
	f.StringArrayVar(&flags.opts.Ignore, "ignore", nil, "doublestar glob, relative to search_path, of files to leave alone (repeatable)")
	f.StringVar(&flags.opts.LogDir, "log-dir", "", "directory receiving the run log (default \".\")")
	f.StringVarP(&flags.configFile, "config", "c", "", "yaml, json, toml or hcl file with default flag values")

	return cmd
}

// execute validates the invocation, opens the run log and runs the operation
func execute(ctx context.Context, cmd *cobra.Command, user *userLogger, flags *rootFlags, args []string) error {
	opts := flags.opts
	if flags.configFile != "" {
		fileCfg, err := config.LoadFile(flags.configFile)
		if err != nil {
			user.usageProblems(cmd.UsageString(), []string{err.Error()})
			return &exitError{code: exitUsage, err: err}
		}
		opts = fileCfg.Apply(opts)
	}

	cfg, err := config.Parse(args, opts, now())
	if err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			msgs := make([]string, 0, len(verr.Problems))
			for _, p := range verr.Problems {
				msgs = append(msgs, p.Message)
			}
			user.usageProblems(cmd.UsageString(), msgs)
		} else {
			user.usageProblems(cmd.UsageString(), []string{err.Error()})
		}
		return &exitError{code: exitUsage, err: err}
	}

	logger, err := log.Open(cfg.LogFilePath(), cmd.ErrOrStderr(), cfg.Verbose)
	if err != nil {
		user.fatal("Unable to set up logging", err)
		return &exitError{code: exitLoggingSetup, err: err}
	}
	defer logger.Close()

	if flags.configFile != "" {
		logger.ConfigFileLoaded(flags.configFile)
	}

	op, err := operation.New(operation.Options{Config: cfg, Logger: logger})
	if err != nil {
		logger.Failed(err)
		return &exitError{code: exitRuntime, err: err}
	}

	report, err := op.Run(ctx)
	if err != nil {
		// already logged and mirrored to the console by the operation
		return &exitError{code: exitRuntime, err: err}
	}

	user.summary(report, logger.Path(), cfg.DryRun || cfg.Verbose)
	return nil
}
