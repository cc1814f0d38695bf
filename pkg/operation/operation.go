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

package operation

import (
	"context"

	"github.com/walteh/replacer/pkg/config"
	"github.com/walteh/replacer/pkg/log"
	"github.com/walteh/replacer/pkg/rewrite"
	"github.com/walteh/replacer/pkg/text"
	"github.com/walteh/replacer/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operator runs a replacement pass
type Operator interface {
	// Run processes every file under the configured root and reports what changed
	Run(ctx context.Context) (*Report, error)
}

// 🔧 Options contains what an operator needs
type Options struct {
	// Config is the validated run configuration
	Config *config.RunConfig
	// Logger receives every record of the run
	Logger *log.Logger
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}

	replacer, err := text.NewWordReplacer(opts.Config.SearchText, opts.Config.ReplacementText)
	if err != nil {
		return nil, errors.Errorf("creating replacer: %w", err)
	}

	rw, err := rewrite.New(replacer, opts.Logger, rewrite.Options{
		Backup:          opts.Config.Backup,
		BackupExtension: opts.Config.BackupExtension(),
		DryRun:          opts.Config.DryRun,
		SkipBinary:      opts.Config.SkipBinary,
	})
	if err != nil {
		return nil, errors.Errorf("creating rewriter: %w", err)
	}

	return &operator{
		config:   opts.Config,
		logger:   opts.Logger,
		pattern:  replacer.Pattern(),
		rewriter: rw,
		filter:   walk.NewFilter(opts.Config.RootPath, opts.Config.Ignore, opts.Logger.Path()),
	}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	config   *config.RunConfig
	logger   *log.Logger
	pattern  string
	rewriter *rewrite.Rewriter
	filter   *walk.Filter
}

// 🏃 Run executes the pass. A failure is logged before it is returned.
func (o *operator) Run(ctx context.Context) (*Report, error) {
	o.logger.Started(o.config.ProcessID, o.config)
	o.logger.Matching(o.pattern)

	report, err := o.run(ctx)
	if err != nil {
		o.logger.Failed(err)
		return report, err
	}

	o.logger.Completed(report.Summary)
	return report, nil
}
