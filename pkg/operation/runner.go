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

	"github.com/walteh/replacer/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 🔄 run walks the tree and rewrites every surviving file, one at a time
func (o *operator) run(ctx context.Context) (*Report, error) {
	report := newReport(o.config.DryRun)

	for batch, err := range walk.Walk(o.config.RootPath) {
		if err != nil {
			return report, errors.Errorf("walking %s: %w", o.config.RootPath, err)
		}

		report.Summary.Directories++
		o.logger.VisitingDirectory(batch.Dir, batch.Names)

		tasks, skipped := o.filter.Apply(batch)
		for _, s := range skipped {
			o.logger.Skipped(s.Path, s.Reason)
			report.Summary.FilesSkipped++
		}

		for _, path := range tasks {
			if err := ctx.Err(); err != nil {
				return report, errors.Errorf("run interrupted before %s: %w", path, err)
			}

			res, err := o.rewriter.Rewrite(ctx, path)
			if err != nil {
				return report, errors.WithDetails(err, "file", path)
			}
			report.add(res)
			if res.Skipped != "" {
				o.logger.Skipped(path, res.Skipped)
			}
		}
	}

	return report, nil
}
