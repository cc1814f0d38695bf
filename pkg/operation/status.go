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
	"fmt"

	"github.com/walteh/replacer/pkg/log"
	"github.com/walteh/replacer/pkg/rewrite"
)

// 📊 Report is the outcome of a run
type Report struct {
	Summary log.Summary
	// Changed holds the files that were modified, or would be in a dry run
	Changed []*rewrite.Result
}

func newReport(dryRun bool) *Report {
	return &Report{Summary: log.Summary{DryRun: dryRun}}
}

func (r *Report) add(res *rewrite.Result) {
	if res.Skipped != "" {
		r.Summary.FilesSkipped++
		return
	}

	r.Summary.FilesScanned++
	if !res.Modified() {
		return
	}

	r.Summary.FilesModified++
	r.Summary.LinesChanged += res.LinesChanged
	if res.BackupPath != "" {
		r.Summary.Backups++
	}
	r.Changed = append(r.Changed, res)
}

// FormatResult renders one file outcome for the console
func FormatResult(res *rewrite.Result, dryRun bool) string {
	switch {
	case res.Skipped != "":
		return fmt.Sprintf("⏭️  Skipped %s (%s)", res.Path, res.Skipped)
	case !res.Modified():
		return fmt.Sprintf("👍 Unchanged %s", res.Path)
	case dryRun:
		return fmt.Sprintf("🔍 Would modify %s (%s)", res.Path, plural(res.LinesChanged, "line"))
	case res.BackupPath != "":
		return fmt.Sprintf("📝 Modified %s (%s, backup %s)", res.Path, plural(res.LinesChanged, "line"), res.BackupPath)
	default:
		return fmt.Sprintf("📝 Modified %s (%s)", res.Path, plural(res.LinesChanged, "line"))
	}
}

// FormatSummary renders the run totals for the console
func FormatSummary(s log.Summary) string {
	verb := "modified"
	if s.DryRun {
		verb = "would be modified"
	}
	return fmt.Sprintf("%s scanned in %s, %s %s (%s), %s skipped, %s written",
		plural(s.FilesScanned, "file"),
		plural(s.Directories, "directory"),
		plural(s.FilesModified, "file"), verb,
		plural(s.LinesChanged, "line"),
		plural(s.FilesSkipped, "file"),
		plural(s.Backups, "backup"))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	if word == "directory" {
		return fmt.Sprintf("%d directories", n)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
