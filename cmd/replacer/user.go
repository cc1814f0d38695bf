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
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/walteh/replacer/pkg/operation"
)

// 📢 userLogger prints the user facing part of a run: usage problems,
// fatal setup errors and the final summary
type userLogger struct {
	out    io.Writer
	errOut io.Writer
}

func newUserLogger(out, errOut io.Writer) *userLogger {
	return &userLogger{out: out, errOut: errOut}
}

// usageProblems prints the usage text followed by one line per problem
func (u *userLogger) usageProblems(usage string, problems []string) {
	pterm.Fprintln(u.errOut, strings.TrimRight(usage, "\n"))
	pterm.Fprintln(u.errOut)

	printer := pterm.Error.WithWriter(u.errOut).WithPrefix(pterm.Prefix{Text: "❌"})
	for _, p := range problems {
		printer.Println(p)
	}
}

// fatal reports an error that stopped the run before it started
func (u *userLogger) fatal(description string, err error) {
	pterm.Error.WithWriter(u.errOut).WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
	pterm.Error.WithWriter(u.errOut).Println(err)
}

// summary prints the totals of a finished run, and each changed file when detailed
func (u *userLogger) summary(report *operation.Report, logPath string, detailed bool) {
	if detailed {
		for _, res := range report.Changed {
			pterm.Info.WithWriter(u.out).WithPrefix(pterm.Prefix{Text: "📄"}).Println(operation.FormatResult(res, report.Summary.DryRun))
		}
	}

	pterm.Success.WithWriter(u.out).WithPrefix(pterm.Prefix{Text: "✅"}).Println(operation.FormatSummary(report.Summary))
	if logPath != "" {
		pterm.Info.WithWriter(u.out).WithPrefix(pterm.Prefix{Text: "📦"}).Println("Log written to " + logPath)
	}
}
