package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/skillcheck/pkg/runner"
)

// MarkdownReporter writes issues as a numbered Markdown list, one entry per
// issue with its file, message and fix.
type MarkdownReporter struct {
	bw *bufio.Writer
}

// NewMarkdownReporter creates a new Markdown reporter.
func NewMarkdownReporter(opts Options) *MarkdownReporter {
	return &MarkdownReporter{
		bw: bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *MarkdownReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	issues := result.Issues()
	if len(issues) == 0 {
		fmt.Fprintln(r.bw, "No issues found.")
		return 0, nil
	}

	for idx, issue := range issues {
		fmt.Fprintf(r.bw, "%d. [%s] %s\n", idx+1, issue.Severity, issue.Rule)
		fmt.Fprintf(r.bw, "   - File: %s:%d\n", issue.File, issue.Line)
		fmt.Fprintf(r.bw, "   - Message: %s\n", issue.Message)
		fmt.Fprintf(r.bw, "   - Fix: %s\n", issue.Fix)
	}

	return len(issues), nil
}
