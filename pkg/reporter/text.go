package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/yaklabco/skillcheck/internal/ui/pretty"
	"github.com/yaklabco/skillcheck/pkg/lint"
	"github.com/yaklabco/skillcheck/pkg/runner"
)

// TextReporter formats results as styled terminal output, grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Packages) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No skill packages to check."))
		}
		return 0, nil
	}

	var total int
	for _, outcome := range result.Packages {
		total += r.reportPackage(outcome)
	}

	if r.opts.ShowSummary {
		if result.Stats.PackagesChecked > 1 {
			fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats, pretty.TerminalWidth(r.opts.Writer)))
		} else {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
		}
	}

	return total, nil
}

// reportPackage writes one package's issues grouped by file.
func (r *TextReporter) reportPackage(outcome runner.PackageOutcome) int {
	root := displayPath(r.opts.WorkingDir, outcome.Root)

	if outcome.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(root),
			r.styles.Error.Render(fmt.Sprintf("error: %v", outcome.Error)),
		)
		return 0
	}

	issues := outcome.Issues()
	files := lo.Uniq(lo.Map(issues, func(issue lint.Issue, _ int) string { return issue.File }))
	byFile := lo.GroupBy(issues, func(issue lint.Issue) string { return issue.File })

	for _, file := range files {
		path := displayPath(r.opts.WorkingDir, file)
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(byFile[file])))
		for _, issue := range byFile[file] {
			fmt.Fprint(r.bw, r.styles.FormatIssue(issue, path))
		}
		fmt.Fprintln(r.bw)
	}

	if line := r.styles.FormatInventory(outcome.Inventory); line != "" {
		fmt.Fprintf(r.bw, "%s  %s\n\n", r.styles.FilePath.Render(root), line)
	}

	return len(issues)
}
