package rules

import (
	"fmt"
	"regexp"

	"github.com/yaklabco/skillcheck/pkg/config"
	"github.com/yaklabco/skillcheck/pkg/lines"
	"github.com/yaklabco/skillcheck/pkg/lint"
)

// RuleWindowsPath is emitted by WindowsPathRule.
const RuleWindowsPath = "paths.windows_style"

// windowsPathPattern matches a backslash between two non-slash, non-space segments.
var windowsPathPattern = regexp.MustCompile(`\b[^/\s]+\\[^/\s]+\b`)

// WindowsPathRule flags documented paths that use backslash separators.
type WindowsPathRule struct {
	lint.BaseRule
}

// NewWindowsPathRule creates the path style rule group.
func NewWindowsPathRule() *WindowsPathRule {
	return &WindowsPathRule{
		BaseRule: lint.NewBaseRule(
			"paths",
			"windows-paths",
			"Documented paths use forward slashes",
			RuleWindowsPath,
		),
	}
}

// Apply scans every Markdown document in the package.
func (r *WindowsPathRule) Apply(ctx *lint.RuleContext) ([]lint.Issue, error) {
	return scanLines(ctx, windowsPathPattern, func(path string, line int) lint.Issue {
		return lint.NewIssue(RuleWindowsPath, path, "Detected Windows-style path with backslashes.").
			AtLine(line).
			WithSeverity(config.SeverityWarning).
			WithFix("Use forward slashes in documented paths.").
			Build()
	})
}

// scanLines reports one issue per line matching pattern, across every
// Markdown document of the package.
func scanLines(
	ctx *lint.RuleContext,
	pattern *regexp.Regexp,
	report func(path string, line int) lint.Issue,
) ([]lint.Issue, error) {
	files, err := ctx.Package.MarkdownFiles()
	if err != nil {
		return nil, fmt.Errorf("list markdown files: %w", err)
	}

	var issues []lint.Issue
	for _, path := range files {
		if ctx.Cancelled() {
			return issues, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		text, ok := ctx.Read(path)
		if !ok {
			continue
		}

		for idx, line := range lines.Split(text) {
			if pattern.MatchString(line) {
				issues = append(issues, report(path, idx+1))
			}
		}
	}

	return issues, nil
}
