package lint

import "github.com/yaklabco/skillcheck/pkg/config"

// IssueBuilder helps construct Issue values.
type IssueBuilder struct {
	issue Issue
}

// NewIssue starts building an issue for the given rule and file.
// The issue defaults to warning severity at line 1.
func NewIssue(rule, file, message string) *IssueBuilder {
	return &IssueBuilder{
		issue: Issue{
			Severity: config.SeverityWarning,
			Rule:     rule,
			File:     file,
			Line:     1,
			Message:  message,
		},
	}
}

// AtLine sets the 1-based line. Values below 1 are clamped to 1.
func (b *IssueBuilder) AtLine(line int) *IssueBuilder {
	b.issue.Line = max(line, 1)
	return b
}

// WithSeverity sets the severity.
func (b *IssueBuilder) WithSeverity(s config.Severity) *IssueBuilder {
	b.issue.Severity = s
	return b
}

// WithFix sets the suggested remedy.
func (b *IssueBuilder) WithFix(fix string) *IssueBuilder {
	b.issue.Fix = fix
	return b
}

// Build returns the constructed Issue.
func (b *IssueBuilder) Build() Issue {
	return b.issue
}
