package rules

import (
	"regexp"

	"github.com/yaklabco/skillcheck/pkg/config"
	"github.com/yaklabco/skillcheck/pkg/lint"
)

// RuleTimeSensitive is emitted by TimeSensitiveRule.
const RuleTimeSensitive = "content.time_sensitive"

// timeSensitivePattern matches relative-time words and year-like tokens such as 2024 or 2024-06.
var timeSensitivePattern = regexp.MustCompile(
	`(?i)\b(today|tomorrow|yesterday|currently|as of)\b|20\d{2}(?:[-/.](?:0[1-9]|1[0-2]))?`,
)

// TimeSensitiveRule notes wording that will go stale.
type TimeSensitiveRule struct {
	lint.BaseRule
}

// NewTimeSensitiveRule creates the time-sensitive wording rule group.
func NewTimeSensitiveRule() *TimeSensitiveRule {
	return &TimeSensitiveRule{
		BaseRule: lint.NewBaseRule(
			"timing",
			"time-sensitive",
			"Instructions avoid dates and relative-time wording",
			RuleTimeSensitive,
		),
	}
}

// Apply scans every Markdown document in the package.
func (r *TimeSensitiveRule) Apply(ctx *lint.RuleContext) ([]lint.Issue, error) {
	return scanLines(ctx, timeSensitivePattern, func(path string, line int) lint.Issue {
		return lint.NewIssue(RuleTimeSensitive, path, "Detected potentially time-sensitive wording.").
			AtLine(line).
			WithSeverity(config.SeverityInfo).
			WithFix("Prefer versioned 'legacy pattern' sections over date-dependent instructions.").
			Build()
	})
}
