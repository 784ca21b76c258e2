package lint

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/yaklabco/skillcheck/pkg/config"
)

// Rule identifiers emitted by the checker itself rather than by a rule group.
// They report structural faults and cannot be disabled.
const (
	RulePathInvalid    = "skill.path.invalid"
	RuleEntryMissing   = "skill.skill_md.missing"
	RuleFileUnreadable = "file.unreadable"
	RuleCheckFailed    = "check.failed"
)

// StructuralRules returns the identifiers emitted by the checker itself.
func StructuralRules() []string {
	return []string{RulePathInvalid, RuleEntryMissing, RuleFileUnreadable, RuleCheckFailed}
}

// IsStructural reports whether id is emitted by the checker itself.
func IsStructural(id string) bool {
	return slices.Contains(StructuralRules(), id)
}

// Issue is a single finding about a skill package.
type Issue struct {
	// Severity is error, warning or info.
	Severity config.Severity `json:"severity"`

	// Rule is the dotted rule identifier (e.g., "frontmatter.name.format").
	Rule string `json:"rule"`

	// File is the absolute path of the offending file, or the package root
	// for package-level faults.
	File string `json:"file"`

	// Line is the 1-based line number the issue is attributed to.
	Line int `json:"line"`

	// Message describes the problem.
	Message string `json:"message"`

	// Fix is a suggested remedy.
	Fix string `json:"fix"`
}

// IsError reports whether the issue has error severity.
func (i Issue) IsError() bool {
	return i.Severity == config.SeverityError
}

// CompareIssues orders issues by severity rank, file, line, rule and message.
func CompareIssues(a, b Issue) int {
	return cmp.Or(
		cmp.Compare(a.Severity.Rank(), b.Severity.Rank()),
		cmp.Compare(a.File, b.File),
		cmp.Compare(a.Line, b.Line),
		cmp.Compare(a.Rule, b.Rule),
		cmp.Compare(a.Message, b.Message),
	)
}

// SortIssues sorts issues in place into presentation order.
// The sort is stable, so fully equal issues keep their emission order.
func SortIssues(issues []Issue) {
	slices.SortStableFunc(issues, CompareIssues)
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	return slices.ContainsFunc(issues, Issue.IsError)
}

// CountBySeverity returns the number of issues per severity.
func CountBySeverity(issues []Issue) map[config.Severity]int {
	return lo.CountValuesBy(issues, func(issue Issue) config.Severity {
		return issue.Severity
	})
}
