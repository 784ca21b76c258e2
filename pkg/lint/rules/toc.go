package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/skillcheck/pkg/config"
	"github.com/yaklabco/skillcheck/pkg/lines"
	"github.com/yaklabco/skillcheck/pkg/lint"
)

// RuleReferenceTOC is emitted by ReferenceTOCRule.
const RuleReferenceTOC = "references.toc"

// tocMarkers are lowercase headings that count as a table of contents.
var tocMarkers = []string{
	"table of contents",
	"contents",
	"目次",
	"目录",
	"目錄",
	"목차",
	"содержание",
}

// ReferenceTOCRule requires long reference documents to open with a table of contents.
type ReferenceTOCRule struct {
	lint.BaseRule
}

// NewReferenceTOCRule creates the reference table of contents rule group.
func NewReferenceTOCRule() *ReferenceTOCRule {
	return &ReferenceTOCRule{
		BaseRule: lint.NewBaseRule(
			"toc",
			"reference-toc",
			"Long reference documents start with a table of contents",
			RuleReferenceTOC,
		),
	}
}

// Apply checks every Markdown document under references/.
func (r *ReferenceTOCRule) Apply(ctx *lint.RuleContext) ([]lint.Issue, error) {
	files, err := ctx.Package.ReferenceFiles()
	if err != nil {
		return nil, fmt.Errorf("list reference files: %w", err)
	}

	limits := ctx.Limits()

	var issues []lint.Issue
	for _, path := range files {
		if ctx.Cancelled() {
			return issues, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		text, ok := ctx.Read(path)
		if !ok {
			continue
		}

		if lines.Count(text) <= limits.ReferenceLines {
			continue
		}

		header := strings.ToLower(strings.Join(lines.Head(text, limits.ReferenceHeaderLines), "\n"))
		if hasTOCMarker(header) {
			continue
		}

		issues = append(issues,
			lint.NewIssue(RuleReferenceTOC, path,
				fmt.Sprintf("Reference file exceeds %d lines without an obvious table of contents near the top.",
					limits.ReferenceLines)).
				WithSeverity(config.SeverityWarning).
				WithFix("Add a short table of contents section near the start of the file.").
				Build())
	}

	return issues, nil
}

func hasTOCMarker(header string) bool {
	for _, marker := range tocMarkers {
		if strings.Contains(header, marker) {
			return true
		}
	}
	return false
}
