package rules

import (
	"fmt"
	"path/filepath"

	"github.com/yaklabco/skillcheck/pkg/config"
	"github.com/yaklabco/skillcheck/pkg/fsutil"
	"github.com/yaklabco/skillcheck/pkg/lint"
	"github.com/yaklabco/skillcheck/pkg/lint/refs"
)

// Rule identifiers emitted by ReferenceDepthRule.
const (
	RuleReferenceMissing = "references.missing"
	RuleReferenceNested  = "references.nested_depth"
)

// ReferenceDepthRule walks the link graph rooted at SKILL.md two levels deep.
//
// Level one is every Markdown document SKILL.md links to; a missing target
// is reported there. Level two is every document those files link to; any
// existing target is reported as nesting, including links back to SKILL.md
// or to the file itself. The walk never goes deeper, so link cycles terminate.
type ReferenceDepthRule struct {
	lint.BaseRule
}

// NewReferenceDepthRule creates the reference depth rule group.
func NewReferenceDepthRule() *ReferenceDepthRule {
	return &ReferenceDepthRule{
		BaseRule: lint.NewBaseRule(
			"references",
			"reference-depth",
			"Linked documents exist and sit one hop from SKILL.md",
			RuleReferenceMissing,
			RuleReferenceNested,
		),
	}
}

// Apply walks the link graph.
func (r *ReferenceDepthRule) Apply(ctx *lint.RuleContext) ([]lint.Issue, error) {
	entry := ctx.Package.Entry
	text, ok := ctx.Read(entry)
	if !ok {
		return nil, nil
	}

	self := entry
	if real, err := filepath.EvalSymlinks(entry); err == nil {
		self = real
	}

	var issues []lint.Issue
	var firstLevel []string
	seen := make(map[string]struct{})

	for _, link := range refs.Extract(text) {
		target, ok := refs.Resolve(entry, link.Target)
		if !ok {
			continue
		}

		if !fsutil.Exists(target) {
			issues = append(issues,
				lint.NewIssue(RuleReferenceMissing, entry, "Linked markdown file is missing: "+link.Target).
					AtLine(link.Line).
					WithSeverity(config.SeverityWarning).
					WithFix("Fix broken link or create the referenced file.").
					Build())
			continue
		}

		if target == self || !fsutil.IsRegular(target) || !ctx.Package.Contains(target) {
			continue
		}
		if _, dup := seen[target]; dup {
			continue
		}
		seen[target] = struct{}{}
		firstLevel = append(firstLevel, target)
	}

	for _, file := range firstLevel {
		if ctx.Cancelled() {
			return issues, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		nestedText, ok := ctx.Read(file)
		if !ok {
			continue
		}

		for _, link := range refs.Extract(nestedText) {
			target, ok := refs.Resolve(file, link.Target)
			if !ok || !fsutil.Exists(target) {
				continue
			}

			issues = append(issues,
				lint.NewIssue(RuleReferenceNested, file,
					"Reference file links to another markdown file (more than one level deep).").
					AtLine(link.Line).
					WithSeverity(config.SeverityWarning).
					WithFix("Link that file directly from SKILL.md as well.").
					Build())
		}
	}

	return issues, nil
}
