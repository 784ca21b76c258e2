// Package lint provides the rule engine, issue model, and registry for skillcheck.
package lint

// Rule defines the interface that all rule groups must implement.
//
// A rule group inspects a whole skill package and may emit several rule
// identifiers; for example the front matter group emits every
// "frontmatter.*" identifier.
type Rule interface {
	// ID returns the unique group identifier (e.g., "frontmatter").
	ID() string

	// Name returns the human-readable name of the group.
	Name() string

	// Description returns a detailed description of what the group checks.
	Description() string

	// IssueIDs returns the rule identifiers this group can emit.
	IssueIDs() []string

	// Apply runs the group against the package in ctx and returns its issues.
	//
	// Rules must:
	//   - Return an issue for each violation found.
	//   - Read package files through RuleContext.Read.
	//   - Respect context cancellation.
	//   - Return error only for internal failures, not violations.
	Apply(ctx *RuleContext) ([]Issue, error)
}
