package lint

// BaseRule provides a default implementation of the Rule interface.
// Embed this in rule implementations and override Apply.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
type BaseRule struct {
	id       string   // Group identifier (e.g., "frontmatter")
	name     string   // Human-readable name
	desc     string   // Detailed description
	issueIDs []string // Rule identifiers the group emits
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, name, desc string, issueIDs ...string) BaseRule {
	return BaseRule{
		id:       id,
		name:     name,
		desc:     desc,
		issueIDs: issueIDs,
	}
}

// ID returns the unique group identifier.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the human-readable name of the group.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a detailed description of what the group checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// IssueIDs returns the rule identifiers the group emits.
func (r *BaseRule) IssueIDs() []string {
	return r.issueIDs
}

// Apply must be overridden by concrete rule implementations.
// The default implementation returns no issues.
func (r *BaseRule) Apply(_ *RuleContext) ([]Issue, error) {
	return nil, nil
}
