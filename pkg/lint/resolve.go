package lint

import "github.com/yaklabco/skillcheck/pkg/config"

// ResolveRules determines which rule groups to run based on registry and config.
// Returns only enabled groups, in registration order.
func ResolveRules(registry *Registry, cfg *config.Config) []Rule {
	var resolved []Rule
	for _, rule := range registry.Rules() {
		if cfg.RuleEnabled(rule.ID()) && cfg.RuleEnabled(rule.Name()) {
			resolved = append(resolved, rule)
		}
	}
	return resolved
}

// IssueEnabled reports whether issues with the given rule identifier should be kept.
// Structural identifiers are always kept.
func IssueEnabled(cfg *config.Config, issueID string) bool {
	if IsStructural(issueID) {
		return true
	}
	return cfg.RuleEnabled(issueID)
}

// FilterIssues removes issues whose rule identifier is disabled in cfg.
func FilterIssues(cfg *config.Config, issues []Issue) []Issue {
	kept := issues[:0]
	for _, issue := range issues {
		if IssueEnabled(cfg, issue.Rule) {
			kept = append(kept, issue)
		}
	}
	return kept
}
