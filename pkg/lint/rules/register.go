package rules

import "github.com/yaklabco/skillcheck/pkg/lint"

// RegisterAll registers all built-in rule groups with the given registry.
// Registration order is execution order.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewFrontMatterRule())    // frontmatter
	registry.Register(NewWindowsPathRule())    // paths
	registry.Register(NewReferenceDepthRule()) // references
	registry.Register(NewReferenceTOCRule())   // toc
	registry.Register(NewTimeSensitiveRule())  // timing
}

// init registers all built-in rule groups with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
}
