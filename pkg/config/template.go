package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full lists every rule group and rule identifier with its documentation.
	// If false, generates a minimal template.
	Full bool

	// Rules describes the rule groups to document in a full template.
	Rules []RuleInfo
}

// RuleInfo contains rule group metadata for template generation.
// It is filled in by the caller so this package stays independent of lint.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	IssueIDs    []string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")
	writeSettings(&buf, DefaultLimits(), DefaultReservedTerms())

	if !opts.Full {
		buf.WriteString(`
# Rule toggles, keyed by rule group ID, group name or rule identifier
# rules:
#   timing:
#     enabled: false
#   frontmatter.description.person:
#     enabled: false
`)
		return buf.Bytes()
	}

	buf.WriteString("\n# Rule toggles, keyed by rule group ID, group name or rule identifier\nrules:\n")

	rules := slices.Clone(opts.Rules)
	slices.SortStableFunc(rules, func(a, b RuleInfo) int {
		return strings.Compare(a.ID, b.ID)
	})

	for _, rule := range rules {
		buf.WriteString(fmt.Sprintf("\n  # %s: %s\n", rule.ID, rule.Name))
		if rule.Description != "" {
			buf.WriteString(fmt.Sprintf("  # %s\n", wrapComment(rule.Description, commentWrapWidth)))
		}
		buf.WriteString(fmt.Sprintf("  %s:\n", rule.ID))
		buf.WriteString("    enabled: true\n")
		for _, issueID := range rule.IssueIDs {
			buf.WriteString(fmt.Sprintf("  # %s:\n  #   enabled: true\n", issueID))
		}
	}

	return buf.Bytes()
}

func writeSettings(buf *bytes.Buffer, limits Limits, reserved []string) {
	buf.WriteString(`# File patterns to skip, relative to the package root (doublestar globs)
ignore: []
#   - "references/drafts/**"

# Numeric thresholds
limits:
`)
	buf.WriteString(fmt.Sprintf("  name_length: %d\n", limits.NameLength))
	buf.WriteString(fmt.Sprintf("  description_length: %d\n", limits.DescriptionLength))
	buf.WriteString(fmt.Sprintf("  body_lines: %d\n", limits.BodyLines))
	buf.WriteString(fmt.Sprintf("  reference_lines: %d\n", limits.ReferenceLines))
	buf.WriteString(fmt.Sprintf("  reference_header_lines: %d\n", limits.ReferenceHeaderLines))

	buf.WriteString("\n# Terms a skill name may not contain (case-sensitive)\nreserved_terms:\n")
	for _, term := range reserved {
		buf.WriteString(fmt.Sprintf("  - %s\n", term))
	}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# skillcheck configuration
# Place this file at the root of a repository or skill package as .skillcheck.yml`
}
