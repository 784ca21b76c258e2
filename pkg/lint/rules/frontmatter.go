package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/skillcheck/pkg/config"
	"github.com/yaklabco/skillcheck/pkg/frontmatter"
	"github.com/yaklabco/skillcheck/pkg/lines"
	"github.com/yaklabco/skillcheck/pkg/lint"
)

// Rule identifiers emitted by FrontMatterRule.
const (
	RuleFrontMatterFormat   = "frontmatter.format"
	RuleFrontMatterParse    = "frontmatter.parse"
	RuleNameRequired        = "frontmatter.name.required"
	RuleNameLength          = "frontmatter.name.length"
	RuleNameFormat          = "frontmatter.name.format"
	RuleNameReserved        = "frontmatter.name.reserved"
	RuleNameXML             = "frontmatter.name.xml"
	RuleDescriptionRequired = "frontmatter.description.required"
	RuleDescriptionLength   = "frontmatter.description.length"
	RuleDescriptionXML      = "frontmatter.description.xml"
	RuleDescriptionPerson   = "frontmatter.description.person"
	RuleDescriptionTrigger  = "frontmatter.description.trigger"
	RuleBodyLength          = "skill.body.length"
)

var (
	namePattern          = regexp.MustCompile(`^[a-z0-9-]+$`)
	xmlTagPattern        = regexp.MustCompile(`<[^>]+>`)
	firstPersonPattern   = regexp.MustCompile(`(?i)\b(i|we|our|us|my)\b`)
	secondPersonPattern  = regexp.MustCompile(`(?i)\b(you|your|yours)\b`)
	triggerPhrasePattern = regexp.MustCompile(`(?i)\b(use when|when|if)\b`)
)

// FrontMatterRule validates the front matter and body length of SKILL.md.
type FrontMatterRule struct {
	lint.BaseRule
}

// NewFrontMatterRule creates the front matter rule group.
func NewFrontMatterRule() *FrontMatterRule {
	return &FrontMatterRule{
		BaseRule: lint.NewBaseRule(
			"frontmatter",
			"front-matter",
			"SKILL.md starts with YAML front matter holding a valid name and description",
			RuleFrontMatterFormat,
			RuleFrontMatterParse,
			RuleNameRequired,
			RuleNameLength,
			RuleNameFormat,
			RuleNameReserved,
			RuleNameXML,
			RuleDescriptionRequired,
			RuleDescriptionLength,
			RuleDescriptionXML,
			RuleDescriptionPerson,
			RuleDescriptionTrigger,
			RuleBodyLength,
		),
	}
}

// Apply checks the entry document.
func (r *FrontMatterRule) Apply(ctx *lint.RuleContext) ([]lint.Issue, error) {
	entry := ctx.Package.Entry
	text, ok := ctx.Read(entry)
	if !ok {
		return nil, nil
	}

	doc := frontmatter.Split(text)
	if !doc.Found {
		return []lint.Issue{
			lint.NewIssue(RuleFrontMatterFormat, entry,
				"SKILL.md must start with YAML frontmatter delimited by --- lines.").
				WithSeverity(config.SeverityError).
				WithFix("Add valid YAML frontmatter containing name and description.").
				Build(),
		}, nil
	}

	fields, _ := frontmatter.Parse(doc.Block)
	if len(fields) == 0 {
		return []lint.Issue{
			lint.NewIssue(RuleFrontMatterParse, entry,
				"Frontmatter could not be parsed into key-value fields.").
				WithSeverity(config.SeverityError).
				WithFix("Fix YAML syntax so name and description can be parsed.").
				Build(),
		}, nil
	}
	ctx.RecordFrontMatter(fields)

	limits := ctx.Limits()

	var issues []lint.Issue
	issues = append(issues, r.checkName(ctx, entry, text, fields, limits)...)
	issues = append(issues, r.checkDescription(entry, text, fields, limits)...)

	if count := lines.Count(doc.Body); count > limits.BodyLines {
		issues = append(issues,
			lint.NewIssue(RuleBodyLength, entry,
				fmt.Sprintf("SKILL.md body exceeds %d lines (%d lines).", limits.BodyLines, count)).
				WithSeverity(config.SeverityWarning).
				WithFix("Move detailed content to references files and link from SKILL.md.").
				Build())
	}

	return issues, nil
}

func (r *FrontMatterRule) checkName(
	ctx *lint.RuleContext,
	entry, text string,
	fields frontmatter.Fields,
	limits config.Limits,
) []lint.Issue {
	name, ok := fields.String("name")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return []lint.Issue{
			lint.NewIssue(RuleNameRequired, entry, "Frontmatter name is missing or empty.").
				WithSeverity(config.SeverityError).
				WithFix("Set name to a lowercase hyphenated value.").
				Build(),
		}
	}

	line := lines.Find(text, "name: "+name)
	nameIssue := func(rule, message, fix string) lint.Issue {
		return lint.NewIssue(rule, entry, message).
			AtLine(line).
			WithSeverity(config.SeverityError).
			WithFix(fix).
			Build()
	}

	var issues []lint.Issue

	if length := utf8.RuneCountInString(name); length > limits.NameLength {
		issues = append(issues, nameIssue(RuleNameLength,
			fmt.Sprintf("Name is too long (%d > %d).", length, limits.NameLength),
			fmt.Sprintf("Shorten name to %d characters or fewer.", limits.NameLength)))
	}

	if !namePattern.MatchString(name) {
		issues = append(issues, nameIssue(RuleNameFormat,
			"Name must contain only lowercase letters, digits, and hyphens.",
			"Normalize name to lowercase hyphen-case."))
	}

	terms := reservedTerms(ctx.Config)
	if containsAny(name, terms) {
		issues = append(issues, nameIssue(RuleNameReserved,
			fmt.Sprintf("Name contains reserved terms (%s).", strings.Join(terms, "/")),
			"Rename the skill to avoid reserved terms."))
	}

	if xmlTagPattern.MatchString(name) {
		issues = append(issues, nameIssue(RuleNameXML,
			"Name must not contain XML-like tags.",
			"Remove angle-bracket tags from name."))
	}

	return issues
}

func (r *FrontMatterRule) checkDescription(
	entry, text string,
	fields frontmatter.Fields,
	limits config.Limits,
) []lint.Issue {
	description, ok := fields.String("description")
	description = strings.TrimSpace(description)
	if !ok || description == "" {
		return []lint.Issue{
			lint.NewIssue(RuleDescriptionRequired, entry, "Frontmatter description is missing or empty.").
				WithSeverity(config.SeverityError).
				WithFix("Write a non-empty description that states what the skill does and when to use it.").
				Build(),
		}
	}

	line := lines.Find(text, "description:")
	descIssue := func(rule string, severity config.Severity, message, fix string) lint.Issue {
		return lint.NewIssue(rule, entry, message).
			AtLine(line).
			WithSeverity(severity).
			WithFix(fix).
			Build()
	}

	var issues []lint.Issue

	if length := utf8.RuneCountInString(description); length > limits.DescriptionLength {
		issues = append(issues, descIssue(RuleDescriptionLength, config.SeverityError,
			fmt.Sprintf("Description is too long (%d > %d).", length, limits.DescriptionLength),
			fmt.Sprintf("Shorten description to %d characters or fewer.", limits.DescriptionLength)))
	}

	if xmlTagPattern.MatchString(description) {
		issues = append(issues, descIssue(RuleDescriptionXML, config.SeverityError,
			"Description must not contain XML-like tags.",
			"Remove angle-bracket tags from description."))
	}

	if firstPersonPattern.MatchString(description) || secondPersonPattern.MatchString(description) {
		issues = append(issues, descIssue(RuleDescriptionPerson, config.SeverityWarning,
			"Description appears to use first/second-person phrasing.",
			"Rewrite description in third-person style."))
	}

	if !triggerPhrasePattern.MatchString(description) {
		issues = append(issues, descIssue(RuleDescriptionTrigger, config.SeverityWarning,
			"Description may not clearly state when the skill should be used.",
			"Add explicit trigger wording such as 'Use when ...'."))
	}

	return issues
}

func reservedTerms(cfg *config.Config) []string {
	if cfg == nil || len(cfg.ReservedTerms) == 0 {
		return config.DefaultReservedTerms()
	}
	return cfg.ReservedTerms
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(s, term) {
			return true
		}
	}
	return false
}
