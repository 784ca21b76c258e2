package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/skillcheck/pkg/config"
)

const compliantDescription = "Extracts text from PDF files. Use when working with PDF documents."

func TestFrontMatterRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		entry     string
		wantRules []string
	}{
		{
			name:      "compliant",
			entry:     validEntry,
			wantRules: []string{},
		},
		{
			name:      "no front matter",
			entry:     "# Title\n\nname: demo\n",
			wantRules: []string{RuleFrontMatterFormat},
		},
		{
			name:      "unterminated front matter",
			entry:     "---\nname: demo\ndescription: x\n",
			wantRules: []string{RuleFrontMatterFormat},
		},
		{
			name:      "empty front matter",
			entry:     "---\n---\n# Title\n",
			wantRules: []string{RuleFrontMatterParse},
		},
		{
			name:      "scalar front matter",
			entry:     "---\njust words\n---\n",
			wantRules: []string{RuleFrontMatterParse},
		},
		{
			name:      "missing name",
			entry:     "---\ndescription: " + compliantDescription + "\n---\n",
			wantRules: []string{RuleNameRequired},
		},
		{
			name:      "blank name",
			entry:     entryWith(`"  "`, compliantDescription),
			wantRules: []string{RuleNameRequired},
		},
		{
			name:      "non-string name",
			entry:     entryWith("42", compliantDescription),
			wantRules: []string{RuleNameRequired},
		},
		{
			name:      "missing description",
			entry:     "---\nname: demo\n---\n",
			wantRules: []string{RuleDescriptionRequired},
		},
		{
			name:      "uppercase name",
			entry:     entryWith("PDF-Tools", compliantDescription),
			wantRules: []string{RuleNameFormat},
		},
		{
			name:      "name too long",
			entry:     entryWith(strings.Repeat("a", 65), compliantDescription),
			wantRules: []string{RuleNameLength},
		},
		{
			name:      "name at limit",
			entry:     entryWith(strings.Repeat("a", 64), compliantDescription),
			wantRules: []string{},
		},
		{
			name:      "reserved term",
			entry:     entryWith("claude-helper", compliantDescription),
			wantRules: []string{RuleNameReserved},
		},
		{
			name:      "reserved term matches case-sensitively",
			entry:     entryWith("Claude-Helper", compliantDescription),
			wantRules: []string{RuleNameFormat},
		},
		{
			name:      "name with tag triggers several checks",
			entry:     entryWith("a<b>c", compliantDescription),
			wantRules: []string{RuleNameFormat, RuleNameXML},
		},
		{
			name:      "description with tag",
			entry:     entryWith("demo", "Builds <b>reports</b>. Use when asked."),
			wantRules: []string{RuleDescriptionXML},
		},
		{
			name:      "description without trigger",
			entry:     entryWith("demo", "Builds reports from spreadsheets."),
			wantRules: []string{RuleDescriptionTrigger},
		},
		{
			name:      "description in first person",
			entry:     entryWith("demo", "We build reports. Use when asked."),
			wantRules: []string{RuleDescriptionPerson},
		},
		{
			name:      "description too long",
			entry:     entryWith("demo", "Use when "+strings.Repeat("x", 1020)),
			wantRules: []string{RuleDescriptionLength},
		},
		{
			name:      "yaml fallback still validates",
			entry:     "---\nname: demo\ndescription: Use when: reports are needed\n---\n",
			wantRules: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := writePackage(t, map[string]string{"SKILL.md": tt.entry})
			issues := applyRule(t, NewFrontMatterRule(), root)
			assert.ElementsMatch(t, tt.wantRules, ruleIDs(issues))
		})
	}
}

func TestFrontMatterRule_CompliantHasNoErrors(t *testing.T) {
	t.Parallel()

	descriptions := []string{
		compliantDescription,
		"Generates changelogs. Use when preparing a release.",
		"Formats SQL if the query is unreadable.",
	}
	names := []string{"pdf-processing", "a", "changelog-2-tool", "x9"}

	for _, name := range names {
		for _, description := range descriptions {
			root := writePackage(t, map[string]string{"SKILL.md": entryWith(name, description)})
			for _, issue := range applyRule(t, NewFrontMatterRule(), root) {
				assert.NotEqual(t, config.SeverityError, issue.Severity, "%s / %s: %s", name, description, issue.Rule)
			}
		}
	}
}

func TestFrontMatterRule_SecondPersonIsWarning(t *testing.T) {
	t.Parallel()

	for _, word := range []string{"you", "You", "YOU", "your", "Yours"} {
		root := writePackage(t, map[string]string{
			"SKILL.md": entryWith("demo", "Helps "+word+" write reports. Use when asked."),
		})
		person := filterRule(applyRule(t, NewFrontMatterRule(), root), RuleDescriptionPerson)
		require.Len(t, person, 1, word)
		assert.Equal(t, config.SeverityWarning, person[0].Severity)
		assert.Equal(t, 3, person[0].Line)
	}
}

func TestFrontMatterRule_WholeWordPronouns(t *testing.T) {
	t.Parallel()

	root := writePackage(t, map[string]string{
		"SKILL.md": entryWith("demo", "Audits youth sports data and myriad user records. Use when asked."),
	})
	assert.Empty(t, filterRule(applyRule(t, NewFrontMatterRule(), root), RuleDescriptionPerson))
}

func TestFrontMatterRule_LineAttribution(t *testing.T) {
	t.Parallel()

	entry := "---\ntitle: x\nname: Bad_Name\ndescription: nothing here\n---\n"
	root := writePackage(t, map[string]string{"SKILL.md": entry})
	issues := applyRule(t, NewFrontMatterRule(), root)

	format := filterRule(issues, RuleNameFormat)
	require.Len(t, format, 1)
	assert.Equal(t, 3, format[0].Line)

	trigger := filterRule(issues, RuleDescriptionTrigger)
	require.Len(t, trigger, 1)
	assert.Equal(t, 4, trigger[0].Line)

	missing := writePackage(t, map[string]string{"SKILL.md": "---\nname: demo\n---\n"})
	required := filterRule(applyRule(t, NewFrontMatterRule(), missing), RuleDescriptionRequired)
	require.Len(t, required, 1)
	assert.Equal(t, 1, required[0].Line)
}

func TestFrontMatterRule_Messages(t *testing.T) {
	t.Parallel()

	root := writePackage(t, map[string]string{"SKILL.md": entryWith(strings.Repeat("n", 70), compliantDescription)})
	issues := filterRule(applyRule(t, NewFrontMatterRule(), root), RuleNameLength)
	require.Len(t, issues, 1)
	assert.Equal(t, "Name is too long (70 > 64).", issues[0].Message)
	assert.Equal(t, "Shorten name to 64 characters or fewer.", issues[0].Fix)
	assert.Equal(t, config.SeverityError, issues[0].Severity)
}

func TestFrontMatterRule_BodyLength(t *testing.T) {
	t.Parallel()

	header := "---\nname: demo\ndescription: " + compliantDescription + "\n---\n\n"

	long := writePackage(t, map[string]string{"SKILL.md": header + numberedLines(501)})
	body := filterRule(applyRule(t, NewFrontMatterRule(), long), RuleBodyLength)
	require.Len(t, body, 1)
	assert.Equal(t, config.SeverityWarning, body[0].Severity)
	assert.Equal(t, 1, body[0].Line)
	assert.Equal(t, "SKILL.md body exceeds 500 lines (501 lines).", body[0].Message)

	exact := writePackage(t, map[string]string{"SKILL.md": header + numberedLines(500)})
	assert.Empty(t, filterRule(applyRule(t, NewFrontMatterRule(), exact), RuleBodyLength))

	noFrontMatter := writePackage(t, map[string]string{"SKILL.md": numberedLines(600)})
	assert.Equal(t, []string{RuleFrontMatterFormat}, ruleIDs(applyRule(t, NewFrontMatterRule(), noFrontMatter)))
}

func TestFrontMatterRule_ConfiguredReservedTerms(t *testing.T) {
	t.Parallel()

	root := writePackage(t, map[string]string{"SKILL.md": entryWith("acme-helper", compliantDescription)})
	assert.Empty(t, applyRule(t, NewFrontMatterRule(), root))

	assert.True(t, containsAny("my-acme-helper", []string{"acme"}))
	assert.False(t, containsAny("ACME-helper", []string{"acme"}))
	assert.False(t, containsAny("helper", []string{"", "acme"}))
	assert.Equal(t, config.DefaultReservedTerms(), reservedTerms(nil))
	assert.Equal(t, []string{"acme"}, reservedTerms(&config.Config{ReservedTerms: []string{"acme"}}))
}
