package rules

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/skillcheck/pkg/lint"
)

func TestRegisterAll_Order(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	RegisterAll(reg)

	assert.Equal(t, []string{"frontmatter", "paths", "references", "toc", "timing"}, reg.IDs())
}

func TestDefaultRegistry_CoversRuleIdentifiers(t *testing.T) {
	t.Parallel()

	ids := []string{
		RuleFrontMatterFormat, RuleFrontMatterParse,
		RuleNameRequired, RuleNameLength, RuleNameFormat, RuleNameReserved, RuleNameXML,
		RuleDescriptionRequired, RuleDescriptionLength, RuleDescriptionXML,
		RuleDescriptionPerson, RuleDescriptionTrigger, RuleBodyLength,
		RuleWindowsPath, RuleReferenceMissing, RuleReferenceNested,
		RuleReferenceTOC, RuleTimeSensitive,
	}
	for _, id := range ids {
		_, ok := lint.DefaultRegistry.GroupFor(id)
		assert.True(t, ok, id)
	}
}

func TestCheck_MissingEntryOnly(t *testing.T) {
	t.Parallel()

	root := writePackage(t, map[string]string{
		"references/guide.md": "Use scripts\\run.py as of 2024.\n",
	})

	result := checkPackage(t, root)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, lint.RuleEntryMissing, result.Issues[0].Rule)
	assert.True(t, result.HasErrors())
}

func TestCheck_NoShortCircuit(t *testing.T) {
	t.Parallel()

	root := writePackage(t, map[string]string{
		"SKILL.md":        "# No front matter\n\nSee [a](references/a.md) and [gone](missing.md).\nPath scripts\\x.py today.\n",
		"references/a.md": "[b](b.md)\n",
		"references/b.md": numberedLines(120),
	})

	result := checkPackage(t, root)
	assert.ElementsMatch(t, []string{
		RuleFrontMatterFormat,
		RuleWindowsPath,
		RuleReferenceMissing,
		RuleReferenceNested,
		RuleReferenceTOC,
		RuleTimeSensitive,
	}, ruleIDs(result.Issues))
	assert.True(t, result.HasErrors())
	assert.Nil(t, result.FrontMatter)
}

func TestCheck_DeterministicOutput(t *testing.T) {
	t.Parallel()

	root := writePackage(t, map[string]string{
		"SKILL.md":        entryWith("Demo", "You build things currently.") + "[x](references/x.md)\n",
		"references/x.md": "C:\\a\\b in 2024\n[y](y.md)\n",
		"references/y.md": "as of today\n",
		"notes.md":        "dir\\file 2030\n",
	})

	issues := checkPackage(t, root).Issues
	require.NotEmpty(t, issues)
	first, err := json.Marshal(issues)
	require.NoError(t, err)
	second, err := json.Marshal(checkPackage(t, root).Issues)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))

	var decoded []lint.Issue
	require.NoError(t, json.Unmarshal(first, &decoded))
	for i := 1; i < len(decoded); i++ {
		assert.LessOrEqual(t, lint.CompareIssues(decoded[i-1], decoded[i]), 0)
	}
}

func TestCheck_CompliantPackagePasses(t *testing.T) {
	t.Parallel()

	root := writePackage(t, map[string]string{
		"SKILL.md":            validEntry + "\nSee [guide](references/guide.md).\n",
		"references/guide.md": "# Guide\n\nUse scripts/run.py.\n",
	})

	result := checkPackage(t, root)
	assert.Empty(t, result.Issues)
	assert.False(t, result.HasErrors())
	assert.Equal(t, "pdf-processing", result.FrontMatter["name"])
}
