package rules

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/skillcheck/pkg/config"
)

func TestReferenceDepthRule_MissingTarget(t *testing.T) {
	t.Parallel()

	root := writePackage(t, map[string]string{
		"SKILL.md": validEntry + "\nSee [foo](references/foo.md) for details.\n",
	})

	issues := applyRule(t, NewReferenceDepthRule(), root)
	require.Len(t, issues, 1)

	issue := issues[0]
	assert.Equal(t, RuleReferenceMissing, issue.Rule)
	assert.Equal(t, config.SeverityWarning, issue.Severity)
	assert.Equal(t, filepath.Join(root, "SKILL.md"), issue.File)
	assert.Equal(t, 10, issue.Line)
	assert.Equal(t, "Linked markdown file is missing: references/foo.md", issue.Message)
	assert.Empty(t, filterRule(issues, RuleReferenceNested))
}

func TestReferenceDepthRule_NestedLink(t *testing.T) {
	t.Parallel()

	root := writePackage(t, map[string]string{
		"SKILL.md":        validEntry + "\n[a](references/a.md)\n",
		"references/a.md": "# A\n\nMore in [b](b.md).\n",
		"references/b.md": "# B\n",
	})

	issues := applyRule(t, NewReferenceDepthRule(), root)
	require.Len(t, issues, 1)
	assert.Equal(t, RuleReferenceNested, issues[0].Rule)
	assert.Equal(t, filepath.Join(root, "references", "a.md"), issues[0].File)
	assert.Equal(t, 3, issues[0].Line)
	assert.Equal(t, config.SeverityWarning, issues[0].Severity)
}

func TestReferenceDepthRule_DirectLinksAreFine(t *testing.T) {
	t.Parallel()

	root := writePackage(t, map[string]string{
		"SKILL.md":        validEntry + "\n[a](references/a.md) [b](./references/b.md#usage)\n",
		"references/a.md": "# A\n\nNo further links.\n",
		"references/b.md": "# B\n\n[external](https://example.com/x.md) [mail](mailto:x@example.com)\n",
	})

	assert.Empty(t, applyRule(t, NewReferenceDepthRule(), root))
}

func TestReferenceDepthRule_BackLinksAreNested(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "back to entry", body: "# A\n\nBack to [skill](../SKILL.md).\n"},
		{name: "to itself", body: "# A\n\nSee [top](a.md#top).\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := writePackage(t, map[string]string{
				"SKILL.md":        validEntry + "\n[a](references/a.md)\n",
				"references/a.md": tt.body,
			})

			issues := applyRule(t, NewReferenceDepthRule(), root)
			require.Len(t, issues, 1)
			assert.Equal(t, RuleReferenceNested, issues[0].Rule)
			assert.Equal(t, filepath.Join(root, "references", "a.md"), issues[0].File)
			assert.Equal(t, 3, issues[0].Line)
		})
	}
}

func TestReferenceDepthRule_MissingSecondLevelIgnored(t *testing.T) {
	t.Parallel()

	root := writePackage(t, map[string]string{
		"SKILL.md":        validEntry + "\n[a](references/a.md)\n",
		"references/a.md": "[gone](gone.md)\n",
	})

	assert.Empty(t, applyRule(t, NewReferenceDepthRule(), root))
}

func TestReferenceDepthRule_MutualLinks(t *testing.T) {
	t.Parallel()

	t.Run("both first level", func(t *testing.T) {
		t.Parallel()

		root := writePackage(t, map[string]string{
			"SKILL.md":        validEntry + "\n[a](references/a.md)\n[b](references/b.md)\n",
			"references/a.md": "[b](b.md)\n",
			"references/b.md": "[a](a.md)\n",
		})

		issues := applyRule(t, NewReferenceDepthRule(), root)
		require.Len(t, issues, 2)
		files := []string{issues[0].File, issues[1].File}
		assert.ElementsMatch(t, []string{
			filepath.Join(root, "references", "a.md"),
			filepath.Join(root, "references", "b.md"),
		}, files)
		for _, issue := range issues {
			assert.Equal(t, RuleReferenceNested, issue.Rule)
		}
	})

	t.Run("only one first level", func(t *testing.T) {
		t.Parallel()

		root := writePackage(t, map[string]string{
			"SKILL.md":        validEntry + "\n[a](references/a.md)\n",
			"references/a.md": "[b](b.md)\n",
			"references/b.md": "[a](a.md)\n",
		})

		issues := applyRule(t, NewReferenceDepthRule(), root)
		require.Len(t, issues, 1)
		assert.Equal(t, filepath.Join(root, "references", "a.md"), issues[0].File)
	})
}

func TestReferenceDepthRule_DuplicateFirstLevelLinks(t *testing.T) {
	t.Parallel()

	root := writePackage(t, map[string]string{
		"SKILL.md":        validEntry + "\n[a](references/a.md)\n[again](references/a.md#more)\n",
		"references/a.md": "[b](b.md)\n",
		"references/b.md": "# B\n",
	})

	assert.Len(t, applyRule(t, NewReferenceDepthRule(), root), 1)
}

func TestReferenceDepthRule_OutsidePackageNotWalked(t *testing.T) {
	t.Parallel()

	outer := writePackage(t, map[string]string{
		"shared.md":      "[other](other.md)\n",
		"other.md":       "# Other\n",
		"skill/SKILL.md": validEntry + "\n[shared](../shared.md)\n",
	})

	assert.Empty(t, applyRule(t, NewReferenceDepthRule(), filepath.Join(outer, "skill")))
}
