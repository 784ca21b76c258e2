package rules

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/skillcheck/pkg/config"
	"github.com/yaklabco/skillcheck/pkg/lint"
	"github.com/yaklabco/skillcheck/pkg/skill"
)

const validEntry = `---
name: pdf-processing
description: Extracts text and tables from PDF files. Use when working with PDF documents.
---

# PDF processing

Read the guide before starting.
`

// writePackage creates a skill package in a temp directory and returns its root.
func writePackage(t testing.TB, files map[string]string) string {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// applyRule runs a single rule group against the package at root.
func applyRule(t *testing.T, rule lint.Rule, root string) []lint.Issue {
	t.Helper()

	pkg, err := skill.Open(root)
	require.NoError(t, err)

	rc := lint.NewRuleContext(context.Background(), pkg, config.NewConfig())
	issues, err := rule.Apply(rc)
	require.NoError(t, err)
	return issues
}

// checkPackage runs every built-in rule group against root.
func checkPackage(t *testing.T, root string) *lint.Result {
	t.Helper()

	reg := lint.NewRegistry()
	RegisterAll(reg)

	result, err := lint.NewChecker(reg, nil).Check(context.Background(), root)
	require.NoError(t, err)
	return result
}

func ruleIDs(issues []lint.Issue) []string {
	ids := make([]string, 0, len(issues))
	for _, issue := range issues {
		ids = append(ids, issue.Rule)
	}
	return ids
}

func filterRule(issues []lint.Issue, rule string) []lint.Issue {
	var out []lint.Issue
	for _, issue := range issues {
		if issue.Rule == rule {
			out = append(out, issue)
		}
	}
	return out
}

// numberedLines returns n lines of filler text.
func numberedLines(n int) string {
	var sb strings.Builder
	for i := range n {
		sb.WriteString("Line ")
		sb.WriteString(strings.Repeat("x", i%7+1))
		sb.WriteString("\n")
	}
	return sb.String()
}

func entryWith(name, description string) string {
	return "---\nname: " + name + "\ndescription: " + description + "\n---\n\n# Title\n"
}
