package lint

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/yaklabco/skillcheck/pkg/config"
	"github.com/yaklabco/skillcheck/pkg/frontmatter"
	"github.com/yaklabco/skillcheck/pkg/skill"
)

// Result contains the outcome of checking a single skill package.
type Result struct {
	// Root is the package root as checked (absolute).
	Root string

	// Issues contains every finding, sorted into presentation order.
	Issues []Issue

	// FrontMatter is the parsed front matter mapping of SKILL.md.
	// It is nil when the package has no parsable front matter.
	FrontMatter frontmatter.Fields

	// GroupErrors contains internal failures by rule group ID.
	// Each one is also reported as a check.failed issue.
	GroupErrors map[string]error
}

// HasErrors returns true if any issue has error severity.
func (r *Result) HasErrors() bool {
	return HasErrors(r.Issues)
}

// HasIssuesFor returns true if any issue carries the given rule identifier.
func (r *Result) HasIssuesFor(rule string) bool {
	return slices.ContainsFunc(r.Issues, func(i Issue) bool { return i.Rule == rule })
}

// HasIssues returns true if any issue was found.
func (r *Result) HasIssues() bool {
	return len(r.Issues) > 0
}

// Checker coordinates rule group execution over a skill package.
type Checker struct {
	// Registry holds all available rule groups.
	Registry *Registry

	// Config is the resolved configuration. Nil means defaults.
	Config *config.Config
}

// NewChecker creates a new Checker with the given registry and configuration.
func NewChecker(registry *Registry, cfg *config.Config) *Checker {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Checker{
		Registry: registry,
		Config:   cfg,
	}
}

// Check audits the skill package rooted at root.
//
// Every conformance problem, including a missing root or entry document, is
// reported as an issue in the Result. The returned error is non-nil only when
// ctx is cancelled before the check completes.
func (c *Checker) Check(ctx context.Context, root string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("check cancelled: %w", err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = root
	}

	result := &Result{
		Root:        absRoot,
		GroupErrors: make(map[string]error),
	}

	pkg, err := skill.Open(absRoot)
	switch {
	case errors.Is(err, skill.ErrNotDirectory):
		result.Issues = []Issue{
			NewIssue(RulePathInvalid, absRoot, "Provided skill path does not exist or is not a directory.").
				WithSeverity(config.SeverityError).
				WithFix("Pass a valid skill directory path.").
				Build(),
		}
		return result, nil
	case errors.Is(err, skill.ErrMissingEntry):
		result.Root = pkg.Root
		result.Issues = []Issue{
			NewIssue(RuleEntryMissing, pkg.Root, "SKILL.md not found.").
				WithSeverity(config.SeverityError).
				WithFix("Create SKILL.md with valid frontmatter and instructions.").
				Build(),
		}
		return result, nil
	case err != nil:
		return nil, fmt.Errorf("open skill package: %w", err)
	}

	pkg.Ignore = c.Config.Ignore
	result.Root = pkg.Root

	ruleCtx := NewRuleContext(ctx, pkg, c.Config)
	ruleCtx.Registry = c.Registry

	var issues []Issue
	for _, rule := range ResolveRules(c.Registry, c.Config) {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("check cancelled: %w", ctx.Err())
		default:
		}

		found, applyErr := rule.Apply(ruleCtx)
		if applyErr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, fmt.Errorf("check cancelled: %w", ctxErr)
			}
			result.GroupErrors[rule.ID()] = applyErr
			issues = append(issues,
				NewIssue(RuleCheckFailed, pkg.Root, fmt.Sprintf("Rule group %q failed: %v", rule.ID(), applyErr)).
					WithSeverity(config.SeverityError).
					WithFix("Report this failure; other rule groups still ran.").
					Build())
			continue
		}

		issues = append(issues, found...)
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("check cancelled: %w", err)
	}

	issues = append(issues, ruleCtx.Unreadable()...)
	issues = FilterIssues(c.Config, issues)
	SortIssues(issues)

	result.Issues = issues
	result.FrontMatter = ruleCtx.FrontMatter()
	return result, nil
}
