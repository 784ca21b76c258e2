package lint

import (
	"context"
	"errors"

	"github.com/yaklabco/skillcheck/pkg/config"
	"github.com/yaklabco/skillcheck/pkg/frontmatter"
	"github.com/yaklabco/skillcheck/pkg/skill"
)

// RuleContext provides all context needed by a rule group to check a package.
//
// Like the context of a single file lint, RuleContext stores context.Context
// as a field (Ctx). It is a short-lived parameter object created per
// invocation, and the Rule interface keeps a single Apply method.
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// Package is the skill package under check.
	Package *skill.Package

	// Config is the resolved configuration.
	Config *config.Config

	// Registry provides access to the rule registry.
	Registry *Registry

	// run is shared by every group of one check.
	run *runState
}

// runState is the state shared across the rule groups of a single check.
type runState struct {
	unreadable  []Issue
	seen        map[string]struct{}
	frontMatter frontmatter.Fields
}

func newRunState() *runState {
	return &runState{seen: make(map[string]struct{})}
}

// NewRuleContext creates a RuleContext for the given package and configuration.
func NewRuleContext(ctx context.Context, pkg *skill.Package, cfg *config.Config) *RuleContext {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &RuleContext{
		Ctx:     ctx,
		Package: pkg,
		Config:  cfg,
		run:     newRunState(),
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Limits returns the configured thresholds, defaults filled in.
func (rc *RuleContext) Limits() config.Limits {
	return rc.Config.Limits.WithDefaults()
}

// Read returns the normalized text of a package file.
// When the file cannot be read, ok is false and a single file.unreadable
// issue is recorded for the path, however many groups ask for it.
func (rc *RuleContext) Read(path string) (string, bool) {
	text, err := rc.Package.Read(rc.Ctx, path)
	if err == nil {
		return text, true
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "", false
	}

	if _, dup := rc.run.seen[path]; !dup {
		rc.run.seen[path] = struct{}{}
		rc.run.unreadable = append(rc.run.unreadable,
			NewIssue(RuleFileUnreadable, path, "File could not be read: "+err.Error()).
				WithSeverity(config.SeverityError).
				WithFix("Check the file exists and is readable.").
				Build())
	}
	return "", false
}

// RecordFrontMatter stores the parsed front matter mapping of the entry document.
func (rc *RuleContext) RecordFrontMatter(fields frontmatter.Fields) {
	rc.run.frontMatter = fields
}

// FrontMatter returns the front matter recorded so far in this check.
func (rc *RuleContext) FrontMatter() frontmatter.Fields {
	return rc.run.frontMatter
}

// Unreadable returns the file.unreadable issues recorded so far.
func (rc *RuleContext) Unreadable() []Issue {
	return rc.run.unreadable
}
