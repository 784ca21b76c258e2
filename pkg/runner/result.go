package runner

import (
	"time"

	"github.com/samber/lo"

	"github.com/yaklabco/skillcheck/pkg/config"
	"github.com/yaklabco/skillcheck/pkg/inventory"
	"github.com/yaklabco/skillcheck/pkg/lint"
)

// PackageOutcome wraps a check result with the root it was requested for.
type PackageOutcome struct {
	// Root is the package root as discovered.
	Root string

	// Result contains the check result for this package.
	// May be nil if the check was interrupted.
	Result *lint.Result

	// Inventory is the package file classification, when requested.
	Inventory *inventory.Inventory

	// Duration is how long the check took.
	Duration time.Duration

	// Error is set if the package could not be checked.
	Error error
}

// Issues returns the package's issues, or nil.
func (o PackageOutcome) Issues() []lint.Issue {
	if o.Result == nil {
		return nil
	}
	return o.Result.Issues
}

// Stats captures aggregate information about a run.
type Stats struct {
	// PackagesDiscovered is the total number of package roots found.
	PackagesDiscovered int

	// PackagesChecked is the number of packages checked to completion.
	PackagesChecked int

	// PackagesFailed is the number of packages with at least one error issue.
	PackagesFailed int

	// PackagesErrored is the number of packages that could not be checked.
	PackagesErrored int

	// IssuesTotal is the total number of issues across all packages.
	IssuesTotal int

	// IssuesBySeverity maps severity levels to counts.
	IssuesBySeverity map[config.Severity]int

	// FilesWithIssues is the number of distinct files with at least one issue.
	FilesWithIssues int
}

// Result is the overall runner result.
type Result struct {
	// Packages contains the outcome for each package.
	// Packages are ordered deterministically (by root path).
	Packages []PackageOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// Issues returns every issue of the run, package by package.
func (r *Result) Issues() []lint.Issue {
	if r == nil {
		return nil
	}
	return lo.FlatMap(r.Packages, func(o PackageOutcome, _ int) []lint.Issue {
		return o.Issues()
	})
}

// HasFailures reports whether any issue with error severity occurred
// or any package could not be checked.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.IssuesBySeverity[config.SeverityError] > 0 || r.Stats.PackagesErrored > 0
}

// HasWarnings reports whether any issue with warning severity occurred.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	return r.Stats.IssuesBySeverity[config.SeverityWarning] > 0
}

// HasIssues reports whether any issues were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.IssuesTotal > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		IssuesBySeverity: make(map[config.Severity]int),
	}
}

// accumulate updates the result with a package outcome.
func (r *Result) accumulate(outcome PackageOutcome) {
	r.Packages = append(r.Packages, outcome)

	if outcome.Error != nil {
		r.Stats.PackagesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.PackagesChecked++

	issues := outcome.Result.Issues
	r.Stats.IssuesTotal += len(issues)
	if outcome.Result.HasErrors() {
		r.Stats.PackagesFailed++
	}

	for severity, n := range lint.CountBySeverity(issues) {
		r.Stats.IssuesBySeverity[severity] += n
	}
	r.Stats.FilesWithIssues += len(lo.Uniq(lo.Map(issues, func(i lint.Issue, _ int) string { return i.File })))
}
