// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"

	// Configuration fields.
	FieldConfig   = "config"
	FieldSource   = "source"
	FieldJobs     = "jobs"
	FieldDiscover = "discover"
	FieldStrict   = "strict"
	FieldFormat   = "format"
	FieldDisabled = "disabled"

	// Package fields.
	FieldPackage = "package"
	FieldRoot    = "root"
	FieldGroup   = "group"
	FieldRule    = "rule"

	// Statistics fields.
	FieldPackagesDiscovered = "packages_discovered"
	FieldPackagesChecked    = "packages_checked"
	FieldPackagesFailed     = "packages_failed"
	FieldIssuesTotal        = "issues_total"
	FieldIssues             = "issues"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
