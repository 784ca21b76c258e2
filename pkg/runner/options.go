// Package runner provides multi-package checking orchestration.
package runner

import "github.com/yaklabco/skillcheck/pkg/config"

// EntryPattern is the doublestar pattern that locates packages during discovery.
const EntryPattern = "**/SKILL.md"

// Options controls multi-package checking behavior.
type Options struct {
	// Paths are the user-specified package roots (or trees, with Discover).
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Discover treats each path as a tree and checks every directory below it
	// that contains a SKILL.md.
	Discover bool

	// ExcludeGlobs are doublestar patterns, relative to each searched tree,
	// for package directories to skip during discovery.
	ExcludeGlobs []string

	// Inventory classifies each package's files by language.
	Inventory bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
