package runner

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/skillcheck/pkg/fsutil"
)

// Discover resolves opts.Paths into the package roots to check.
// It returns a deterministically sorted, de-duplicated list of absolute paths.
//
// Without opts.Discover every path is a package root as given, even when it
// does not exist, so that the checker reports it. With opts.Discover each
// existing directory is searched for SKILL.md files and every containing
// directory becomes a root; a tree without any is kept as a root itself.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	seen := make(map[string]struct{})
	var roots []string
	add := func(root string) {
		if _, ok := seen[root]; ok {
			return
		}
		seen[root] = struct{}{}
		roots = append(roots, root)
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		if !opts.Discover || !fsutil.IsDir(absPath) {
			add(absPath)
			continue
		}

		found, err := findPackages(absPath, opts.ExcludeGlobs)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			add(absPath)
			continue
		}
		for _, root := range found {
			add(root)
		}
	}

	slices.Sort(roots)
	return roots, nil
}

// findPackages returns the directories under tree that contain a SKILL.md.
func findPackages(tree string, exclude []string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(tree), EntryPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", tree, err)
	}

	var roots []string
	for _, match := range matches {
		dir := path.Dir(match)
		if excluded(dir, exclude) {
			continue
		}
		roots = append(roots, filepath.Join(tree, filepath.FromSlash(dir)))
	}
	return roots, nil
}

// excluded reports whether the slash-separated relative dir matches any pattern.
func excluded(dir string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, dir); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, dir+"/SKILL.md"); err == nil && ok {
			return true
		}
	}
	return false
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}
