// Package skill models a skill package on disk: a directory holding an entry
// document named SKILL.md plus auxiliary Markdown documents.
package skill

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/skillcheck/pkg/fsutil"
)

// EntryName is the file name of the entry document.
const EntryName = "SKILL.md"

// ReferencesDir is the directory holding long-form reference documents.
const ReferencesDir = "references"

// Sentinel errors returned by Open.
var (
	// ErrNotDirectory indicates the package root is missing or not a directory.
	ErrNotDirectory = errors.New("skill path is not a directory")

	// ErrMissingEntry indicates the package root has no SKILL.md.
	ErrMissingEntry = errors.New("SKILL.md not found")
)

const markdownPattern = "**/*.md"

// Package is an opened skill package.
type Package struct {
	// Root is the absolute package directory with symlinks resolved.
	Root string

	// Entry is the absolute path of SKILL.md.
	Entry string

	// Ignore holds doublestar patterns, relative to Root, of files to skip
	// when enumerating Markdown documents.
	Ignore []string
}

// Open validates root and returns the package rooted there.
// The error wraps ErrNotDirectory or ErrMissingEntry; a Package is returned
// alongside ErrMissingEntry so callers can still report against its root.
func Open(root string) (*Package, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotDirectory, root, err)
	}

	if !fsutil.IsDir(abs) {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}

	if real, evalErr := filepath.EvalSymlinks(abs); evalErr == nil {
		abs = real
	}

	pkg := &Package{
		Root:  abs,
		Entry: filepath.Join(abs, EntryName),
	}

	if !fsutil.IsRegular(pkg.Entry) {
		return pkg, fmt.Errorf("%w: %s", ErrMissingEntry, abs)
	}

	return pkg, nil
}

// MarkdownFiles returns every Markdown document in the package, sorted.
func (p *Package) MarkdownFiles() ([]string, error) {
	return p.glob(p.Root, markdownPattern)
}

// ReferenceFiles returns every Markdown document under references/, sorted.
// A package without a references directory has none.
func (p *Package) ReferenceFiles() ([]string, error) {
	dir := filepath.Join(p.Root, ReferencesDir)
	if !fsutil.IsDir(dir) {
		return nil, nil
	}
	return p.glob(dir, markdownPattern)
}

// Read returns the normalized text of a package file.
func (p *Package) Read(ctx context.Context, path string) (string, error) {
	return fsutil.ReadText(ctx, path)
}

// Contains reports whether path lies inside the package root.
func (p *Package) Contains(path string) bool {
	rel, err := filepath.Rel(p.Root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// Rel returns path relative to the package root, using forward slashes.
// Paths outside the root are returned unchanged.
func (p *Package) Rel(path string) string {
	if !p.Contains(path) {
		return path
	}
	rel, err := filepath.Rel(p.Root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func (p *Package) glob(dir, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s in %s: %w", pattern, dir, err)
	}

	files := make([]string, 0, len(matches))
	for _, match := range matches {
		path := filepath.Join(dir, filepath.FromSlash(match))
		if p.ignored(path) {
			continue
		}
		files = append(files, path)
	}

	slices.Sort(files)
	return files, nil
}

func (p *Package) ignored(path string) bool {
	if len(p.Ignore) == 0 {
		return false
	}
	rel := p.Rel(path)
	for _, pattern := range p.Ignore {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
