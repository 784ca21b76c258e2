// Package refs extracts Markdown links between documents of a skill package
// and resolves them to file system paths.
//
// Extraction is pattern based: only inline links of the form [text](target)
// are recognized, and only targets naming a Markdown document are kept.
package refs

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yaklabco/skillcheck/pkg/lines"
)

// linkPattern matches inline links and captures the destination.
var linkPattern = regexp.MustCompile(`\[[^\]]+\]\(([^)]+)\)`)

// Link is a Markdown link to another document.
type Link struct {
	// Target is the destination as written, surrounding whitespace trimmed.
	Target string

	// Line is the 1-based line of the link in the source text.
	Line int
}

// Extract returns the Markdown document links in text, in source order.
func Extract(text string) []Link {
	var links []Link
	for _, match := range linkPattern.FindAllStringSubmatchIndex(text, -1) {
		target := strings.TrimSpace(text[match[2]:match[3]])
		if !IsMarkdownTarget(target) {
			continue
		}
		links = append(links, Link{
			Target: target,
			Line:   lines.At(text, match[0]),
		})
	}
	return links
}

// IsMarkdownTarget reports whether a link destination names a Markdown document.
func IsMarkdownTarget(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasSuffix(lower, ".md") || strings.Contains(lower, ".md#")
}

// StripTarget removes the fragment and query from a destination.
func StripTarget(target string) string {
	target, _, _ = strings.Cut(target, "#")
	target, _, _ = strings.Cut(target, "?")
	return strings.TrimSpace(target)
}

// IsExternal reports whether a stripped destination points outside the file system.
func IsExternal(target string) bool {
	return target == "" || strings.Contains(target, "://") || strings.HasPrefix(target, "mailto:")
}

// Resolve converts a link destination found in baseFile into an absolute path.
// It returns false for empty, external and mailto destinations.
// Existing targets have their symlinks resolved so that paths compare equal
// regardless of how they were reached.
func Resolve(baseFile, target string) (string, bool) {
	trimmed := StripTarget(target)
	if IsExternal(trimmed) {
		return "", false
	}

	path := filepath.FromSlash(trimmed)
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(baseFile), path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	if _, statErr := os.Stat(abs); statErr == nil {
		if real, evalErr := filepath.EvalSymlinks(abs); evalErr == nil {
			return real, true
		}
	}

	return abs, true
}
