// Package inventory classifies the files of a skill package by language.
// It uses go-enry, the linguist port, so scripts and assets bundled with a
// skill are reported with the same names GitHub uses.
package inventory

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-enry/go-enry/v2"
)

// Language names used when go-enry has no answer.
const (
	LanguageBinary = "Binary"
	LanguageOther  = "Other"
)

// sniffSize is how much of each file is read for classification.
const sniffSize = 16 * 1024

// File describes one classified package file.
type File struct {
	// Path is relative to the package root, with forward slashes.
	Path string

	// Language is the detected language, LanguageBinary or LanguageOther.
	Language string

	// Size is the file size in bytes.
	Size int64

	// Vendored is true for paths go-enry treats as third-party code.
	Vendored bool

	// Documentation is true for paths go-enry treats as documentation.
	Documentation bool
}

// LanguageCount is the number of files detected for one language.
type LanguageCount struct {
	Language string
	Files    int
}

// Inventory is the classified file list of a package.
type Inventory struct {
	Root  string
	Files []File
}

// Scan classifies every regular file under root. Files matching an ignore
// pattern (doublestar, relative to root) are skipped.
func Scan(ctx context.Context, root string, ignore []string) (*Inventory, error) {
	matches, err := doublestar.Glob(os.DirFS(root), "**", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("list package files: %w", err)
	}
	slices.Sort(matches)

	inv := &Inventory{Root: root}
	for _, rel := range matches {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scan cancelled: %w", err)
		}
		if ignored(rel, ignore) {
			continue
		}

		file, err := classifyFile(root, rel)
		if err != nil {
			// Unreadable files are reported by the checker; skip them here.
			continue
		}
		inv.Files = append(inv.Files, file)
	}

	return inv, nil
}

// Languages returns per-language file counts, most frequent first.
// Vendored files are not counted.
func (inv *Inventory) Languages() []LanguageCount {
	counts := make(map[string]int)
	for _, file := range inv.Files {
		if file.Vendored {
			continue
		}
		counts[file.Language]++
	}

	result := make([]LanguageCount, 0, len(counts))
	for lang, n := range counts {
		result = append(result, LanguageCount{Language: lang, Files: n})
	}
	slices.SortFunc(result, func(a, b LanguageCount) int {
		return cmp.Or(cmp.Compare(b.Files, a.Files), cmp.Compare(a.Language, b.Language))
	})
	return result
}

// Classify returns the language of a file from its name and leading content.
func Classify(name string, content []byte) string {
	if enry.IsBinary(content) {
		return LanguageBinary
	}
	if lang := enry.GetLanguage(filepath.Base(name), content); lang != "" {
		return lang
	}
	return LanguageOther
}

func classifyFile(root, rel string) (File, error) {
	path := filepath.Join(root, filepath.FromSlash(rel))

	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("open %s: %w", rel, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return File{}, fmt.Errorf("stat %s: %w", rel, err)
	}

	head, err := io.ReadAll(io.LimitReader(f, sniffSize))
	if err != nil {
		return File{}, fmt.Errorf("read %s: %w", rel, err)
	}

	return File{
		Path:          rel,
		Language:      Classify(rel, head),
		Size:          info.Size(),
		Vendored:      enry.IsVendor(rel),
		Documentation: enry.IsDocumentation(rel),
	}, nil
}

func ignored(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
