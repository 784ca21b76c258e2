// Package lines provides line-oriented helpers over normalized document text.
// Text is expected to use "\n" line endings (see fsutil.DecodeText).
package lines

import "strings"

// Split returns the lines of text without their terminators.
// A trailing newline does not produce an extra empty line, and empty text has no lines.
func Split(text string) []string {
	if text == "" {
		return []string{}
	}
	parts := strings.Split(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// Count returns the number of lines in text, as reported by Split.
func Count(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}

// At converts a byte offset into a 1-based line number.
// Offsets past the end of text map to the last line.
func At(text string, offset int) int {
	if offset <= 0 {
		return 1
	}
	if offset > len(text) {
		offset = len(text)
	}
	return strings.Count(text[:offset], "\n") + 1
}

// Find returns the 1-based number of the first line containing needle,
// or 1 when no line does.
func Find(text, needle string) int {
	for idx, line := range Split(text) {
		if strings.Contains(line, needle) {
			return idx + 1
		}
	}
	return 1
}

// Head returns the first n lines of text.
func Head(text string, n int) []string {
	all := Split(text)
	if n < len(all) {
		return all[:n]
	}
	return all
}
