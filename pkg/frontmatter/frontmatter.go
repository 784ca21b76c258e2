// Package frontmatter splits a document into its leading front matter block
// and body, and parses the block into a flat key/value mapping.
//
// Parsing is two-tier: the block is first decoded as YAML; when that fails or
// does not produce a mapping, a permissive line scanner reads "key: value"
// pairs instead. The scanner is best-effort and may under-parse exotic YAML.
package frontmatter

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter is the line that opens and closes a front matter block.
const Delimiter = "---"

// Document is the result of splitting a document at its front matter.
type Document struct {
	// Found is false when the text has no complete front matter block.
	Found bool

	// Block is the raw text strictly between the two delimiter lines.
	Block string

	// Body is the text after the closing delimiter, leading blank lines removed.
	// When Found is false, Body is the original text.
	Body string
}

// Strategy names the parser tier that produced a mapping.
type Strategy string

const (
	StrategyYAML  Strategy = "yaml"
	StrategyLines Strategy = "lines"
)

// Fields is a parsed front matter mapping.
type Fields map[string]any

// String returns the value for key if it is a string.
func (f Fields) String(key string) (string, bool) {
	value, ok := f[key]
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// Split separates the front matter block from the body of text.
func Split(text string) Document {
	notFound := Document{Body: text}

	firstEnd := strings.IndexByte(text, '\n')
	if firstEnd < 0 || !isDelimiter(text[:firstEnd]) {
		return notFound
	}

	blockStart := firstEnd + 1
	offset := blockStart
	for offset < len(text) {
		lineEnd := strings.IndexByte(text[offset:], '\n')
		next := len(text)
		line := text[offset:]
		if lineEnd >= 0 {
			line = text[offset : offset+lineEnd]
			next = offset + lineEnd + 1
		}

		if isDelimiter(line) {
			block := strings.TrimSuffix(text[blockStart:offset], "\n")
			return Document{
				Found: true,
				Block: block,
				Body:  strings.TrimLeft(text[next:], "\n"),
			}
		}
		offset = next
	}

	return notFound
}

// Parse decodes a front matter block into a mapping.
// It never fails: malformed input yields a partial or empty mapping.
func Parse(block string) (Fields, Strategy) {
	var fields Fields
	if err := yaml.Unmarshal([]byte(block), &fields); err == nil {
		if fields == nil {
			fields = Fields{}
		}
		return fields, StrategyYAML
	}
	return parseLines(block), StrategyLines
}

// parseLines is the permissive fallback parser.
func parseLines(block string) Fields {
	fields := Fields{}
	for _, raw := range strings.Split(block, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `'"`)
	}
	return fields
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t") == Delimiter
}
