// Package rules provides the built-in rule groups for skillcheck.
//
// # Rule Groups
//
// Groups run in registration order and each may emit several rule identifiers:
//
//   - frontmatter: entry document front matter and body length
//     (frontmatter.*, skill.body.length)
//   - paths: Windows-style backslash paths in any Markdown document
//     (paths.windows_style)
//   - references: link graph rooted at SKILL.md, at most one level deep
//     (references.missing, references.nested_depth)
//   - toc: long reference documents need a table of contents
//     (references.toc)
//   - timing: time-sensitive wording in any Markdown document
//     (content.time_sensitive)
//
// Detection is pattern based. Matching is approximate by nature: a date-like
// number in a code sample is still reported, and line attribution uses the
// first line containing the offending key.
package rules
