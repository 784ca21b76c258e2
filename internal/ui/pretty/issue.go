package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/skillcheck/pkg/config"
	"github.com/yaklabco/skillcheck/pkg/lint"
)

// FormatIssue formats a single issue for terminal output.
// path is the display form of issue.File.
func (s *Styles) FormatIssue(issue lint.Issue, path string) string {
	var builder strings.Builder

	location := s.Location.Render(fmt.Sprintf("%s:%d", path, issue.Line))

	// Main line: location  severity  message  (rule-id)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(issue.Severity),
		s.Message.Render(issue.Message),
		s.RuleID.Render("("+issue.Rule+")"),
	))

	if issue.Fix != "" {
		builder.WriteString("    " + s.Dim.Render("Fix:") + " " + s.Fix.Render(issue.Fix) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
