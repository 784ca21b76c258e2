package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/skillcheck/pkg/config"
	"github.com/yaklabco/skillcheck/pkg/inventory"
	"github.com/yaklabco/skillcheck/pkg/runner"
)

const (
	maxDividerWidth = 60
	wordPackage     = "package"
	wordPackages    = "packages"
	wordFile        = "file"
	wordFiles       = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "5 issues (2 errors, 3 warnings) in 2 files across 1 package".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.IssuesTotal == 0 {
		return s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.PackagesChecked,
				plural(stats.PackagesChecked, wordPackage, wordPackages))) + "\n"
	}

	var severityParts []string
	if errors := stats.IssuesBySeverity[config.SeverityError]; errors > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", errors, plural(errors, "error", "errors"))))
	}
	if warnings := stats.IssuesBySeverity[config.SeverityWarning]; warnings > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", warnings, plural(warnings, "warning", "warnings"))))
	}
	if infos := stats.IssuesBySeverity[config.SeverityInfo]; infos > 0 {
		severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", infos)))
	}

	line := fmt.Sprintf("%d %s", stats.IssuesTotal, plural(stats.IssuesTotal, "issue", "issues"))
	if len(severityParts) > 0 {
		line += " (" + strings.Join(severityParts, ", ") + ")"
	}

	line += fmt.Sprintf(" in %d %s across %d %s",
		stats.FilesWithIssues, plural(stats.FilesWithIssues, wordFile, wordFiles),
		stats.PackagesChecked, plural(stats.PackagesChecked, wordPackage, wordPackages))

	return line + "\n"
}

// FormatSummary formats run statistics as a summary block.
// width is the terminal width; the divider never exceeds it.
func (s *Styles) FormatSummary(stats runner.Stats, width int) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", max(1, min(width, maxDividerWidth))))
	builder.WriteString("\n")

	builder.WriteString("  Packages checked:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.PackagesChecked)) + "\n")

	if stats.PackagesFailed > 0 {
		builder.WriteString("  Packages failing:  " +
			s.Failure.Render(strconv.Itoa(stats.PackagesFailed)) + "\n")
	}
	if stats.PackagesErrored > 0 {
		builder.WriteString("  Packages errored:  " +
			s.Failure.Render(strconv.Itoa(stats.PackagesErrored)) + "\n")
	}
	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " +
			s.SummaryValue.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Total issues:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.IssuesTotal)) + "\n")

	if errors := stats.IssuesBySeverity[config.SeverityError]; errors > 0 {
		builder.WriteString("    Errors:          " + s.Error.Render(strconv.Itoa(errors)) + "\n")
	}
	if warnings := stats.IssuesBySeverity[config.SeverityWarning]; warnings > 0 {
		builder.WriteString("    Warnings:        " + s.Warning.Render(strconv.Itoa(warnings)) + "\n")
	}
	if infos := stats.IssuesBySeverity[config.SeverityInfo]; infos > 0 {
		builder.WriteString("    Info:            " + s.Info.Render(strconv.Itoa(infos)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.IssuesBySeverity[config.SeverityError] > 0 || stats.PackagesErrored > 0:
		builder.WriteString(s.Failure.Render("Check failed with errors"))
	case stats.IssuesBySeverity[config.SeverityWarning] > 0:
		builder.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatInventory formats a package's file inventory as one line,
// e.g. "3 files: Markdown 2, Python 1".
func (s *Styles) FormatInventory(inv *inventory.Inventory) string {
	if inv == nil || len(inv.Files) == 0 {
		return ""
	}

	counts := lo.Map(inv.Languages(), func(lc inventory.LanguageCount, _ int) string {
		return fmt.Sprintf("%s %d", lc.Language, lc.Files)
	})

	line := fmt.Sprintf("%d %s", len(inv.Files), plural(len(inv.Files), wordFile, wordFiles))
	if len(counts) > 0 {
		line += ": " + strings.Join(counts, ", ")
	}
	return s.Dim.Render(line)
}
