package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/skillcheck/internal/ui/pretty"
	"github.com/yaklabco/skillcheck/pkg/lint"
)

type rulesFlags struct {
	format string
}

const formatJSON = "json"

// ruleInfo represents a rule group in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	IssueIDs    []string `json:"issue_ids"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available rule groups",
		Long: `List the rule groups in the order they run, with the rule identifiers
each group can report. Any group ID, group name or rule identifier can be
disabled with --disable or in the rules section of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := lint.DefaultRegistry.Rules()
			out := cmd.OutOrStdout()

			switch flags.format {
			case formatJSON:
				return outputRulesJSON(out, rules)
			case "text", "":
			default:
				return usageError(fmt.Errorf("invalid format %q: must be text or json", flags.format))
			}

			colorMode, err := cmd.Flags().GetString("color")
			if err != nil {
				colorMode = "auto"
			}
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))

			return outputRulesText(out, styles, rules)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

func outputRulesText(w io.Writer, styles *pretty.Styles, rules []lint.Rule) error {
	var b strings.Builder
	for idx, rule := range rules {
		if idx > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s\n", styles.RuleID.Render(rule.ID()), styles.Dim.Render("("+rule.Name()+")"))
		fmt.Fprintf(&b, "  %s\n", rule.Description())
		for _, id := range rule.IssueIDs() {
			fmt.Fprintf(&b, "    %s\n", styles.RuleID.Render(id))
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.Dim.Render("Always on: " + strings.Join(lint.StructuralRules(), ", ")))
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write rules: %w", err)
	}
	return nil
}

// outputRulesJSON outputs rule groups as a JSON array.
func outputRulesJSON(w io.Writer, rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			IssueIDs:    rule.IssueIDs(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
