package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestSplitFlagLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line     string
		wantFlag string
		wantDesc string
		wantOK   bool
	}{
		{line: "-f, --force   Overwrite existing file", wantFlag: "-f, --force", wantDesc: "Overwrite existing file", wantOK: true},
		{line: "--jobs int     number of workers", wantFlag: "--jobs int", wantDesc: "number of workers", wantOK: true},
		{line: "--json", wantFlag: "--json"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			flag, desc, ok := splitFlagLine(tt.line)
			if flag != tt.wantFlag || desc != tt.wantDesc || ok != tt.wantOK {
				t.Errorf("splitFlagLine(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.line, flag, desc, ok, tt.wantFlag, tt.wantDesc, tt.wantOK)
			}
		})
	}
}

func TestHelpFormatterPlain(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "demo", Short: "Demo command", Run: func(*cobra.Command, []string) {}}
	cmd.Flags().Bool("strict", false, "fail on warnings")

	var out bytes.Buffer
	cmd.SetOut(&out)
	NewHelpFormatter("never", &out).ApplyToCommand(cmd)

	cmd.SetArgs([]string{"--help"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	for _, want := range []string{"Demo command", "Usage:", "Flags:", "--strict", "fail on warnings"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("help output missing %q:\n%s", want, out.String())
		}
	}
}
