package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/yaklabco/skillcheck/pkg/config"
	"github.com/yaklabco/skillcheck/pkg/lint"
	"github.com/yaklabco/skillcheck/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// sarifToolName is the driver name written to every run.
const sarifToolName = "skillcheck"

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool              SARIFTool              `json:"tool"`
	AutomationDetails SARIFAutomationDetails `json:"automationDetails"`
	Results           []SARIFResult          `json:"results"`
}

// SARIFAutomationDetails identifies the run.
type SARIFAutomationDetails struct {
	GUID string `json:"guid"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule identifier that produced at least one result.
type SARIFRule struct {
	ID            string           `json:"id"`
	DefaultConfig *SARIFRuleConfig `json:"defaultConfiguration,omitempty"`
	Help          *SARIFMessage    `json:"help,omitempty"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single issue.
type SARIFResult struct {
	RuleID     string          `json:"ruleId"`
	Level      string          `json:"level"`
	Message    SARIFMessage    `json:"message"`
	Locations  []SARIFLocation `json:"locations"`
	Properties map[string]any  `json:"properties,omitempty"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected line.
type SARIFRegion struct {
	StartLine int `json:"startLine"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	version := r.opts.ToolVersion
	if version == "" {
		version = DefaultOptions().ToolVersion
	}

	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:    sarifToolName,
				Version: version,
				Rules:   make([]SARIFRule, 0),
			},
		},
		AutomationDetails: SARIFAutomationDetails{GUID: r.runGUID(version, result)},
		Results:           make([]SARIFResult, 0),
	}

	rulesSeen := make(map[string]bool)
	for _, issue := range result.Issues() {
		if !rulesSeen[issue.Rule] {
			rule := SARIFRule{
				ID:            issue.Rule,
				DefaultConfig: &SARIFRuleConfig{Level: severityToSARIFLevel(issue.Severity)},
			}
			if issue.Fix != "" {
				rule.Help = &SARIFMessage{Text: issue.Fix}
			}
			run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, rule)
			rulesSeen[issue.Rule] = true
		}

		run.Results = append(run.Results, r.buildResult(issue))
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

// runGUID derives the run id from the tool version and the package roots, so
// the same input always yields the same document.
func (r *SARIFReporter) runGUID(version string, result *runner.Result) string {
	var name strings.Builder
	name.WriteString(sarifToolName + "@" + version)
	if result != nil {
		for _, pkg := range result.Packages {
			name.WriteString("\n" + filepath.ToSlash(displayPath(r.opts.WorkingDir, pkg.Root)))
		}
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name.String())).String()
}

func (r *SARIFReporter) buildResult(issue lint.Issue) SARIFResult {
	res := SARIFResult{
		RuleID:  issue.Rule,
		Level:   severityToSARIFLevel(issue.Severity),
		Message: SARIFMessage{Text: issue.Message},
		Locations: []SARIFLocation{{
			PhysicalLocation: SARIFPhysicalLocation{
				ArtifactLocation: SARIFArtifactLocation{
					URI: filepath.ToSlash(displayPath(r.opts.WorkingDir, issue.File)),
				},
				Region: SARIFRegion{StartLine: max(issue.Line, 1)},
			},
		}},
	}
	if issue.Fix != "" {
		res.Properties = map[string]any{"fix": issue.Fix}
	}
	return res
}

// severityToSARIFLevel converts an issue severity to a SARIF level.
func severityToSARIFLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityWarning:
		return "warning"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
