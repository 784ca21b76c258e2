// Package config defines core configuration types for skillcheck.
// These types are pure data structures with no dependency on how they are loaded.
package config

// Severity represents the severity level of an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// rankUnknown sorts unrecognized severities after every known one.
const rankUnknown = 99

// Rank returns the presentation rank of the severity: error < warning < info.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	default:
		return rankUnknown
	}
}

// IsValid returns true if the severity is one of the known levels.
func (s Severity) IsValid() bool {
	return s.Rank() != rankUnknown
}

// RuleConfig holds per-rule configuration.
type RuleConfig struct {
	Enabled *bool `yaml:"enabled"`
}

// IsDisabled reports whether the rule was explicitly switched off.
func (rc RuleConfig) IsDisabled() bool {
	return rc.Enabled != nil && !*rc.Enabled
}

// Limits holds the numeric thresholds used by the rule groups.
type Limits struct {
	// NameLength is the maximum length of the front matter name.
	NameLength int `yaml:"name_length"`

	// DescriptionLength is the maximum length of the front matter description.
	DescriptionLength int `yaml:"description_length"`

	// BodyLines is the maximum number of body lines in the entry document.
	BodyLines int `yaml:"body_lines"`

	// ReferenceLines is the line count above which a reference file needs a table of contents.
	ReferenceLines int `yaml:"reference_lines"`

	// ReferenceHeaderLines is how many leading lines are searched for a table of contents.
	ReferenceHeaderLines int `yaml:"reference_header_lines"`
}

// OutputFormat specifies the output format for issues.
type OutputFormat string

const (
	FormatText     OutputFormat = "text"
	FormatMarkdown OutputFormat = "markdown"
	FormatJSON     OutputFormat = "json"
	FormatSARIF    OutputFormat = "sarif"
)

// Default thresholds.
const (
	DefaultNameLength           = 64
	DefaultDescriptionLength    = 1024
	DefaultBodyLines            = 500
	DefaultReferenceLines       = 100
	DefaultReferenceHeaderLines = 40
)

// DefaultReservedTerms returns the substrings a skill name must not contain.
func DefaultReservedTerms() []string {
	return []string{"anthropic", "claude"}
}

// DefaultLimits returns the default thresholds.
func DefaultLimits() Limits {
	return Limits{
		NameLength:           DefaultNameLength,
		DescriptionLength:    DefaultDescriptionLength,
		BodyLines:            DefaultBodyLines,
		ReferenceLines:       DefaultReferenceLines,
		ReferenceHeaderLines: DefaultReferenceHeaderLines,
	}
}

// WithDefaults returns a copy of l where every non-positive threshold is
// replaced by its default.
func (l Limits) WithDefaults() Limits {
	def := DefaultLimits()
	if l.NameLength <= 0 {
		l.NameLength = def.NameLength
	}
	if l.DescriptionLength <= 0 {
		l.DescriptionLength = def.DescriptionLength
	}
	if l.BodyLines <= 0 {
		l.BodyLines = def.BodyLines
	}
	if l.ReferenceLines <= 0 {
		l.ReferenceLines = def.ReferenceLines
	}
	if l.ReferenceHeaderLines <= 0 {
		l.ReferenceHeaderLines = def.ReferenceHeaderLines
	}
	return l
}

// Config is the root configuration structure for skillcheck.
type Config struct {
	// Rules contains per-rule configuration keyed by rule identifier or rule group ID.
	Rules map[string]RuleConfig `yaml:"rules"`

	// Ignore contains glob patterns, relative to the package root, for files to skip.
	Ignore []string `yaml:"ignore"`

	// Limits contains the numeric thresholds.
	Limits Limits `yaml:"limits"`

	// ReservedTerms are substrings that may not appear in a skill name.
	ReservedTerms []string `yaml:"reserved_terms"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of packages checked in parallel.
	Jobs int `yaml:"-"`

	// Discover treats every path as a tree to search for packages.
	Discover bool `yaml:"-"`

	// Strict makes warnings fail the run.
	Strict bool `yaml:"-"`

	// DisableRules contains rule identifiers to switch off for this run.
	DisableRules []string `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Rules:         make(map[string]RuleConfig),
		Ignore:        nil,
		Limits:        DefaultLimits(),
		ReservedTerms: DefaultReservedTerms(),
		Format:        FormatText,
		Jobs:          0, // 0 means use NumCPU
	}
}

// RuleEnabled reports whether the given rule identifier or group ID is enabled.
func (c *Config) RuleEnabled(key string) bool {
	if c == nil {
		return true
	}
	for _, disabled := range c.DisableRules {
		if disabled == key {
			return false
		}
	}
	if rc, ok := c.Rules[key]; ok && rc.IsDisabled() {
		return false
	}
	return true
}
