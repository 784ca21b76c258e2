package configloader

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/skillcheck/pkg/config"
	"github.com/yaklabco/skillcheck/pkg/lint"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "limits.body_lines").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown rule keys).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:     true,
	config.FormatMarkdown: true,
	config.FormatJSON:     true,
	config.FormatSARIF:    true,
}

// limitKeys lists the YAML keys of config.Limits.
//
//nolint:gochecknoglobals // Read-only lookup table.
var limitKeys = []string{
	"name_length",
	"description_length",
	"body_lines",
	"reference_lines",
	"reference_header_lines",
}

// Validate checks a configuration for errors and warnings.
// registry resolves rule keys; nil means lint.DefaultRegistry.
func Validate(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, markdown, json, sarif", cfg.Format),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	validateLimits(cfg.Limits, result)
	validateReservedTerms(cfg.ReservedTerms, result)
	validateRules(cfg, registry, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func validateLimits(limits config.Limits, result *ValidationResult) {
	values := []int{
		limits.NameLength,
		limits.DescriptionLength,
		limits.BodyLines,
		limits.ReferenceLines,
		limits.ReferenceHeaderLines,
	}
	for idx, value := range values {
		if value <= 0 {
			result.Errors = append(result.Errors, limitError(limitKeys[idx], value))
		}
	}
}

// validateRawLimits checks the limits mapping of a single config file as written.
func validateRawLimits(raw map[string]any) *ValidationResult {
	result := &ValidationResult{}

	for key, value := range raw {
		known := false
		for _, limitKey := range limitKeys {
			if key == limitKey {
				known = true
				break
			}
		}
		if !known {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "limits." + key,
				Value:   value,
				Message: fmt.Sprintf("unknown limit %q; it will be ignored", key),
			})
			continue
		}

		if n, ok := value.(int); !ok || n <= 0 {
			result.Errors = append(result.Errors, limitError(key, value))
		}
	}

	return result
}

func limitError(key string, value any) ValidationError {
	return ValidationError{
		Field:   "limits." + key,
		Value:   value,
		Message: fmt.Sprintf("must be a positive integer, got %v", value),
	}
}

func validateReservedTerms(terms []string, result *ValidationResult) {
	for i, term := range terms {
		if strings.TrimSpace(term) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("reserved_terms[%d]", i),
				Value:   term,
				Message: "reserved term must not be empty",
			})
		}
	}
}

// validateRules warns about rule keys the registry does not know and about
// attempts to disable structural rule identifiers.
func validateRules(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	check := func(field, key string, disabling bool) {
		switch {
		case !registry.IsKnown(key):
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   key,
				Message: fmt.Sprintf("unknown rule %q; it will be ignored", key),
			})
		case disabling && lint.IsStructural(key):
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   key,
				Message: fmt.Sprintf("rule %q cannot be disabled", key),
			})
		}
	}

	for key, ruleCfg := range cfg.Rules {
		check("rules."+key, key, ruleCfg.IsDisabled())
	}
	for i, key := range cfg.DisableRules {
		check(fmt.Sprintf("disable[%d]", i), key, true)
	}
}

// validateIgnorePatterns checks that ignore patterns are valid doublestar globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern %q", pattern),
			})
		}
	}
}

// ValidateWithFile attributes every finding in result to filePath.
func ValidateWithFile(result *ValidationResult, filePath string) *ValidationResult {
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
