package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/skillcheck/pkg/config"
)

// envVarPrefix is the prefix for all skillcheck environment variables.
const envVarPrefix = "SKILLCHECK_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FORMAT":                 {field: "format", typ: envTypeString, description: "Output format: text, markdown, json, or sarif"},
	"JOBS":                   {field: "jobs", typ: envTypeInt, description: "Number of packages checked in parallel (0 = auto)"},
	"DISCOVER":               {field: "discover", typ: envTypeBool, description: "Search paths for SKILL.md packages: true or false"},
	"STRICT":                 {field: "strict", typ: envTypeBool, description: "Fail on warnings: true or false"},
	"IGNORE":                 {field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
	"DISABLE":                {field: "disable", typ: envTypeSlice, description: "Comma-separated list of rule groups or identifiers to disable"},
	"RESERVED_TERMS":         {field: "reserved_terms", typ: envTypeSlice, description: "Comma-separated list of terms a skill name may not contain"},
	"NAME_LENGTH":            {field: "limits.name_length", typ: envTypeInt, description: "Maximum skill name length"},
	"DESCRIPTION_LENGTH":     {field: "limits.description_length", typ: envTypeInt, description: "Maximum skill description length"},
	"BODY_LINES":             {field: "limits.body_lines", typ: envTypeInt, description: "Maximum SKILL.md body lines"},
	"REFERENCE_LINES":        {field: "limits.reference_lines", typ: envTypeInt, description: "Reference length that requires a table of contents"},
	"REFERENCE_HEADER_LINES": {field: "limits.reference_header_lines", typ: envTypeInt, description: "Leading lines searched for a table of contents"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with SKILLCHECK_ (e.g., SKILLCHECK_JOBS).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	// Sorted so the first reported error is stable.
	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	slices.Sort(suffixes)

	for _, envSuffix := range suffixes {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, envMappings[envSuffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "discover":
		cfg.Discover = value
	case "strict":
		cfg.Strict = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field. Limits are applied as given so that
// validation can reject non-positive values.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "limits.name_length":
		cfg.Limits.NameLength = value
	case "limits.description_length":
		cfg.Limits.DescriptionLength = value
	case "limits.body_lines":
		cfg.Limits.BodyLines = value
	case "limits.reference_lines":
		cfg.Limits.ReferenceLines = value
	case "limits.reference_header_lines":
		cfg.Limits.ReferenceHeaderLines = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "disable":
		cfg.DisableRules = append(cfg.DisableRules, value...)
	case "reserved_terms":
		cfg.ReservedTerms = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
