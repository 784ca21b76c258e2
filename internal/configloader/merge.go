package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/skillcheck/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Limits: each positive threshold in override replaces base's
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil,
//     except DisableRules, which accumulate
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// false is the zero value, so only an enabling override is visible.
	if override.Discover {
		result.Discover = true
	}
	if override.Strict {
		result.Strict = true
	}

	result.Limits = mergeLimits(base.Limits, override.Limits)
	result.Rules = mergeRules(base.Rules, override.Rules)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.ReservedTerms != nil {
		result.ReservedTerms = override.ReservedTerms
	}
	if override.DisableRules != nil {
		result.DisableRules = append(slices.Clone(base.DisableRules), override.DisableRules...)
	}

	return &result
}

// mergeLimits takes every positive threshold from override.
func mergeLimits(base, override config.Limits) config.Limits {
	result := base
	if override.NameLength > 0 {
		result.NameLength = override.NameLength
	}
	if override.DescriptionLength > 0 {
		result.DescriptionLength = override.DescriptionLength
	}
	if override.BodyLines > 0 {
		result.BodyLines = override.BodyLines
	}
	if override.ReferenceLines > 0 {
		result.ReferenceLines = override.ReferenceLines
	}
	if override.ReferenceHeaderLines > 0 {
		result.ReferenceHeaderLines = override.ReferenceHeaderLines
	}
	return result
}

// mergeRules performs deep merge of rule configurations.
// Both maps are iterated, with override's values taking precedence.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.RuleConfig, len(base)+len(override))
	maps.Copy(result, base)

	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergeRuleConfig(existing, val)
		} else {
			result[key] = val
		}
	}

	return result
}

// mergeRuleConfig merges individual rule configurations.
func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	result := base
	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
