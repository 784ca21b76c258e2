package configloader

import (
	"testing"

	"github.com/yaklabco/skillcheck/pkg/config"
)

func boolPtr(b bool) *bool { return &b }

func TestMerge_Limits(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	override := &config.Config{Limits: config.Limits{BodyLines: 100, NameLength: -5}}

	got := merge(base, override)

	if got.Limits.BodyLines != 100 {
		t.Errorf("BodyLines = %d, want 100", got.Limits.BodyLines)
	}
	if got.Limits.NameLength != config.DefaultNameLength {
		t.Errorf("NameLength = %d, want base value", got.Limits.NameLength)
	}
}

func TestMerge_Rules(t *testing.T) {
	t.Parallel()

	base := &config.Config{Rules: map[string]config.RuleConfig{
		"timing": {Enabled: boolPtr(false)},
		"paths":  {Enabled: boolPtr(false)},
	}}
	override := &config.Config{Rules: map[string]config.RuleConfig{
		"paths": {Enabled: boolPtr(true)},
		"toc":   {},
	}}

	got := merge(base, override)

	if got.RuleEnabled("timing") {
		t.Error("timing should stay disabled")
	}
	if !got.RuleEnabled("paths") {
		t.Error("paths should be re-enabled")
	}
	if _, ok := got.Rules["toc"]; !ok {
		t.Error("toc entry should be added")
	}
	if base.Rules["paths"].Enabled == nil || *base.Rules["paths"].Enabled {
		t.Error("merge must not modify base")
	}
}

func TestMerge_Slices(t *testing.T) {
	t.Parallel()

	base := &config.Config{
		Ignore:        []string{"a/**"},
		ReservedTerms: []string{"claude"},
		DisableRules:  []string{"timing"},
	}

	unchanged := merge(base, &config.Config{})
	if len(unchanged.Ignore) != 1 || len(unchanged.ReservedTerms) != 1 {
		t.Error("nil slices in override must not replace base")
	}

	got := merge(base, &config.Config{
		Ignore:        []string{},
		ReservedTerms: []string{"acme", "corp"},
		DisableRules:  []string{"toc"},
	})
	if len(got.Ignore) != 0 {
		t.Errorf("Ignore = %v, want replaced with empty", got.Ignore)
	}
	if len(got.ReservedTerms) != 2 {
		t.Errorf("ReservedTerms = %v, want override", got.ReservedTerms)
	}
	if len(got.DisableRules) != 2 {
		t.Errorf("DisableRules = %v, want accumulated", got.DisableRules)
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	if MergeAll() != nil {
		t.Error("MergeAll() with no configs should be nil")
	}

	got := MergeAll(
		config.NewConfig(),
		&config.Config{Jobs: 2},
		&config.Config{Jobs: 4, Discover: true},
	)
	if got.Jobs != 4 || !got.Discover {
		t.Errorf("Jobs/Discover = %d/%t, want 4/true", got.Jobs, got.Discover)
	}
}

func TestValidateRawLimits(t *testing.T) {
	t.Parallel()

	result := validateRawLimits(map[string]any{
		"body_lines":      100,
		"name_length":     0,
		"reference_lines": "many",
		"extra":           1,
	})

	if len(result.Errors) != 2 {
		t.Errorf("Errors = %v, want 2", result.Errors)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("Warnings = %v, want 1", result.Warnings)
	}
}

func TestParseSliceValue(t *testing.T) {
	t.Parallel()

	got := parseSliceValue(" a, ,b ,c")
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("parseSliceValue() = %v", got)
	}
	if parseSliceValue("") != nil {
		t.Error("empty value should yield nil")
	}
}
