package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/skillcheck/pkg/config"
	"github.com/yaklabco/skillcheck/pkg/lint"
	"github.com/yaklabco/skillcheck/pkg/lint/rules"
)

func testRegistry() *lint.Registry {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	return registry
}

// load runs Load isolated from the user config and the environment.
func (o LoadOptions) load(ctx context.Context) (*LoadResult, error) {
	o.IgnoreUserConfig = true
	o.IgnoreEnv = true
	o.Registry = testRegistry()
	return Load(ctx, o)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

// newRepo creates a temp directory marked as a VCS root.
func newRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := LoadOptions{WorkingDir: newRepo(t)}.load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Limits != config.DefaultLimits() {
		t.Errorf("Limits = %+v, want defaults", result.Config.Limits)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("LoadedFrom = %v, want none", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)
	writeFile(t, filepath.Join(repo, ".skillcheck.yml"), `
limits:
  body_lines: 300
reserved_terms: [acme]
rules:
  timing:
    enabled: false
`)
	nested := filepath.Join(repo, "skills", "demo")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	result, err := LoadOptions{WorkingDir: nested}.load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Limits.BodyLines != 300 {
		t.Errorf("BodyLines = %d, want 300", cfg.Limits.BodyLines)
	}
	if cfg.Limits.NameLength != config.DefaultNameLength {
		t.Errorf("NameLength = %d, want default %d", cfg.Limits.NameLength, config.DefaultNameLength)
	}
	if len(cfg.ReservedTerms) != 1 || cfg.ReservedTerms[0] != "acme" {
		t.Errorf("ReservedTerms = %v, want [acme]", cfg.ReservedTerms)
	}
	if cfg.RuleEnabled("timing") {
		t.Error("timing should be disabled")
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("LoadedFrom = %v, want project config", result.LoadedFrom)
	}
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".skillcheck.yml"), "limits:\n  body_lines: 10\n")
	repo := filepath.Join(outer, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	result, err := LoadOptions{WorkingDir: repo}.load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Paths.Project != "" {
		t.Errorf("Project = %q, want none beyond the repository root", result.Paths.Project)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)
	writeFile(t, filepath.Join(repo, ".skillcheck.yml"), "limits:\n  body_lines: 300\n  name_length: 40\n")
	explicit := filepath.Join(t.TempDir(), "custom.yml")
	writeFile(t, explicit, "limits:\n  body_lines: 200\n")

	result, err := LoadOptions{WorkingDir: repo, ExplicitPath: explicit}.load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Limits.BodyLines != 200 {
		t.Errorf("BodyLines = %d, want explicit 200", result.Config.Limits.BodyLines)
	}
	if result.Config.Limits.NameLength != 40 {
		t.Errorf("NameLength = %d, want project 40", result.Config.Limits.NameLength)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != explicit {
		t.Errorf("LoadedFrom = %v, want project then explicit", result.LoadedFrom)
	}
}

func TestLoad_MissingExplicitConfig(t *testing.T) {
	t.Parallel()

	_, err := LoadOptions{
		WorkingDir:   newRepo(t),
		ExplicitPath: filepath.Join(t.TempDir(), "missing.yml"),
	}.load(context.Background())
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)
	writeFile(t, filepath.Join(repo, ".skillcheck.yml"), "limits:\n  body_lines: 300\nignore: [\"drafts/**\"]\n")

	cli := &config.Config{
		Jobs:         3,
		Strict:       true,
		Ignore:       []string{"tmp/**"},
		DisableRules: []string{"content.time_sensitive"},
	}

	result, err := LoadOptions{WorkingDir: repo, CLIConfig: cli}.load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Jobs != 3 || !cfg.Strict {
		t.Errorf("Jobs/Strict = %d/%t, want 3/true", cfg.Jobs, cfg.Strict)
	}
	if len(cfg.Ignore) != 1 || cfg.Ignore[0] != "tmp/**" {
		t.Errorf("Ignore = %v, want CLI value", cfg.Ignore)
	}
	if cfg.Limits.BodyLines != 300 {
		t.Errorf("BodyLines = %d, want 300 from project config", cfg.Limits.BodyLines)
	}
	if cfg.RuleEnabled("content.time_sensitive") {
		t.Error("content.time_sensitive should be disabled")
	}
}

func TestLoad_Env(t *testing.T) {
	// Not parallel: modifies the environment.
	t.Setenv("SKILLCHECK_BODY_LINES", "250")
	t.Setenv("SKILLCHECK_DISABLE", "timing, paths")
	t.Setenv("SKILLCHECK_STRICT", "true")

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:       newRepo(t),
		IgnoreUserConfig: true,
		Registry:         testRegistry(),
		CLIConfig:        &config.Config{DisableRules: []string{"toc"}},
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Limits.BodyLines != 250 {
		t.Errorf("BodyLines = %d, want 250", cfg.Limits.BodyLines)
	}
	if !cfg.Strict {
		t.Error("Strict should be set from the environment")
	}
	for _, key := range []string{"timing", "paths", "toc"} {
		if cfg.RuleEnabled(key) {
			t.Errorf("%s should be disabled", key)
		}
	}
}

func TestLoad_EnvInvalid(t *testing.T) {
	t.Setenv("SKILLCHECK_JOBS", "many")

	_, err := Load(context.Background(), LoadOptions{
		WorkingDir:       newRepo(t),
		IgnoreUserConfig: true,
		Registry:         testRegistry(),
	})
	if err == nil || !strings.Contains(err.Error(), "SKILLCHECK_JOBS") {
		t.Errorf("error = %v, want invalid SKILLCHECK_JOBS", err)
	}
}

func TestLoad_UserConfig(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	writeFile(t, filepath.Join(configHome, "skillcheck", "config.yml"), "limits:\n  description_length: 512\n")

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir: newRepo(t),
		IgnoreEnv:  true,
		Registry:   testRegistry(),
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Limits.DescriptionLength != 512 {
		t.Errorf("DescriptionLength = %d, want 512", result.Config.Limits.DescriptionLength)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "malformed yaml", content: "limits: [unclosed", want: "parse yaml"},
		{name: "zero limit", content: "limits:\n  body_lines: 0\n", want: "limits.body_lines"},
		{name: "negative limit", content: "limits:\n  name_length: -1\n", want: "limits.name_length"},
		{name: "empty reserved term", content: "reserved_terms: [\"\"]\n", want: "reserved_terms[0]"},
		{name: "bad ignore glob", content: "ignore: [\"[\"]\n", want: "ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := newRepo(t)
			writeFile(t, filepath.Join(repo, ".skillcheck.yml"), tt.content)

			_, err := LoadOptions{WorkingDir: repo}.load(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)
	writeFile(t, filepath.Join(repo, ".skillcheck.yml"), `
limits:
  heading_depth: 3
rules:
  no-such-rule:
    enabled: false
  skill.skill_md.missing:
    enabled: false
`)

	result, err := LoadOptions{WorkingDir: repo}.load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	joined := strings.Join(result.Warnings, "\n")
	for _, want := range []string{
		`unknown limit "heading_depth"`,
		`unknown rule "no-such-rule"`,
		`rule "skill.skill_md.missing" cannot be disabled`,
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("warnings %q missing %q", result.Warnings, want)
		}
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadOptions{WorkingDir: newRepo(t)}.load(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestLoader_NormalizesRuleKeys(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)
	writeFile(t, filepath.Join(repo, ".skillcheck.yml"), `
rules:
  reference-toc:
    enabled: false
  frontmatter.description.person:
    enabled: false
`)

	result, err := LoadOptions{WorkingDir: repo}.load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	rules := result.Config.Rules
	if _, ok := rules["toc"]; !ok {
		t.Errorf("rules = %v, want group name normalized to toc", rules)
	}
	if _, ok := rules["reference-toc"]; ok {
		t.Error("group name key should be replaced by its ID")
	}
	if _, ok := rules["frontmatter.description.person"]; !ok {
		t.Error("rule identifier keys should be kept")
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestLoader_WarnsDuplicateRules(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)
	writeFile(t, filepath.Join(repo, ".skillcheck.yml"), `
rules:
  toc:
    enabled: true
  reference-toc:
    enabled: false
`)

	result, err := LoadOptions{WorkingDir: repo}.load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "duplicate rule configuration") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected duplicate warning, got %v", result.Warnings)
	}
}
