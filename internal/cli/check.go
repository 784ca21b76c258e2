package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/skillcheck/internal/configloader"
	"github.com/yaklabco/skillcheck/internal/logging"
	"github.com/yaklabco/skillcheck/internal/watch"
	"github.com/yaklabco/skillcheck/pkg/config"
	"github.com/yaklabco/skillcheck/pkg/lint"
	"github.com/yaklabco/skillcheck/pkg/reporter"
	"github.com/yaklabco/skillcheck/pkg/runner"
)

type checkFlags struct {
	format    string
	json      bool
	discover  bool
	jobs      int
	ignore    []string
	disable   []string
	strict    bool
	noSummary bool
	watch     bool
	debounce  time.Duration
}

func newCheckCommand(info BuildInfo) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check skill packages",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags, info)
		},
	}

	addCheckFlags(cmd, flags)

	return cmd
}

const checkLongDescription = `Check one or more skill packages.

Each path is a package root: a directory containing SKILL.md. Without
paths, the current directory is checked. With --discover, each path is
searched for every directory containing a SKILL.md.

Examples:
  skillcheck check                      # Check the current directory
  skillcheck check skills/pdf           # Check one package
  skillcheck check --discover skills/   # Check every package under skills/
  skillcheck check --json               # Output a JSON array of issues
  skillcheck check --format sarif       # Output SARIF for code scanning
  skillcheck check --strict             # Fail on warnings too
  skillcheck check --watch              # Re-check on every change`

// checkSession holds everything needed to run and report one check.
type checkSession struct {
	cmd     *cobra.Command
	cfg     *config.Config
	format  reporter.Format
	runner  *runner.Runner
	runOpts runner.Options
	repOpts reporter.Options
	logger  *log.Logger
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags, info BuildInfo) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	cliCfg, err := flags.toConfig(cmd)
	if err != nil {
		return usageError(err)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return configError(errors.Join(errors.New("failed to load configuration"), err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return configError(err)
	}

	logger.Debug("configuration loaded",
		logging.FieldFormat, format,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldDiscover, cfg.Discover,
		logging.FieldStrict, cfg.Strict,
		logging.FieldDisabled, cfg.DisableRules,
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	session := &checkSession{
		cmd:    cmd,
		cfg:    cfg,
		format: format,
		runner: runner.New(lint.NewChecker(lint.DefaultRegistry, cfg)),
		runOpts: runner.Options{
			Paths:        args,
			WorkingDir:   workDir,
			Discover:     cfg.Discover,
			ExcludeGlobs: cfg.Ignore,
			Inventory:    format == reporter.FormatText,
			Jobs:         cfg.Jobs,
			Config:       cfg,
		},
		repOpts: reporter.Options{
			Format:      format,
			Color:       colorMode,
			ShowSummary: !flags.noSummary,
			WorkingDir:  workDir,
			ToolVersion: info.Version,
		},
		logger: logger,
	}

	if flags.watch {
		return session.watch(ctx, flags.debounce)
	}

	exitCode, err := session.checkOnce(ctx)
	if err != nil {
		return err
	}
	if exitCode != ExitSuccess {
		return &ExitError{Code: exitCode, Err: ErrIssuesFound}
	}

	return nil
}

// checkOnce runs the check, reports it and returns the exit code it implies.
func (s *checkSession) checkOnce(ctx context.Context) (int, error) {
	s.logger.Debug("starting check",
		logging.FieldPaths, s.runOpts.Paths,
		logging.FieldWorkingDir, s.runOpts.WorkingDir,
		logging.FieldJobs, s.runOpts.Jobs,
	)

	start := time.Now()
	result, err := s.runner.Run(ctx, s.runOpts)
	if err != nil {
		return ExitInternalError, fmt.Errorf("check run failed: %w", err)
	}

	for _, outcome := range result.Packages {
		s.logger.Debug("package checked",
			logging.FieldPackage, outcome.Root,
			logging.FieldIssues, len(outcome.Issues()),
			logging.FieldDuration, outcome.Duration,
		)
	}
	s.logger.Debug("check finished",
		logging.FieldPackagesDiscovered, result.Stats.PackagesDiscovered,
		logging.FieldPackagesChecked, result.Stats.PackagesChecked,
		logging.FieldPackagesFailed, result.Stats.PackagesFailed,
		logging.FieldIssuesTotal, result.Stats.IssuesTotal,
		logging.FieldDuration, time.Since(start),
	)

	repOpts := s.repOpts
	repOpts.Writer = s.cmd.OutOrStdout()
	rep, err := reporter.New(repOpts)
	if err != nil {
		return ExitInternalError, fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		s.logger.Error("report failed", logging.FieldError, err)
		return ExitInternalError, fmt.Errorf("report results: %w", err)
	}

	return ExitCodeFromResult(result, s.cfg.Strict), nil
}

// watch checks once, then re-checks after every debounced change until interrupted.
func (s *checkSession) watch(ctx context.Context, debounce time.Duration) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	interactive := logging.NewInteractive()
	ctx = logging.WithLogger(ctx, interactive)

	if _, err := s.checkOnce(ctx); err != nil {
		return err
	}

	roots := make([]string, 0, len(s.runOpts.Paths))
	for _, path := range s.runOpts.Paths {
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.runOpts.WorkingDir, path)
		}
		roots = append(roots, path)
	}
	if len(roots) == 0 {
		roots = append(roots, s.runOpts.WorkingDir)
	}

	interactive.Info("watching for changes", logging.FieldPaths, roots)

	return watch.Watch(ctx, watch.Options{
		Roots:    roots,
		Debounce: debounce,
	}, func(ctx context.Context, changed []string) error {
		interactive.Info("change detected", logging.FieldFiles, len(changed))
		exitCode, err := s.checkOnce(ctx)
		if err != nil {
			return err
		}
		if exitCode == ExitSuccess {
			interactive.Info("check passed")
		}
		return nil
	})
}

// toConfig builds the CLI layer of the configuration from explicitly set flags.
func (f *checkFlags) toConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}

	if f.json {
		if cmd.Flags().Changed("format") && f.format != string(reporter.FormatJSON) {
			return nil, fmt.Errorf("--json conflicts with --format %s", f.format)
		}
		cfg.Format = config.FormatJSON
	} else if cmd.Flags().Changed("format") {
		format, err := reporter.ParseFormat(f.format)
		if err != nil {
			return nil, fmt.Errorf("invalid format: %w", err)
		}
		cfg.Format = config.OutputFormat(format)
	}

	if f.jobs < 0 {
		return nil, fmt.Errorf("invalid --jobs %d: must be zero or positive", f.jobs)
	}
	if f.debounce < 0 {
		return nil, fmt.Errorf("invalid --debounce %s: must be zero or positive", f.debounce)
	}

	cfg.Jobs = f.jobs
	cfg.Discover = f.discover
	cfg.Strict = f.strict
	if cmd.Flags().Changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if len(f.disable) > 0 {
		cfg.DisableRules = f.disable
	}

	return cfg, nil
}

func addCheckFlags(cmd *cobra.Command, flags *checkFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, markdown, json, sarif")
	cmd.Flags().BoolVar(&flags.json, "json", false, "output issues as JSON (same as --format json)")
	cmd.Flags().BoolVar(&flags.discover, "discover", false,
		"check every directory containing a SKILL.md under each path")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or group IDs to disable")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with status 2 when only warnings are found")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the summary line in text output")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "re-check when files change")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", watch.DefaultDebounce,
		"quiet period before re-checking in watch mode")
}
