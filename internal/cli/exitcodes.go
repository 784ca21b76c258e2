package cli

import (
	"errors"

	"github.com/yaklabco/skillcheck/pkg/runner"
)

// Exit codes for skillcheck.
const (
	// ExitSuccess indicates no error issues were found.
	ExitSuccess = 0

	// ExitCheckErrors indicates the check found at least one error issue.
	ExitCheckErrors = 1

	// ExitCheckWarnings indicates warnings were found in strict mode.
	ExitCheckWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

// ErrIssuesFound is returned when the check found failing issues.
var ErrIssuesFound = errors.New("check issues found")

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitInvalidUsage, Err: err}
}

func configError(err error) error {
	return &ExitError{Code: ExitConfigError, Err: err}
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitInternalError
}

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() {
		return ExitCheckErrors
	}

	if strict && result.HasWarnings() {
		return ExitCheckWarnings
	}

	return ExitSuccess
}
