// Package model defines the domain types for the venvup CLI.
//
// These types describe the state of a managed virtual environment and the
// outcome of bootstrap steps. All state lives on disk in the environment
// directory itself (owned by the Python tooling); the types here are
// transient representations reconstructed from filesystem inspection and
// pip queries at runtime.
package model

import (
	"fmt"
	"strings"
)

// EnvStatus represents the observable state of the managed virtual
// environment directory.
type EnvStatus string

const (
	// StatusMissing indicates the environment directory does not exist.
	StatusMissing EnvStatus = "missing"

	// StatusReady indicates the environment directory exists and contains
	// a pyvenv.cfg marker, i.e. it was created by the venv machinery.
	StatusReady EnvStatus = "ready"

	// StatusBroken indicates the directory exists but has no pyvenv.cfg.
	// This usually means the directory is not a virtual environment at all,
	// or environment creation was interrupted before completion.
	StatusBroken EnvStatus = "broken"
)

// String returns the string representation of EnvStatus.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI commands.
func (s EnvStatus) String() string {
	return string(s)
}

// IsValid checks whether the EnvStatus value is one of the
// predefined valid states.
func (s EnvStatus) IsValid() bool {
	switch s {
	case StatusMissing, StatusReady, StatusBroken:
		return true
	default:
		return false
	}
}

// ParseEnvStatus converts a string to an EnvStatus.
// Returns an error if the string does not match any valid status.
func ParseEnvStatus(s string) (EnvStatus, error) {
	status := EnvStatus(strings.ToLower(s))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid environment status: %q (valid: missing, ready, broken)", s)
	}
	return status, nil
}

// Step identifies one of the five sequential bootstrap operations
// performed by the setup command. The numeric order of the constants
// is the execution order.
type Step int

const (
	// StepCreateEnv creates the virtual environment directory
	// (python3 -m venv venv).
	StepCreateEnv Step = iota

	// StepActivate resolves the environment's bin directory and builds the
	// process environment (VIRTUAL_ENV, PATH) used by subsequent steps.
	StepActivate

	// StepInstallFormatter installs or upgrades the autopep8 formatter
	// inside the environment.
	StepInstallFormatter

	// StepInstallRequirements installs every package listed in
	// requirements.txt.
	StepInstallRequirements

	// StepInstallEditable installs the working directory itself in
	// editable mode (pip install -e .).
	StepInstallEditable
)

// stepNames maps each Step to its stable identifier, used in both
// text summaries and JSON output.
var stepNames = map[Step]string{
	StepCreateEnv:           "create-env",
	StepActivate:            "activate",
	StepInstallFormatter:    "install-formatter",
	StepInstallRequirements: "install-requirements",
	StepInstallEditable:     "install-editable",
}

// String returns the stable identifier of the step.
func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step-%d", int(s))
}

// Description returns a one-line human-readable description of what
// the step does, used in the setup progress output.
func (s Step) Description() string {
	switch s {
	case StepCreateEnv:
		return "Create virtual environment"
	case StepActivate:
		return "Activate virtual environment"
	case StepInstallFormatter:
		return "Install autopep8"
	case StepInstallRequirements:
		return "Install requirements.txt"
	case StepInstallEditable:
		return "Install project (editable)"
	default:
		return s.String()
	}
}

// StepResult records the outcome of a single bootstrap step.
// A nil Err means the step succeeded.
type StepResult struct {
	// Step identifies which bootstrap operation this result belongs to.
	Step Step

	// Err holds the failure, if any.
	Err error
}

// Failed reports whether the step ended in an error.
func (r StepResult) Failed() bool {
	return r.Err != nil
}

// Package represents one installed distribution inside the environment,
// as reported by `pip list --format=json`.
type Package struct {
	// Name is the distribution name as pip reports it (not normalized).
	Name string `json:"name"`

	// Version is the installed version string (PEP 440 format).
	Version string `json:"version"`
}

// String returns the pip-requirement style representation, e.g. "flask==3.0.2".
func (p Package) String() string {
	return fmt.Sprintf("%s==%s", p.Name, p.Version)
}

// ExitCode defines the CLI exit codes. These codes allow scripts and CI
// systems to programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitInterpreterNotFound indicates no compatible Python interpreter
	// was found on PATH.
	ExitInterpreterNotFound ExitCode = 2

	// ExitEnvCreateFailed indicates the virtual environment could not
	// be created.
	ExitEnvCreateFailed ExitCode = 3

	// ExitPipError indicates a pip invocation inside the environment failed
	// (package not found, missing requirements file, network failure, ...).
	ExitPipError ExitCode = 4

	// ExitEnvNotFound indicates a command that operates on an existing
	// environment (status, freeze, clean) found none at the expected path.
	ExitEnvNotFound ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
