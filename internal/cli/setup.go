// Package cli — setup.go implements the "venvup setup" command.
//
// The setup command is the primary operation: it bootstraps a Python
// development environment for the project in the current directory.
//
// Orchestration steps:
//  1. Create the virtual environment at ./venv
//  2. Activate it (build the VIRTUAL_ENV/PATH process environment)
//  3. Install the autopep8 formatter (upgrading if present)
//  4. Install every package listed in requirements.txt
//  5. Install the current directory in editable mode
//
// Control flow is strictly linear and every step is attempted regardless
// of earlier failures, mirroring a shell script run without `set -e`:
// a missing requirements.txt fails only step 4, and the editable install
// still runs afterwards. The command's exit status reflects the LAST
// executed step, which is also the shell script's exit semantics.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mahirth/venvup/internal/editor"
	"github.com/mahirth/venvup/internal/model"
	"github.com/mahirth/venvup/internal/python"
)

// setupSteps is the fixed execution order of the bootstrap.
var setupSteps = []model.Step{
	model.StepCreateEnv,
	model.StepActivate,
	model.StepInstallFormatter,
	model.StepInstallRequirements,
	model.StepInstallEditable,
}

// NewSetupCommand creates the "setup" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewSetupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Bootstrap the Python development environment",
		Long: `Bootstrap a Python development environment for the project in the
current directory.

The command runs five fixed steps in order:
  1. python3 -m venv venv
  2. activate the environment
  3. pip install --upgrade autopep8
  4. pip install -r requirements.txt
  5. pip install -e .

Every step is attempted even when an earlier one fails; each failure is
reported, and the exit status reflects the last step. Output from the
underlying tools is shown verbatim.

Examples:
  venvup setup
  venvup setup --json`,

		// The bootstrap is deliberately parameterless: interpreter,
		// environment location, formatter, and requirements file are fixed.
		Args: cobra.NoArgs,

		// RunE is used instead of Run so we can return errors. Cobra will
		// pass them to the Execute error handler in root.go.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup()
		},
	}

	return cmd
}

// runSetup is the main orchestration function for the setup command.
// It executes the five bootstrap steps in order and collects per-step
// results.
func runSetup() error {
	cwd, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
	}
	VerboseLog("Project directory: %s", cwd)

	// In JSON mode stdout carries only the final structured result, so
	// the tools' streamed output moves to stderr with their diagnostics.
	if IsJSONOutput() {
		defer python.RedirectStreamOutput(os.Stderr)()
	}

	results := make([]model.StepResult, 0, len(setupSteps))
	record := func(step model.Step, err error) {
		results = append(results, model.StepResult{Step: step, Err: err})
		if err != nil {
			VerboseLog("Step %s failed: %v", step, err)
		} else {
			VerboseLog("Step %s done", step)
		}
	}

	// Step 1: Create the virtual environment.
	// Interpreter discovery is part of this step — the shell equivalent
	// (`python3 -m venv venv`) fails here when no interpreter is on PATH.
	announceStep(1, model.StepCreateEnv)
	interpreter, createErr := python.FindInterpreter()
	if createErr == nil {
		VerboseLog("Using interpreter: %s", interpreter)
		createErr = python.CreateEnv(interpreter, python.DefaultEnvDir)
	}
	record(model.StepCreateEnv, createErr)

	// Step 2: Activate the environment. This resolves the venv's bin
	// directory and builds the process environment used by the pip steps.
	// When step 1 failed, activation fails against the missing directory —
	// the same cascade as `source venv/bin/activate` in a shell.
	announceStep(2, model.StepActivate)
	env, activateErr := python.Activate(python.DefaultEnvDir)
	record(model.StepActivate, activateErr)

	// Steps 3-5: pip installs inside the environment. Without a usable
	// activation there is no environment pip to run, so these steps fail
	// immediately rather than falling back to a system-wide pip.
	announceStep(3, model.StepInstallFormatter)
	record(model.StepInstallFormatter, pipStep(env, func(e *python.Env) error {
		return e.InstallFormatter()
	}))

	announceStep(4, model.StepInstallRequirements)
	record(model.StepInstallRequirements, pipStep(env, func(e *python.Env) error {
		return e.InstallRequirements("requirements.txt")
	}))

	announceStep(5, model.StepInstallEditable)
	record(model.StepInstallEditable, pipStep(env, func(e *python.Env) error {
		return e.InstallEditable(".")
	}))

	// Editor integration: point an existing .vscode/settings.json at the
	// environment's interpreter so the editor picks up the formatter and
	// packages that were just installed.
	if env != nil {
		updated, vscodeErr := editor.UpdateVSCodeSettings(cwd, env.Python)
		if vscodeErr != nil {
			VerboseLog("Could not update VS Code settings: %v", vscodeErr)
		} else if updated {
			VerboseLog("Updated %s", editor.SettingsPath)
		}
	}

	printSetupResult(results)

	// Exit status parity with the shell form: the last executed step's
	// result is the command's result.
	last := results[len(results)-1]
	if last.Failed() {
		return asCLIError(last.Err)
	}
	return nil
}

// pipStep runs fn against the activated environment, or returns an
// "environment not activated" error when activation did not produce one.
func pipStep(env *python.Env, fn func(*python.Env) error) error {
	if env == nil {
		return model.NewCLIError(model.ExitPipError, "virtual environment is not activated")
	}
	return fn(env)
}

// announceStep prints a step header in text mode, so the streamed tool
// output below it is attributable to a step. Suppressed in JSON mode,
// where stdout carries only the final structured result.
func announceStep(n int, step model.Step) {
	if IsJSONOutput() {
		return
	}
	fmt.Printf("[%d/%d] %s\n", n, len(setupSteps), step.Description())
}

// asCLIError returns err as a *model.CLIError, wrapping it with a
// general exit code when it is any other error type.
func asCLIError(err error) error {
	if _, ok := err.(*model.CLIError); ok {
		return err
	}
	return model.WrapCLIError(model.ExitGeneralError, "setup failed", err)
}

// printSetupResult outputs the setup summary in text or JSON format.
func printSetupResult(results []model.StepResult) {
	if IsJSONOutput() {
		printSetupResultJSON(results)
	} else {
		printSetupResultText(results)
	}
}

// printSetupResultJSON outputs the per-step results as structured JSON.
func printSetupResultJSON(results []model.StepResult) {
	type stepJSON struct {
		Step        string `json:"step"`
		Description string `json:"description"`
		OK          bool   `json:"ok"`
		Error       string `json:"error,omitempty"`
	}

	type resultJSON struct {
		EnvPath string     `json:"envPath"`
		OK      bool       `json:"ok"`
		Steps   []stepJSON `json:"steps"`
	}

	result := resultJSON{
		EnvPath: python.DefaultEnvDir,
		OK:      true,
		Steps:   make([]stepJSON, 0, len(results)),
	}

	for _, r := range results {
		entry := stepJSON{
			Step:        r.Step.String(),
			Description: r.Step.Description(),
			OK:          !r.Failed(),
		}
		if r.Failed() {
			entry.Error = r.Err.Error()
			result.OK = false
		}
		result.Steps = append(result.Steps, entry)
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}

// printSetupResultText outputs the setup summary as human-readable text.
func printSetupResultText(results []model.StepResult) {
	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}

	fmt.Println()
	if failed == 0 {
		fmt.Printf("Environment ready at ./%s\n", python.DefaultEnvDir)
		fmt.Printf("Activate it with: source %s/bin/activate\n", python.DefaultEnvDir)
		return
	}

	fmt.Printf("Setup finished with %d failed step(s):\n", failed)
	for _, r := range results {
		marker := "ok"
		if r.Failed() {
			marker = "FAILED"
		}
		fmt.Printf("  %-28s %s\n", r.Step.Description(), marker)
		if r.Failed() {
			fmt.Printf("    %v\n", r.Err)
		}
	}
}
