// Package cli — status.go implements the "venvup status" command.
//
// The status command inspects the environment without modifying anything:
// it classifies the ./venv directory (missing/ready/broken), reports the
// interpreter version and project manifests, and — when the environment is
// usable — checks every requirements.txt entry against the installed
// package set (PEP 440 specifier matching) and diffs the installed set
// against the venvup.lock.yml snapshot when one exists.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mahirth/venvup/internal/model"
	"github.com/mahirth/venvup/internal/project"
	"github.com/mahirth/venvup/internal/python"
	"github.com/mahirth/venvup/internal/snapshot"
)

// statusReport aggregates everything the status command gathers.
// It doubles as the JSON output structure.
type statusReport struct {
	// EnvPath is the environment's relative path (always "venv").
	EnvPath string `json:"envPath"`

	// EnvStatus is the missing/ready/broken classification.
	EnvStatus string `json:"envStatus"`

	// Python is the environment interpreter's version, when available.
	Python string `json:"python,omitempty"`

	// Manifests lists the detected packaging manifest files.
	Manifests []string `json:"manifests"`

	// HasRequirements reports whether requirements.txt exists.
	HasRequirements bool `json:"hasRequirements"`

	// PackageCount is the number of installed distributions.
	// Only populated for a ready environment.
	PackageCount int `json:"packageCount,omitempty"`

	// Requirements holds the per-requirement drift classification.
	Requirements []requirementJSON `json:"requirements,omitempty"`

	// LockfileChanges holds the diff against venvup.lock.yml, when a
	// lockfile exists. Empty slice means in sync.
	LockfileChanges []string `json:"lockfileChanges,omitempty"`

	// HasLockfile reports whether venvup.lock.yml exists.
	HasLockfile bool `json:"hasLockfile"`
}

// requirementJSON is the JSON shape of one drift entry.
type requirementJSON struct {
	Requirement string `json:"requirement"`
	State       string `json:"state"`
	Installed   string `json:"installed,omitempty"`
}

// NewStatusCommand creates the "status" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Inspect the development environment",
		Long: `Report the state of the ./venv environment and the project around it:
interpreter version, packaging manifests, installed package count,
requirements.txt drift, and lockfile drift.

Examples:
  venvup status
  venvup status --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}

	return cmd
}

// runStatus is the main logic function for the status command.
func runStatus() error {
	cwd, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
	}

	report := &statusReport{
		EnvPath:         python.DefaultEnvDir,
		Manifests:       project.DetectManifests(cwd),
		HasRequirements: project.HasRequirementsFile(cwd),
	}
	if report.Manifests == nil {
		// Empty slice instead of nil so JSON output shows [] rather than null.
		report.Manifests = []string{}
	}

	// Step 1: Classify the environment directory.
	envStatus := python.EnvStatusAt(python.DefaultEnvDir)
	report.EnvStatus = envStatus.String()
	VerboseLog("Environment status: %s", envStatus)

	if envStatus != model.StatusReady {
		// Nothing to query inside a missing/broken environment.
		printStatusReport(report)
		if envStatus == model.StatusMissing {
			return model.NewCLIError(model.ExitEnvNotFound,
				fmt.Sprintf("no virtual environment at ./%s (run `venvup setup`)", python.DefaultEnvDir))
		}
		return nil
	}

	// Step 2: Activate (read-only here: activation only builds paths)
	// and query the interpreter and installed packages.
	env, err := python.Activate(python.DefaultEnvDir)
	if err != nil {
		return err
	}

	if version, verErr := env.Version(); verErr == nil {
		report.Python = version
	} else {
		VerboseLog("Could not determine interpreter version: %v", verErr)
	}

	installed, err := env.ListPackages()
	if err != nil {
		return err
	}
	report.PackageCount = len(installed)
	VerboseLog("Found %d installed packages", len(installed))

	// Step 3: Requirements drift.
	if report.HasRequirements {
		reqs, parseErr := project.ParseRequirementsFile(project.RequirementsFile)
		if parseErr != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to parse requirements.txt", parseErr)
		}
		for _, drift := range project.CheckDrift(reqs, installed) {
			entry := requirementJSON{
				Requirement: drift.Requirement.Raw,
				State:       drift.State.String(),
			}
			if drift.Installed != nil {
				entry.Installed = drift.Installed.Version
			}
			report.Requirements = append(report.Requirements, entry)
		}
	}

	// Step 4: Lockfile drift, when a snapshot exists.
	lock, lockErr := snapshot.Load(snapshot.DefaultLockfileName)
	switch {
	case lockErr == nil:
		report.HasLockfile = true
		report.LockfileChanges = []string{}
		for _, change := range snapshot.Diff(lock, installed) {
			report.LockfileChanges = append(report.LockfileChanges, change.String())
		}
	case os.IsNotExist(lockErr):
		// No snapshot taken yet — not an error.
	default:
		return model.WrapCLIError(model.ExitGeneralError, "failed to read lockfile", lockErr)
	}

	printStatusReport(report)
	return nil
}

// printStatusReport outputs the report in text or JSON format,
// depending on the global --json flag.
func printStatusReport(report *statusReport) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Environment:   ./%s (%s)\n", report.EnvPath, report.EnvStatus)
	if report.Python != "" {
		fmt.Printf("Python:        %s\n", report.Python)
	}
	if len(report.Manifests) > 0 {
		fmt.Printf("Manifests:     %v\n", report.Manifests)
	} else {
		fmt.Println("Manifests:     none (editable install will fail)")
	}
	if report.EnvStatus == model.StatusReady.String() {
		fmt.Printf("Packages:      %d installed\n", report.PackageCount)
	}

	if !report.HasRequirements {
		fmt.Println("Requirements:  requirements.txt not found")
	} else if len(report.Requirements) > 0 {
		fmt.Println("Requirements:")
		for _, entry := range report.Requirements {
			line := fmt.Sprintf("  %-32s %s", entry.Requirement, entry.State)
			if entry.Installed != "" && entry.State != project.DriftSatisfied.String() {
				line += fmt.Sprintf(" (installed: %s)", entry.Installed)
			}
			fmt.Println(line)
		}
	}

	if report.HasLockfile {
		if len(report.LockfileChanges) == 0 {
			fmt.Println("Lockfile:      in sync")
		} else {
			fmt.Printf("Lockfile:      %d change(s) since snapshot\n", len(report.LockfileChanges))
			for _, change := range report.LockfileChanges {
				fmt.Printf("  %s\n", change)
			}
		}
	}
}
