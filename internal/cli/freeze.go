// Package cli — freeze.go implements the "venvup freeze" command.
//
// The freeze command snapshots the environment's installed package set
// into venvup.lock.yml. The snapshot is informational: the status command
// diffs the live environment against it to show what changed since the
// snapshot was taken. It is never fed back into pip.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mahirth/venvup/internal/model"
	"github.com/mahirth/venvup/internal/python"
	"github.com/mahirth/venvup/internal/snapshot"
)

// NewFreezeCommand creates the "freeze" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewFreezeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "freeze",
		Short: "Snapshot installed packages to venvup.lock.yml",
		Long: `Write a YAML snapshot of the environment's installed package set to
venvup.lock.yml in the current directory, replacing any existing
snapshot. Use "venvup status" to diff the environment against it later.

Examples:
  venvup freeze
  venvup freeze --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runFreeze()
		},
	}

	return cmd
}

// runFreeze is the main logic function for the freeze command.
func runFreeze() error {
	// Step 1: The environment must exist and be valid — there is nothing
	// to snapshot otherwise.
	if status := python.EnvStatusAt(python.DefaultEnvDir); status != model.StatusReady {
		return model.NewCLIError(model.ExitEnvNotFound,
			fmt.Sprintf("no usable virtual environment at ./%s (status: %s)", python.DefaultEnvDir, status))
	}

	env, err := python.Activate(python.DefaultEnvDir)
	if err != nil {
		return err
	}

	// Step 2: Query the installed package set and interpreter version.
	installed, err := env.ListPackages()
	if err != nil {
		return err
	}
	VerboseLog("Found %d installed packages", len(installed))

	pythonVersion, err := env.Version()
	if err != nil {
		// The version line is cosmetic in the lockfile; a failure to
		// read it should not block the snapshot.
		VerboseLog("Could not determine interpreter version: %v", err)
		pythonVersion = ""
	}

	// Step 3: Generate and write the lockfile.
	lock := snapshot.Generate(installed, pythonVersion)
	if err := lock.Write(snapshot.DefaultLockfileName); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to write lockfile", err)
	}

	printFreezeResult(lock)
	return nil
}

// printFreezeResult outputs the freeze result in text or JSON format.
func printFreezeResult(lock *snapshot.Lockfile) {
	if IsJSONOutput() {
		result := map[string]interface{}{
			"lockfile": snapshot.DefaultLockfileName,
			"python":   lock.Python,
			"packages": len(lock.Packages),
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Wrote %s (%d packages", snapshot.DefaultLockfileName, len(lock.Packages))
	if lock.Python != "" {
		fmt.Printf(", python %s", lock.Python)
	}
	fmt.Println(")")
}
