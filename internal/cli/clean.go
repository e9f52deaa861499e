// Package cli — clean.go implements the "venvup clean" command.
//
// The clean command deletes the ./venv directory so the next setup run
// starts from scratch. Because the deletion is recursive, the command
// refuses to remove a directory that does not look like a virtual
// environment (no pyvenv.cfg) unless --force is given — a guard against
// a stray directory named "venv" that holds something else.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mahirth/venvup/internal/model"
	"github.com/mahirth/venvup/internal/python"
)

// cleanFlags holds the flag values for the clean command.
// These are bound to cobra flags in NewCleanCommand.
type cleanFlags struct {
	force bool // --force: delete even without a pyvenv.cfg marker
}

// NewCleanCommand creates the "clean" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewCleanCommand() *cobra.Command {
	flags := &cleanFlags{}

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete the virtual environment",
		Long: `Delete the ./venv directory.

The directory is only removed when it contains a pyvenv.cfg marker,
i.e. when it actually is a virtual environment. Use --force to remove
a broken environment directory without the marker.

Examples:
  venvup clean
  venvup clean --force`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(flags)
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "Delete the directory even without a pyvenv.cfg marker")

	return cmd
}

// runClean is the main logic function for the clean command.
func runClean(flags *cleanFlags) error {
	// Step 1: Classify the directory before touching it.
	status := python.EnvStatusAt(python.DefaultEnvDir)
	switch status {
	case model.StatusMissing:
		return model.NewCLIError(model.ExitEnvNotFound,
			fmt.Sprintf("no virtual environment at ./%s", python.DefaultEnvDir))
	case model.StatusBroken:
		if !flags.force {
			return model.NewCLIError(model.ExitGeneralError,
				fmt.Sprintf("./%s exists but has no pyvenv.cfg; not deleting (use --force to override)", python.DefaultEnvDir))
		}
		VerboseLog("Deleting unmarked directory (--force)")
	}

	// Step 2: Delete recursively.
	VerboseLog("Removing ./%s", python.DefaultEnvDir)
	if err := os.RemoveAll(python.DefaultEnvDir); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to remove ./%s", python.DefaultEnvDir), err)
	}

	printCleanResult()
	return nil
}

// printCleanResult outputs the clean result in text or JSON format.
func printCleanResult() {
	if IsJSONOutput() {
		result := map[string]interface{}{
			"removed": python.DefaultEnvDir,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Removed ./%s\n", python.DefaultEnvDir)
}
