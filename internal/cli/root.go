// Package cli implements the cobra-based CLI commands for venvup.
//
// Each subcommand (setup, status, freeze, clean) lives in its own file.
// This file holds the root command, the global flags, and the error
// handling shared by all of them.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mahirth/venvup/internal/model"
)

// Global flags, bound as persistent flags on the root command so every
// subcommand sees them.
var (
	// jsonOutput selects structured JSON output instead of text.
	jsonOutput bool

	// verbose enables trace output on stderr.
	verbose bool
)

// Build metadata, injected from the main package via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// The root command carries no action of its own — it holds the help
// text, the global flags, and the subcommand registrations.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "venvup",
		Short: "Python development environment bootstrapper",
		Long: `venvup prepares a local Python development environment for the project
in the current directory: it creates a virtual environment at ./venv,
installs the autopep8 formatter, installs requirements.txt, and installs
the project itself in editable mode.

The companion commands inspect the environment (status), snapshot its
installed package set (freeze), and delete it (clean).`,

		// Errors are formatted by Execute (text or JSON per --json), so
		// cobra's own usage and error printing stays off.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewSetupCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewFreezeCommand())
	rootCmd.AddCommand(NewCleanCommand())

	return rootCmd
}

// Execute runs the root command and translates returned errors into
// process exit codes: a CLIError carries its own code, anything else
// exits 1. Called from main.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError writes an error in the selected output format. Errors go
// to stderr in both modes; stdout is reserved for command results.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// VerboseLog prints a trace message to stderr when --verbose is set.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput reports whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
