package python

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/mahirth/venvup/internal/model"
)

// streamOut is the destination for streamed child stdout. It defaults
// to the process stdout; commands that reserve stdout for structured
// output divert it with RedirectStreamOutput.
var streamOut io.Writer = os.Stdout

// RedirectStreamOutput points streamed child stdout at w and returns a
// function that restores the previous destination.
func RedirectStreamOutput(w io.Writer) func() {
	prev := streamOut
	streamOut = w
	return func() { streamOut = prev }
}

// runStreamed executes a command with the given environment, wiring its
// output directly to the CLI's own streams.
//
// This is used for the bootstrap steps (venv creation, pip installs),
// where the underlying tool's diagnostics must reach the user verbatim —
// pip's progress bars, resolver messages, and error output all pass
// through untouched, the same as running the command in a shell.
//
// env may be nil, in which case the child inherits the current process
// environment.
func runStreamed(env []string, name string, args ...string) error {
	// #nosec G204 — command names and args are constructed internally, not from user input
	cmd := exec.Command(name, args...)
	cmd.Stdout = streamOut
	cmd.Stderr = os.Stderr
	cmd.Env = env

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

// runCaptured executes a command with the given environment and returns
// its output as a string.
//
// This is used for query commands (`python --version`, `pip list`)
// whose output is parsed rather than shown to the user. On failure the
// captured stderr is included in the error message for diagnostics.
//
// env may be nil, in which case the child inherits the current process
// environment.
func runCaptured(env []string, name string, args ...string) (string, error) {
	// #nosec G204 — command names and args are constructed internally, not from user input
	cmd := exec.Command(name, args...)
	cmd.Env = env

	// Capture stdout and stderr separately so we can include stderr
	// in error messages while returning stdout on success.
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		message := fmt.Sprintf("%s %s failed", name, strings.Join(args, " "))
		if stderrStr != "" {
			message = fmt.Sprintf("%s: %s", message, stderrStr)
		}
		return "", model.WrapCLIError(model.ExitGeneralError, message, err)
	}

	// Some tools (notably Python 2's --version) write to stderr on
	// success. Fall back to stderr when stdout is empty.
	if stdout.Len() == 0 {
		return stderr.String(), nil
	}
	return stdout.String(), nil
}
