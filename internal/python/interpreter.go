package python

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/mahirth/venvup/internal/model"
)

// interpreterCandidates lists the interpreter names probed on PATH,
// in preference order. "python3" is the canonical name on Linux and
// macOS; "python" covers Windows installs and pyenv shims.
var interpreterCandidates = []string{"python3", "python"}

// FindInterpreter locates a Python interpreter on PATH.
//
// It probes the candidate names in order with exec.LookPath and returns
// the absolute path of the first match. No version check is performed —
// whichever interpreter the user's PATH resolves to is the one used,
// exactly as a shell script invoking `python3` would behave.
//
// Returns a model.CLIError with ExitInterpreterNotFound when no
// candidate is found.
func FindInterpreter() (string, error) {
	for _, name := range interpreterCandidates {
		path, err := exec.LookPath(name)
		if err == nil {
			return path, nil
		}
	}
	return "", model.NewCLIError(
		model.ExitInterpreterNotFound,
		fmt.Sprintf("no Python interpreter found on PATH (tried: %s)", strings.Join(interpreterCandidates, ", ")),
	)
}

// InterpreterVersion returns the version string reported by the given
// interpreter, e.g. "3.12.1".
//
// It runs `<interpreter> --version`, which prints "Python X.Y.Z".
// Older Python 2 interpreters print the version to stderr instead of
// stdout, so both streams are consulted.
func InterpreterVersion(interpreter string) (string, error) {
	output, err := runCaptured(nil, interpreter, "--version")
	if err != nil {
		return "", err
	}
	return parseVersionOutput(output), nil
}

// parseVersionOutput strips the "Python " prefix and surrounding
// whitespace from `python --version` output.
func parseVersionOutput(output string) string {
	version := strings.TrimSpace(output)
	version = strings.TrimPrefix(version, "Python ")
	return version
}
