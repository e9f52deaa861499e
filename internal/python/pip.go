package python

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mahirth/venvup/internal/model"
)

// FormatterPackage is the code formatter installed into every
// environment during setup.
const FormatterPackage = "autopep8"

// Install runs `pip install <args...>` inside the environment, with
// output streamed through to the user.
//
// The pip executable is addressed by its path inside the environment's
// bin directory AND runs with the activated environ, so the install
// targets the environment's site-packages regardless of what the
// system PATH contains.
//
// Returns a model.CLIError with ExitPipError on failure.
func (e *Env) Install(args ...string) error {
	pipArgs := append([]string{"install"}, args...)
	if err := runStreamed(e.Environ(), e.Pip, pipArgs...); err != nil {
		return model.WrapCLIError(model.ExitPipError,
			fmt.Sprintf("pip install %s failed", strings.Join(args, " ")), err)
	}
	return nil
}

// InstallFormatter installs the autopep8 formatter, upgrading it if a
// copy is already present.
func (e *Env) InstallFormatter() error {
	return e.Install("--upgrade", FormatterPackage)
}

// InstallRequirements installs every package listed in the given
// requirements file. The file's existence is NOT checked first — a
// missing file surfaces as pip's own "Could not open requirements file"
// diagnostic, streamed to the user.
func (e *Env) InstallRequirements(file string) error {
	return e.Install("-r", file)
}

// InstallEditable installs the project at dir in editable/development
// mode, so the installed package is a live reference to the source tree
// rather than a copied snapshot.
func (e *Env) InstallEditable(dir string) error {
	return e.Install("-e", dir)
}

// ListPackages returns the environment's installed distributions,
// queried via `pip list --format=json`. Like the install path, the
// query runs with the activated environ so pip resolves the same
// environment either way.
//
// --disable-pip-version-check suppresses the "new pip available" notice,
// which pip would otherwise mix into the output streams.
func (e *Env) ListPackages() ([]model.Package, error) {
	output, err := runCaptured(e.Environ(), e.Pip, "list", "--format=json", "--disable-pip-version-check")
	if err != nil {
		return nil, model.WrapCLIError(model.ExitPipError, "failed to list installed packages", err)
	}

	var packages []model.Package
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &packages); err != nil {
		return nil, model.WrapCLIError(model.ExitPipError, "failed to parse pip list output", err)
	}
	return packages, nil
}

// Version returns the version string of the environment's interpreter,
// e.g. "3.12.1".
func (e *Env) Version() (string, error) {
	output, err := runCaptured(e.Environ(), e.Python, "--version")
	if err != nil {
		return "", err
	}
	return parseVersionOutput(output), nil
}
