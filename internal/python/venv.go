package python

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mahirth/venvup/internal/model"
)

// DefaultEnvDir is the fixed relative path of the managed virtual
// environment, matching the conventional `python3 -m venv venv` layout.
const DefaultEnvDir = "venv"

// venvMarker is the configuration file that the venv module writes at
// the root of every environment it creates. Its presence is the
// canonical "this directory is a virtual environment" check.
const venvMarker = "pyvenv.cfg"

// CreateEnv creates a virtual environment at envDir using the given
// interpreter, by running `<interpreter> -m venv <envDir>`.
//
// No existence check is performed first: re-running against an existing
// environment re-invokes the venv module, which refreshes the environment
// in place. The tool's output streams through to the user.
//
// Returns a model.CLIError with ExitEnvCreateFailed on failure.
func CreateEnv(interpreter, envDir string) error {
	if err := runStreamed(nil, interpreter, "-m", "venv", envDir); err != nil {
		return model.WrapCLIError(model.ExitEnvCreateFailed,
			fmt.Sprintf("failed to create virtual environment at %q", envDir), err)
	}
	return nil
}

// EnvStatusAt inspects the directory at envDir and classifies it:
//   - missing: the directory does not exist
//   - ready:   the directory exists and contains pyvenv.cfg
//   - broken:  the directory exists but has no pyvenv.cfg
func EnvStatusAt(envDir string) model.EnvStatus {
	info, err := os.Stat(envDir)
	if err != nil || !info.IsDir() {
		return model.StatusMissing
	}
	if _, err := os.Stat(filepath.Join(envDir, venvMarker)); err != nil {
		return model.StatusBroken
	}
	return model.StatusReady
}

// Env represents an activated virtual environment.
//
// Activation in a shell (`source venv/bin/activate`) mutates the shell's
// environment so that the venv's executables shadow the system ones.
// Env captures the same mutations as data: subsequent pip and python
// invocations use Env's interpreter/pip paths and environ slice, so
// installs target the environment rather than the system site-packages.
type Env struct {
	// Root is the absolute path of the environment directory.
	Root string

	// BinDir is the environment's executable directory: <root>/bin on
	// POSIX systems, <root>/Scripts on Windows.
	BinDir string

	// Python is the path of the environment's interpreter executable.
	Python string

	// Pip is the path of the environment's pip executable.
	Pip string

	// environ is the child-process environment: the current process
	// environment with VIRTUAL_ENV set, BinDir prepended to PATH, and
	// PYTHONHOME removed.
	environ []string
}

// Activate builds an Env for the environment at envDir.
//
// This mirrors what venv's activate script does to a shell:
//  1. VIRTUAL_ENV is set to the environment root
//  2. the environment's bin directory is prepended to PATH
//  3. PYTHONHOME is unset (it would override the venv's interpreter paths)
//
// Activation fails when the environment's bin directory does not exist,
// which is the same failure mode as `source venv/bin/activate` against
// a missing environment. No deeper validation is performed — a broken
// environment surfaces as pip failures in later steps, exactly as it
// would in a shell.
func Activate(envDir string) (*Env, error) {
	root, err := filepath.Abs(envDir)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to resolve environment path %q", envDir), err)
	}

	binDir := filepath.Join(root, binDirName())
	if _, err := os.Stat(binDir); err != nil {
		return nil, model.WrapCLIError(model.ExitEnvNotFound,
			fmt.Sprintf("cannot activate %q: no %s directory", envDir, binDirName()), err)
	}

	env := &Env{
		Root:   root,
		BinDir: binDir,
		Python: filepath.Join(binDir, exeName("python")),
		Pip:    filepath.Join(binDir, exeName("pip")),
	}
	env.environ = buildEnviron(root, binDir)
	return env, nil
}

// Environ returns the child-process environment slice for commands
// running inside this virtual environment.
func (e *Env) Environ() []string {
	return e.environ
}

// buildEnviron derives the activated process environment from the
// current one. Existing PATH and VIRTUAL_ENV entries are dropped and
// replaced; PYTHONHOME is dropped without replacement.
func buildEnviron(root, binDir string) []string {
	base := os.Environ()
	environ := make([]string, 0, len(base)+2)

	path := os.Getenv("PATH")
	for _, entry := range base {
		key, _, _ := strings.Cut(entry, "=")
		switch key {
		case "PATH", "VIRTUAL_ENV", "PYTHONHOME":
			continue
		}
		environ = append(environ, entry)
	}

	environ = append(environ, "VIRTUAL_ENV="+root)
	environ = append(environ, "PATH="+binDir+string(os.PathListSeparator)+path)
	return environ
}

// binDirName returns the environment's executable directory name for
// the current platform. venv uses "Scripts" on Windows and "bin"
// everywhere else.
func binDirName() string {
	if runtime.GOOS == "windows" {
		return "Scripts"
	}
	return "bin"
}

// exeName appends the platform executable suffix to a bare command name.
func exeName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}
