package cli

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahirth/venvup/internal/model"
	"github.com/mahirth/venvup/internal/python"
	"github.com/mahirth/venvup/internal/snapshot"
)

// writeStubEnv creates a ./venv in the current working directory with
// stub python/pip executables: pip reports a fixed package inventory,
// python reports a fixed version.
func writeStubEnv(t *testing.T, dir string) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("stub interpreter scripts require a POSIX shell")
	}

	binDir := filepath.Join(dir, python.DefaultEnvDir, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, python.DefaultEnvDir, "pyvenv.cfg"),
		[]byte("home = /usr/bin\n"), 0644))

	pipScript := `#!/bin/sh
if [ "$1" = "list" ]; then
  echo '[{"name":"autopep8","version":"2.0.4"},{"name":"Flask","version":"3.0.2"}]'
fi
`
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "pip"), []byte(pipScript), 0755))

	pythonScript := `#!/bin/sh
echo "Python 3.12.1"
`
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "python"), []byte(pythonScript), 0755))
}

// TestRunFreeze verifies the snapshot flow end to end: query the stub
// environment, write the lockfile, and read it back.
func TestRunFreeze(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeStubEnv(t, dir)

	require.NoError(t, runFreeze())

	lock, err := snapshot.Load(filepath.Join(dir, snapshot.DefaultLockfileName))
	require.NoError(t, err)

	assert.Equal(t, "3.12.1", lock.Python)
	require.Len(t, lock.Packages, 2)
	// Sorted by normalized name: autopep8 before Flask.
	assert.Equal(t, "autopep8", lock.Packages[0].Name)
	assert.Equal(t, "Flask", lock.Packages[1].Name)
}

// TestRunFreeze_NoEnv verifies that freeze refuses to run without a
// usable environment.
func TestRunFreeze_NoEnv(t *testing.T) {
	chdir(t, t.TempDir())

	err := runFreeze()
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitEnvNotFound, cliErr.Code)
}
