package editor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRewriteSettings verifies that the interpreter key is set while
// every other setting in the file survives the rewrite.
func TestRewriteSettings(t *testing.T) {
	original := []byte(`{
  // editor basics
  "editor.formatOnSave": true,
  "python.defaultInterpreterPath": "/usr/bin/python3",
  "files.trimTrailingWhitespace": true,
  "custom.unknown.setting": {"nested": [1, 2, 3]}
}`)

	rewritten, err := RewriteSettings(original, "/project/venv/bin/python")
	require.NoError(t, err)

	var settings map[string]interface{}
	require.NoError(t, json.Unmarshal(rewritten, &settings))

	// The interpreter path is replaced.
	assert.Equal(t, "/project/venv/bin/python", settings["python.defaultInterpreterPath"])

	// Unknown fields are preserved through the map-based rewrite.
	assert.Equal(t, true, settings["editor.formatOnSave"])
	assert.Equal(t, true, settings["files.trimTrailingWhitespace"])
	assert.Contains(t, settings, "custom.unknown.setting")

	// The output ends with a newline.
	assert.Equal(t, byte('\n'), rewritten[len(rewritten)-1])
}

// TestRewriteSettings_JSONC verifies that comments and trailing commas
// are tolerated on input.
func TestRewriteSettings_JSONC(t *testing.T) {
	original := []byte(`{
  /* block comment */
  "editor.tabSize": 4, // line comment
}`)

	rewritten, err := RewriteSettings(original, "venv/bin/python")
	require.NoError(t, err)

	var settings map[string]interface{}
	require.NoError(t, json.Unmarshal(rewritten, &settings))
	assert.Equal(t, float64(4), settings["editor.tabSize"])
	assert.Equal(t, "venv/bin/python", settings["python.defaultInterpreterPath"])
}

// TestRewriteSettings_Empty verifies that an empty settings file is
// treated as an empty object.
func TestRewriteSettings_Empty(t *testing.T) {
	rewritten, err := RewriteSettings([]byte("  \n"), "venv/bin/python")
	require.NoError(t, err)

	var settings map[string]interface{}
	require.NoError(t, json.Unmarshal(rewritten, &settings))
	assert.Equal(t, "venv/bin/python", settings["python.defaultInterpreterPath"])
}

// TestRewriteSettings_Invalid verifies the error path for files that
// are not JSON at all.
func TestRewriteSettings_Invalid(t *testing.T) {
	_, err := RewriteSettings([]byte("not json {"), "venv/bin/python")
	assert.Error(t, err)
}

// TestUpdateVSCodeSettings verifies the file-level entry point: no-op
// without a settings file, in-place rewrite with one.
func TestUpdateVSCodeSettings(t *testing.T) {
	t.Run("missing file is a no-op", func(t *testing.T) {
		dir := t.TempDir()

		updated, err := UpdateVSCodeSettings(dir, "venv/bin/python")
		require.NoError(t, err)
		assert.False(t, updated)

		// Nothing was created.
		_, statErr := os.Stat(filepath.Join(dir, ".vscode"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("existing file is rewritten", func(t *testing.T) {
		dir := t.TempDir()
		vscodeDir := filepath.Join(dir, ".vscode")
		require.NoError(t, os.Mkdir(vscodeDir, 0755))

		settingsFile := filepath.Join(vscodeDir, "settings.json")
		require.NoError(t, os.WriteFile(settingsFile, []byte(`{"editor.tabSize": 2}`), 0644))

		updated, err := UpdateVSCodeSettings(dir, "/abs/venv/bin/python")
		require.NoError(t, err)
		assert.True(t, updated)

		data, err := os.ReadFile(settingsFile)
		require.NoError(t, err)

		var settings map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &settings))
		assert.Equal(t, "/abs/venv/bin/python", settings["python.defaultInterpreterPath"])
		assert.Equal(t, float64(2), settings["editor.tabSize"])
	})
}
