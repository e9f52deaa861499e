// Package editor integrates the bootstrapped environment with editor
// configuration.
//
// VS Code resolves the Python interpreter for a workspace from the
// "python.defaultInterpreterPath" setting in .vscode/settings.json.
// After setup creates the virtual environment, pointing that setting at
// the venv interpreter makes the editor's formatter integration (autopep8)
// and language server use the environment that setup just built.
//
// settings.json is JSONC (JSON with comments), so raw bytes are run
// through github.com/tidwall/jsonc before parsing with encoding/json.
// The rewrite works on a generic map so every field the user has in their
// settings file survives the round trip; only the interpreter path key is
// touched. Comments themselves are not preserved — the rewritten file is
// plain JSON, the same trade-off VS Code's own settings editor makes when
// it rewrites the file.
package editor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// SettingsPath is the workspace-relative location of VS Code settings.
const SettingsPath = ".vscode/settings.json"

// interpreterKey is the VS Code setting that selects the Python
// interpreter for the workspace.
const interpreterKey = "python.defaultInterpreterPath"

// UpdateVSCodeSettings points the workspace's VS Code Python interpreter
// setting at interpreterPath.
//
// The file is only updated when it already exists: a project without
// VS Code configuration does not get one forced on it. Returns true when
// the file was rewritten.
func UpdateVSCodeSettings(workspaceDir, interpreterPath string) (bool, error) {
	settingsFile := filepath.Join(workspaceDir, filepath.FromSlash(SettingsPath))

	rawJSON, err := os.ReadFile(settingsFile)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", SettingsPath, err)
	}

	rewritten, err := RewriteSettings(rawJSON, interpreterPath)
	if err != nil {
		return false, err
	}

	// Preserve the file's permission bits; settings.json is user data.
	info, err := os.Stat(settingsFile)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", SettingsPath, err)
	}
	if err := os.WriteFile(settingsFile, rewritten, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", SettingsPath, err)
	}
	return true, nil
}

// RewriteSettings takes the raw bytes of a settings.json file (which may
// include JSONC comments), sets the Python interpreter path, and returns
// the modified JSON as formatted bytes.
//
// The function works in three phases:
//  1. Strip JSONC comments and parse into a generic map
//  2. Set the interpreter path key
//  3. Re-serialize with indentation for human readability
//
// Using map[string]interface{} preserves ALL fields from the original
// file, not just the ones this tool knows about.
func RewriteSettings(rawJSON []byte, interpreterPath string) ([]byte, error) {
	cleanJSON := jsonc.ToJSON(rawJSON)

	settings := map[string]interface{}{}
	// An empty settings file is valid to VS Code; treat it as an
	// empty object rather than a parse error.
	if len(bytes.TrimSpace(cleanJSON)) > 0 {
		if err := json.Unmarshal(cleanJSON, &settings); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", SettingsPath, err)
		}
	}

	settings[interpreterKey] = interpreterPath

	result, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s: %w", SettingsPath, err)
	}

	// Trailing newline: editors and linters expect text files to end
	// with one.
	result = append(result, '\n')
	return result, nil
}
