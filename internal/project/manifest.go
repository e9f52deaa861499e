package project

import (
	"os"
	"path/filepath"
)

// RequirementsFile is the fixed name of the requirements declaration
// file expected in the working directory.
const RequirementsFile = "requirements.txt"

// manifestNames lists the packaging manifest files that make a directory
// installable with `pip install -e .`, in the order pip's build frontend
// considers them.
var manifestNames = []string{"pyproject.toml", "setup.py", "setup.cfg"}

// DetectManifests returns the packaging manifest files present in dir.
// The result preserves the order of manifestNames and contains bare file
// names, not paths.
func DetectManifests(dir string) []string {
	var found []string
	for _, name := range manifestNames {
		info, err := os.Stat(filepath.Join(dir, name))
		if err == nil && !info.IsDir() {
			found = append(found, name)
		}
	}
	return found
}

// HasManifest reports whether dir contains at least one packaging
// manifest, i.e. whether an editable install of dir can succeed.
func HasManifest(dir string) bool {
	return len(DetectManifests(dir)) > 0
}

// HasRequirementsFile reports whether dir contains a requirements.txt.
func HasRequirementsFile(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, RequirementsFile))
	return err == nil && !info.IsDir()
}
