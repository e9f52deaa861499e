package project

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseRequirements covers the requirements file syntax subset the
// parser understands: names, extras, specifiers, comments, options.
func TestParseRequirements(t *testing.T) {
	input := `
# direct dependencies
flask>=3.0
requests[socks,security]==2.31.0
click

  # tooling
autopep8  # formatter
-r dev-requirements.txt
--index-url https://pypi.example.com/simple
git+https://example.com/repo.git#egg=thing
importlib-metadata>=6.0; python_version < "3.10"
`

	reqs, err := ParseRequirements(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, reqs, 8)

	// flask>=3.0: name + specifier
	assert.Equal(t, "flask", reqs[0].Name)
	assert.Len(t, reqs[0].Specifier, 1)
	assert.False(t, reqs[0].Opaque)

	// requests[socks,security]==2.31.0: extras + exact pin
	assert.Equal(t, "requests", reqs[1].Name)
	assert.Equal(t, []string{"socks", "security"}, reqs[1].Extras)
	assert.Len(t, reqs[1].Specifier, 1)

	// click: bare name, no specifier
	assert.Equal(t, "click", reqs[2].Name)
	assert.Empty(t, reqs[2].Specifier)

	// autopep8: trailing comment stripped
	assert.Equal(t, "autopep8", reqs[3].Name)
	assert.Equal(t, "autopep8", reqs[3].Raw)

	// -r and --index-url: opaque option lines
	assert.True(t, reqs[4].Opaque)
	assert.Equal(t, "-r dev-requirements.txt", reqs[4].Raw)
	assert.True(t, reqs[5].Opaque)

	// git+ URL: opaque, with the #egg fragment intact
	assert.True(t, reqs[6].Opaque)
	assert.Contains(t, reqs[6].Raw, "#egg=thing")

	// environment marker: dropped from parsing, kept in Raw
	assert.Equal(t, "importlib-metadata", reqs[7].Name)
	assert.Len(t, reqs[7].Specifier, 1)
	assert.Contains(t, reqs[7].Raw, "python_version")
}

// TestParseRequirements_Continuation verifies backslash line joining.
func TestParseRequirements_Continuation(t *testing.T) {
	input := "flask\\\n>=3.0\n"

	reqs, err := ParseRequirements(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, reqs, 1)

	assert.Equal(t, "flask", reqs[0].Name)
	assert.Len(t, reqs[0].Specifier, 1)
}

// TestParseRequirements_TrailingContinuation verifies that a backslash
// on the file's final line does not drop the joined entry.
func TestParseRequirements_TrailingContinuation(t *testing.T) {
	input := "requests\nflask\\\n>=3.0\\"

	reqs, err := ParseRequirements(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	assert.Equal(t, "requests", reqs[0].Name)
	assert.Equal(t, "flask", reqs[1].Name)
	assert.Len(t, reqs[1].Specifier, 1)
}

// TestParseRequirements_Empty verifies that blank and comment-only
// input produces no requirements.
func TestParseRequirements_Empty(t *testing.T) {
	reqs, err := ParseRequirements(strings.NewReader("\n# nothing here\n   \n"))
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

// TestStripComment covers the comment stripping rules: full-line
// comments go, trailing comments need preceding whitespace, and URL
// fragments survive.
func TestStripComment(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"# full line", ""},
		{"   # indented full line", ""},
		{"flask # trailing", "flask"},
		{"flask\t# tab separated", "flask"},
		{"git+https://x/r.git#egg=name", "git+https://x/r.git#egg=name"},
		{"  flask  ", "flask"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripComment(tt.input))
		})
	}
}

// TestParseRequirementsFile verifies the file-based entry point against
// a real temp file.
func TestParseRequirementsFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "requirements.txt", "flask==3.0.2\nclick\n")

	reqs, err := ParseRequirementsFile(path)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, "flask", reqs[0].Name)
	assert.Equal(t, "click", reqs[1].Name)
}

// TestParseRequirementsFile_Missing verifies the missing-file error
// is an os-level not-exist error, matching pip's own failure mode.
func TestParseRequirementsFile_Missing(t *testing.T) {
	_, err := ParseRequirementsFile(t.TempDir() + "/requirements.txt")
	assert.Error(t, err)
}
