package project

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahirth/venvup/internal/model"
)

// TestNormalizeName covers PEP 503 name normalization: lowercase, runs
// of separator characters collapsed to a single hyphen.
func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Flask", "flask"},
		{"Flask_Login", "flask-login"},
		{"flask.login", "flask-login"},
		{"flask--login", "flask-login"},
		{"zope.interface", "zope-interface"},
		{"A_._-b", "a-b"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}

// parseReqs is a test helper that parses requirement lines from a string.
func parseReqs(t *testing.T, lines string) []Requirement {
	t.Helper()

	reqs, err := ParseRequirements(strings.NewReader(lines))
	require.NoError(t, err)
	return reqs
}

// TestCheckDrift covers the four drift classifications against a fixed
// installed set.
func TestCheckDrift(t *testing.T) {
	installed := []model.Package{
		{Name: "Flask", Version: "3.0.2"},
		{Name: "requests", Version: "2.31.0"},
		{Name: "legacy-pkg", Version: "2004d"}, // non-PEP 440 version
	}

	reqs := parseReqs(t, `
flask>=3.0
requests==2.30.0
click
legacy-pkg>=1.0
-r dev.txt
`)

	drifts := CheckDrift(reqs, installed)
	require.Len(t, drifts, 5)

	// flask>=3.0 vs installed 3.0.2: satisfied (name match is
	// case-insensitive per PEP 503).
	assert.Equal(t, DriftSatisfied, drifts[0].State)
	require.NotNil(t, drifts[0].Installed)
	assert.Equal(t, "3.0.2", drifts[0].Installed.Version)

	// requests==2.30.0 vs installed 2.31.0: mismatch.
	assert.Equal(t, DriftMismatch, drifts[1].State)

	// click: not installed at all.
	assert.Equal(t, DriftMissing, drifts[2].State)
	assert.Nil(t, drifts[2].Installed)

	// legacy-pkg: installed version does not parse as PEP 440, so the
	// specifier cannot be evaluated.
	assert.Equal(t, DriftUnknown, drifts[3].State)

	// -r dev.txt: opaque entry, unchecked.
	assert.Equal(t, DriftUnknown, drifts[4].State)
}

// TestCheckDrift_NoSpecifier verifies that a bare name is satisfied by
// any installed version.
func TestCheckDrift_NoSpecifier(t *testing.T) {
	installed := []model.Package{{Name: "click", Version: "8.1.7"}}

	drifts := CheckDrift(parseReqs(t, "click\n"), installed)
	require.Len(t, drifts, 1)
	assert.Equal(t, DriftSatisfied, drifts[0].State)
}

// TestCheckDrift_EmptyInputs verifies behavior with nothing declared or
// nothing installed.
func TestCheckDrift_EmptyInputs(t *testing.T) {
	assert.Empty(t, CheckDrift(nil, []model.Package{{Name: "flask", Version: "3.0.2"}}))

	drifts := CheckDrift(parseReqs(t, "flask\n"), nil)
	require.Len(t, drifts, 1)
	assert.Equal(t, DriftMissing, drifts[0].State)
}
