package project

import (
	"regexp"
	"strings"

	"github.com/datawire/ocibuild/pkg/python/pep440"

	"github.com/mahirth/venvup/internal/model"
)

// DriftState classifies a declared requirement against the installed
// package set.
type DriftState string

const (
	// DriftSatisfied means the package is installed and its version
	// matches the declared specifier (or no specifier was declared).
	DriftSatisfied DriftState = "satisfied"

	// DriftMissing means no installed package matches the declared name.
	DriftMissing DriftState = "missing"

	// DriftMismatch means the package is installed but its version does
	// not satisfy the declared specifier.
	DriftMismatch DriftState = "mismatch"

	// DriftUnknown means the entry could not be checked (opaque entries,
	// or an installed version that does not parse as PEP 440).
	DriftUnknown DriftState = "unknown"
)

// String returns the string representation of DriftState.
func (s DriftState) String() string {
	return string(s)
}

// Drift pairs a declared requirement with its state relative to an
// installed package set.
type Drift struct {
	// Requirement is the declared requirement being checked.
	Requirement Requirement

	// Installed is the matching installed package, or nil when missing.
	Installed *model.Package

	// State is the classification result.
	State DriftState
}

// normalizeRun matches the character runs that PEP 503 collapses when
// normalizing distribution names.
var normalizeRun = regexp.MustCompile(`[-_.]+`)

// NormalizeName applies PEP 503 name normalization: lowercase, with any
// run of ".", "-", "_" replaced by a single "-". Under this rule
// "Flask_Login", "flask.login", and "flask-login" all name the same
// distribution.
func NormalizeName(name string) string {
	return normalizeRun.ReplaceAllString(strings.ToLower(name), "-")
}

// CheckDrift classifies every declared requirement against the installed
// package set. Opaque entries are reported as DriftUnknown rather than
// skipped, so the output accounts for every line of the requirements file.
func CheckDrift(reqs []Requirement, installed []model.Package) []Drift {
	// Index installed packages by normalized name for O(1) lookup.
	byName := make(map[string]model.Package, len(installed))
	for _, pkg := range installed {
		byName[NormalizeName(pkg.Name)] = pkg
	}

	drifts := make([]Drift, 0, len(reqs))
	for _, req := range reqs {
		drifts = append(drifts, checkOne(req, byName))
	}
	return drifts
}

// checkOne classifies a single requirement.
func checkOne(req Requirement, byName map[string]model.Package) Drift {
	if req.Opaque || req.Name == "" {
		return Drift{Requirement: req, State: DriftUnknown}
	}

	pkg, ok := byName[NormalizeName(req.Name)]
	if !ok {
		return Drift{Requirement: req, State: DriftMissing}
	}

	// Installed with no version constraint declared: satisfied.
	if len(req.Specifier) == 0 {
		return Drift{Requirement: req, Installed: &pkg, State: DriftSatisfied}
	}

	version, err := pep440.ParseVersion(pkg.Version)
	if err != nil {
		// pip accepted it, so the version is legacy/non-PEP 440;
		// there is nothing meaningful to compare against.
		return Drift{Requirement: req, Installed: &pkg, State: DriftUnknown}
	}

	if req.Specifier.Match(*version) {
		return Drift{Requirement: req, Installed: &pkg, State: DriftSatisfied}
	}
	return Drift{Requirement: req, Installed: &pkg, State: DriftMismatch}
}
