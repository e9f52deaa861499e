// Package snapshot implements the venvup lockfile: a YAML record of the
// virtual environment's installed package set at a point in time.
//
// The freeze command writes the lockfile from `pip list` output, and the
// status command diffs the current environment against it to report what
// has drifted since the snapshot was taken. The lockfile is informational
// only — it is never fed back into pip. (Pinning and resolution stay
// pip's job; this tool is not a package manager.)
package snapshot

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mahirth/venvup/internal/model"
	"github.com/mahirth/venvup/internal/project"
)

// DefaultLockfileName is the fixed lockfile location, relative to the
// working directory.
const DefaultLockfileName = "venvup.lock.yml"

// Lockfile is the serialized snapshot schema.
type Lockfile struct {
	// GeneratedAt is the UTC timestamp the snapshot was taken.
	GeneratedAt time.Time `yaml:"generatedAt"`

	// Python is the interpreter version of the environment the snapshot
	// was taken from, e.g. "3.12.1". Empty when the version could not
	// be determined.
	Python string `yaml:"python,omitempty"`

	// Packages lists the installed distributions, sorted by normalized
	// name for stable, diff-friendly output.
	Packages []LockedPackage `yaml:"packages"`
}

// LockedPackage is one pinned distribution in the lockfile.
type LockedPackage struct {
	// Name is the distribution name as pip reports it.
	Name string `yaml:"name"`

	// Version is the exact installed version.
	Version string `yaml:"version"`
}

// Generate builds a Lockfile from an installed package set.
// Packages are sorted by PEP 503 normalized name, so regenerating a
// snapshot from the same environment always produces identical output.
func Generate(packages []model.Package, pythonVersion string) *Lockfile {
	locked := make([]LockedPackage, 0, len(packages))
	for _, pkg := range packages {
		locked = append(locked, LockedPackage{Name: pkg.Name, Version: pkg.Version})
	}
	sort.Slice(locked, func(i, j int) bool {
		return project.NormalizeName(locked[i].Name) < project.NormalizeName(locked[j].Name)
	})

	return &Lockfile{
		GeneratedAt: time.Now().UTC(),
		Python:      pythonVersion,
		Packages:    locked,
	}
}

// Write serializes the lockfile as YAML to path, replacing any
// existing file.
func (l *Lockfile) Write(path string) error {
	data, err := yaml.Marshal(l)
	if err != nil {
		return fmt.Errorf("failed to serialize lockfile: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write lockfile %s: %w", path, err)
	}
	return nil
}

// Load reads and parses the lockfile at path. A missing file is
// reported via os.IsNotExist on the returned error.
func Load(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lock Lockfile
	if err := yaml.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("failed to parse lockfile %s: %w", path, err)
	}
	return &lock, nil
}

// ChangeKind classifies one entry of a snapshot diff.
type ChangeKind string

const (
	// ChangeAdded means the package is installed now but absent from
	// the snapshot.
	ChangeAdded ChangeKind = "added"

	// ChangeRemoved means the package is in the snapshot but no longer
	// installed.
	ChangeRemoved ChangeKind = "removed"

	// ChangeUpdated means the package is present in both with
	// different versions.
	ChangeUpdated ChangeKind = "updated"
)

// Change describes one difference between a lockfile and the current
// installed package set.
type Change struct {
	// Name is the distribution name (as pip reports it on the
	// installed side, or as recorded in the lockfile for removals).
	Name string

	// LockedVersion is the version recorded in the lockfile.
	// Empty for added packages.
	LockedVersion string

	// InstalledVersion is the currently installed version.
	// Empty for removed packages.
	InstalledVersion string

	// Kind classifies the change.
	Kind ChangeKind
}

// String returns a one-line human-readable form of the change.
func (c Change) String() string {
	switch c.Kind {
	case ChangeAdded:
		return fmt.Sprintf("+ %s %s", c.Name, c.InstalledVersion)
	case ChangeRemoved:
		return fmt.Sprintf("- %s %s", c.Name, c.LockedVersion)
	case ChangeUpdated:
		return fmt.Sprintf("~ %s %s -> %s", c.Name, c.LockedVersion, c.InstalledVersion)
	default:
		return c.Name
	}
}

// Diff compares the lockfile against the current installed package set
// and returns every difference, sorted by normalized package name.
// Name matching uses PEP 503 normalization on both sides.
func Diff(lock *Lockfile, installed []model.Package) []Change {
	lockedByName := make(map[string]LockedPackage, len(lock.Packages))
	for _, pkg := range lock.Packages {
		lockedByName[project.NormalizeName(pkg.Name)] = pkg
	}

	var changes []Change
	seen := make(map[string]bool, len(installed))
	for _, pkg := range installed {
		key := project.NormalizeName(pkg.Name)
		seen[key] = true

		locked, ok := lockedByName[key]
		if !ok {
			changes = append(changes, Change{
				Name:             pkg.Name,
				InstalledVersion: pkg.Version,
				Kind:             ChangeAdded,
			})
			continue
		}
		if locked.Version != pkg.Version {
			changes = append(changes, Change{
				Name:             pkg.Name,
				LockedVersion:    locked.Version,
				InstalledVersion: pkg.Version,
				Kind:             ChangeUpdated,
			})
		}
	}

	for _, pkg := range lock.Packages {
		if !seen[project.NormalizeName(pkg.Name)] {
			changes = append(changes, Change{
				Name:          pkg.Name,
				LockedVersion: pkg.Version,
				Kind:          ChangeRemoved,
			})
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		return project.NormalizeName(changes[i].Name) < project.NormalizeName(changes[j].Name)
	})
	return changes
}
