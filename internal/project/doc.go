// Package project inspects the Python project in the working directory.
//
// It detects packaging manifests (setup.py, setup.cfg, pyproject.toml),
// parses requirements.txt declarations, and computes requirement drift —
// which declared requirements are satisfied, missing, or version-mismatched
// against an environment's installed package set.
//
// Version and specifier semantics follow PEP 440 via the
// github.com/datawire/ocibuild/pkg/python/pep440 implementation; package
// name comparison follows PEP 503 normalization (case-insensitive, with
// runs of ".", "-", "_" collapsed to a single "-").
//
// This package only reads project files. It never resolves dependencies
// or talks to an index — drift reporting is informational, and all actual
// installation goes through pip.
package project
