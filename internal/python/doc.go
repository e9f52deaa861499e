// Package python provides Python interpreter and virtual environment
// operations for the venvup CLI.
//
// All operations are performed via os/exec calls to the python and pip
// binaries, rather than reimplementing any packaging logic in Go:
//   - The venv module and pip own the environment's on-disk layout and
//     installed package set; this package never writes inside the
//     environment directory itself.
//   - Invoking the real tools produces the exact same behavior and
//     diagnostics the user sees in their terminal.
//
// Activation is modeled as process-environment construction rather than
// shell sourcing: an Env value carries the VIRTUAL_ENV/PATH mutations that
// `source venv/bin/activate` would apply, and every subsequent pip
// invocation runs with that environment so installs target the venv.
package python
