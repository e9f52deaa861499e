package project

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/datawire/ocibuild/pkg/python/pep440"
)

// Requirement represents one entry of a requirements declaration file.
//
// Plain entries ("flask>=3.0", "requests[socks]==2.31.0") are parsed
// into name, extras, and a PEP 440 specifier. Option lines ("-r dev.txt",
// "--index-url ..."), direct references, and URL requirements are kept
// opaque: pip understands them, this tool does not need to.
type Requirement struct {
	// Raw is the original line, with comments and surrounding
	// whitespace removed.
	Raw string

	// Name is the declared distribution name. Empty for opaque entries.
	Name string

	// Extras holds the requested extras, e.g. ["socks"] for
	// "requests[socks]". Nil when no extras are requested.
	Extras []string

	// Specifier is the parsed PEP 440 version constraint. Nil when the
	// entry has no version constraint or is opaque.
	Specifier pep440.Specifier

	// Opaque marks entries this tool passes through without
	// interpretation (pip options, URLs, direct references).
	Opaque bool
}

// String returns the requirement's raw form.
func (r Requirement) String() string {
	return r.Raw
}

// ParseRequirementsFile reads and parses the requirements file at path.
func ParseRequirementsFile(path string) ([]Requirement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	reqs, err := ParseRequirements(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reqs, nil
}

// ParseRequirements parses requirements declarations from r, one per line.
//
// Handled syntax (the subset pip's requirements file format defines):
//   - blank lines and full-line comments are skipped
//   - trailing comments (whitespace followed by "#") are stripped
//   - line continuations with a trailing backslash are joined
//   - environment markers (after ";") are dropped from parsing but kept
//     in Raw, since marker evaluation is the interpreter's job
func ParseRequirements(r io.Reader) ([]Requirement, error) {
	var reqs []Requirement

	scanner := bufio.NewScanner(r)
	var continued strings.Builder
	for scanner.Scan() {
		line := scanner.Text()

		// Join backslash-continued lines before any other processing,
		// matching pip's own line joining.
		if strings.HasSuffix(line, "\\") {
			continued.WriteString(strings.TrimSuffix(line, "\\"))
			continue
		}
		if continued.Len() > 0 {
			continued.WriteString(line)
			line = continued.String()
			continued.Reset()
		}

		line = stripComment(line)
		if line == "" {
			continue
		}

		reqs = append(reqs, parseRequirementLine(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// A trailing backslash on the file's last line leaves a joined entry
	// pending with nothing left to append.
	if continued.Len() > 0 {
		if line := stripComment(continued.String()); line != "" {
			reqs = append(reqs, parseRequirementLine(line))
		}
	}
	return reqs, nil
}

// stripComment removes a full-line or trailing comment and surrounding
// whitespace. Per pip's format, a trailing "#" only starts a comment
// when preceded by whitespace, so URL fragments like "#egg=name" survive.
func stripComment(line string) string {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "#") {
		return ""
	}
	if idx := strings.Index(line, " #"); idx >= 0 {
		line = line[:idx]
	}
	if idx := strings.Index(line, "\t#"); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}

// parseRequirementLine parses a single cleaned requirements line.
func parseRequirementLine(line string) Requirement {
	req := Requirement{Raw: line}

	// Option lines (-r, -e, --index-url, ...) and URL/path requirements
	// are opaque: pip interprets them at install time.
	if strings.HasPrefix(line, "-") || isURLRequirement(line) {
		req.Opaque = true
		return req
	}

	// Drop the environment marker before splitting name from specifier.
	spec := line
	if idx := strings.Index(spec, ";"); idx >= 0 {
		spec = strings.TrimSpace(spec[:idx])
	}

	// The name runs up to the first extras bracket, comparison operator,
	// or whitespace.
	nameEnd := len(spec)
	for i, c := range spec {
		if c == '[' || c == '<' || c == '>' || c == '=' || c == '!' || c == '~' || c == ' ' || c == '\t' {
			nameEnd = i
			break
		}
	}
	req.Name = spec[:nameEnd]
	rest := strings.TrimSpace(spec[nameEnd:])

	// Extras: "[socks,security]" immediately after the name.
	if strings.HasPrefix(rest, "[") {
		if end := strings.Index(rest, "]"); end >= 0 {
			for _, extra := range strings.Split(rest[1:end], ",") {
				extra = strings.TrimSpace(extra)
				if extra != "" {
					req.Extras = append(req.Extras, extra)
				}
			}
			rest = strings.TrimSpace(rest[end+1:])
		}
	}

	// Whatever remains is the version specifier. Lines like a bare
	// "flask" have none.
	if rest != "" {
		parsed, err := pep440.ParseSpecifier(rest)
		if err == nil {
			req.Specifier = parsed
		}
		// Unparseable specifiers leave Specifier nil; drift reporting
		// then treats presence of the package as satisfied.
	}

	return req
}

// isURLRequirement reports whether the line is a URL or local path
// requirement rather than a named one.
func isURLRequirement(line string) bool {
	for _, prefix := range []string{"http://", "https://", "git+", "file://", "./", "../", "/"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return line == "."
}
