// Package version parses and renders release version strings of the form
// MAJOR.MINOR.PATCH[-LABEL].
//
// Only parsing and rendering are supported. There is no
// precedence or comparison: the label is an opaque tag such as "alpha2".
package version

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrInvalidVersionString is returned for strings that are not MAJOR.MINOR.PATCH[-LABEL].
var ErrInvalidVersionString = errors.New("invalid version string")

// Usage describes the accepted format for help output.
const Usage = "MAJOR.MINOR.PATCH[-CODENAME]"

// Spec is a parsed release version.
type Spec struct {
	Major uint64
	Minor uint64
	Patch uint64
	Label string // codename, empty when absent
}

// ParseError describes why a version string was rejected.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrInvalidVersionString, e.Input, e.Reason)
}

// Unwrap returns ErrInvalidVersionString so callers can use errors.Is.
func (e *ParseError) Unwrap() error {
	return ErrInvalidVersionString
}

// Parse parses raw into a Spec.
//
// raw must have exactly three dot separated components. The third may carry a
// label after its first dash; the label must be non-empty and contain no
// further dash. Numeric components must be canonical non-negative integers
// (no sign, no leading zeros) so that Parse(s).String() == s.
func Parse(raw string) (Spec, error) {
	parts := strings.Split(raw, ".")
	switch {
	case len(parts) < 3:
		return Spec{}, &ParseError{Input: raw, Reason: "expected three dot-separated components, got fewer"}
	case len(parts) > 3:
		return Spec{}, &ParseError{Input: raw, Reason: "expected three dot-separated components, got more"}
	}

	patch, label, hasLabel := strings.Cut(parts[2], "-")
	if hasLabel {
		if label == "" {
			return Spec{}, &ParseError{Input: raw, Reason: "empty codename after '-'"}
		}
		if strings.Contains(label, "-") {
			return Spec{}, &ParseError{Input: raw, Reason: "codename must not contain '-'"}
		}
	}

	core := parts[0] + "." + parts[1] + "." + patch
	v, err := semver.StrictNewVersion(core)
	if err != nil {
		return Spec{}, &ParseError{Input: raw, Reason: fmt.Sprintf("components must be non-negative integers (%v)", err)}
	}
	// StrictNewVersion also accepts its own prerelease/metadata suffixes on the
	// patch; anything beyond the bare core is not ours to interpret.
	if v.Prerelease() != "" || v.Metadata() != "" {
		return Spec{}, &ParseError{Input: raw, Reason: "unexpected suffix on patch component"}
	}

	return Spec{
		Major: v.Major(),
		Minor: v.Minor(),
		Patch: v.Patch(),
		Label: label,
	}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(raw string) Spec {
	s, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// String renders the canonical form: "M.N.P" or "M.N.P-LABEL".
func (s Spec) String() string {
	v := fmt.Sprintf("%d.%d.%d", s.Major, s.Minor, s.Patch)
	if s.Label != "" {
		v += "-" + s.Label
	}
	return v
}
