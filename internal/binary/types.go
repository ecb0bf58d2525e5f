package binary

import (
	"errors"
	"fmt"
)

// Architecture is the instruction-set width a Windows binary targets.
type Architecture int

const (
	// X86_32 is a PE32 image.
	X86_32 Architecture = iota + 1
	// X86_64 is a PE32+ image.
	X86_64
)

// Bits returns 32 or 64, or 0 for an unknown value.
func (a Architecture) Bits() int {
	switch a {
	case X86_32:
		return 32
	case X86_64:
		return 64
	default:
		return 0
	}
}

// String returns the string representation of the architecture.
func (a Architecture) String() string {
	switch a {
	case X86_32:
		return "x86_32"
	case X86_64:
		return "x86_64"
	default:
		return "unknown"
	}
}

// ErrInvalidExecutable marks a binary whose header could not be interpreted.
var ErrInvalidExecutable = errors.New("invalid executable")

// InvalidExecutableError reports where header parsing failed.
type InvalidExecutableError struct {
	Path   string
	Reason string
	Got    []byte // bytes read at the failing position, may be shorter than expected
}

func (e *InvalidExecutableError) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("invalid exe file %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("invalid exe file %s: %s (got % x)", e.Path, e.Reason, e.Got)
}

// Unwrap returns ErrInvalidExecutable so callers can use errors.Is.
func (e *InvalidExecutableError) Unwrap() error {
	return ErrInvalidExecutable
}
