package redist

import (
	"errors"
	"fmt"

	"github.com/ZebulonRouseFrantzich/redist/internal/platform"
)

// ErrDeploymentToolMissing indicates the Qt deployment tool is not on PATH.
var ErrDeploymentToolMissing = errors.New("deployment tool missing")

// DeploymentToolMissingError names the missing tool and how to fix PATH.
type DeploymentToolMissingError struct {
	Tool string
	Hint string
}

func (e *DeploymentToolMissingError) Error() string {
	return fmt.Sprintf("%s not found in PATH", e.Tool)
}

// Unwrap returns ErrDeploymentToolMissing.
func (e *DeploymentToolMissingError) Unwrap() error {
	return ErrDeploymentToolMissing
}

// PathHint returns an example command putting a Qt installation on PATH.
func PathHint(p platform.Platform) string {
	switch p {
	case platform.Windows:
		return `set PATH=c:\Qt\5.12.0\mingw73_64\bin;%PATH%`
	case platform.MacOS:
		return "export PATH=/Users/user/Qt/5.10.0/clang_64/bin:$PATH"
	case platform.Linux:
		return "export PATH=/home/user/Qt/5.10.0/gcc_64/bin:$PATH"
	default:
		return ""
	}
}
