package platform

import (
	"fmt"
	"strings"
)

// normalizePlatform maps a GOOS value to a supported Platform.
func normalizePlatform(goos string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(goos)) {
	case "windows":
		return Windows, nil
	case "linux":
		return Linux, nil
	case "darwin", "macos":
		return MacOS, nil
	default:
		return "", fmt.Errorf("unknown platform %s", goos)
	}
}

// Parse converts a user supplied platform name ("windows", "linux",
// "darwin" or "macos") into a Platform.
func Parse(name string) (Platform, error) {
	return normalizePlatform(name)
}

// normalizeArch converts GOARCH aliases to a single spelling.
func normalizeArch(arch string) string {
	switch arch {
	case "amd64", "x86_64":
		return "amd64"
	case "arm64", "aarch64":
		return "arm64"
	case "386", "i386", "i686":
		return "386"
	default:
		return arch
	}
}

// normalizeHost trims and lowercases host identifiers for consistency.
func normalizeHost(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
