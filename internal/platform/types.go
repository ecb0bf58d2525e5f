// Package platform resolves the host platform once per run and exposes it as an
// immutable value.
//
// The packaging pipeline never consults runtime.GOOS directly. Instead the CLI
// detects the platform at startup and passes the resulting Info to every
// component that needs it, which keeps the Windows and macOS code paths
// testable on any host. Host details (distribution, OS version, kernel
// architecture) come from gopsutil and are informational only.
package platform

import (
	"context"
	"fmt"
)

// Platform identifies one of the supported packaging hosts.
type Platform string

const (
	Windows Platform = "windows"
	Linux   Platform = "linux"
	MacOS   Platform = "darwin"
)

// String returns the human readable platform name.
func (p Platform) String() string {
	switch p {
	case Windows:
		return "Windows"
	case Linux:
		return "Linux"
	case MacOS:
		return "macOS"
	default:
		return fmt.Sprintf("unknown(%s)", string(p))
	}
}

// Valid reports whether p is one of the supported platforms.
func (p Platform) Valid() bool {
	switch p {
	case Windows, Linux, MacOS:
		return true
	}
	return false
}

// Info contains platform detection information.
type Info struct {
	Platform    Platform
	Arch        string // "amd64", "arm64", "386" (normalized)
	ArchRaw     string // original GOARCH
	Host        string // distro or product name from gopsutil (e.g. "ubuntu", "Microsoft Windows 11 Pro")
	HostVersion string // e.g. "22.04", "14.4.1"
	KernelArch  string // e.g. "x86_64", "arm64"
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.Platform == Windows
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.Platform == MacOS
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.Platform == Linux
}

// Describe returns a one-line summary suitable for logs.
func (i *Info) Describe() string {
	s := fmt.Sprintf("%s/%s", i.Platform, i.Arch)
	if i.Host != "" {
		s += " (" + i.Host
		if i.HostVersion != "" {
			s += " " + i.HostVersion
		}
		s += ")"
	}
	return s
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}

// Static is a Detector that always returns the same Info.
// It lets callers force a platform (tests, cross-host dry runs).
type Static struct {
	Info *Info
}

// Detect returns the configured Info.
func (s Static) Detect(ctx context.Context) (*Info, error) {
	if s.Info == nil {
		return nil, fmt.Errorf("static detector has no platform info")
	}
	return s.Info, nil
}
