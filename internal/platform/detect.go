package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using the running process's platform.
type RealDetector struct {
	goos   string
	goarch string
}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{goos: runtime.GOOS, goarch: runtime.GOARCH}
}

// Detect performs platform detection and returns platform information.
// OS and architecture come from the Go runtime; host details come from
// gopsutil. A gopsutil failure is not fatal: host fields stay empty and
// detection continues, since packaging only branches on Platform.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	p, err := normalizePlatform(d.goos)
	if err != nil {
		return nil, fmt.Errorf("platform detection failed: %w", err)
	}

	info := &Info{
		Platform: p,
		Arch:     normalizeArch(d.goarch),
		ArchRaw:  d.goarch,
	}

	hostInfo, err := host.InfoWithContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		return info, nil
	}

	info.Host = normalizeHost(hostInfo.Platform)
	info.HostVersion = normalizeHost(hostInfo.PlatformVersion)
	info.KernelArch = hostInfo.KernelArch

	return info, nil
}
