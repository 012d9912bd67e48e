package platform

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using actual host detection.
type RealDetector struct{}

// NewDetector creates a new host platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect resolves the host platform. It uses runtime.GOOS and
// runtime.GOARCH for OS and architecture, and gopsutil for Linux
// distribution details.
//
// On Linux, if gopsutil fails to identify the distribution, the Distro
// field is left nil and detection still succeeds (graceful fallback).
// Asset resolution falls back to the distro-agnostic archive in that case.
func (d *RealDetector) Detect(ctx context.Context) (Info, error) {
	os, err := ParseOS(runtime.GOOS)
	if err != nil {
		return Info{}, fmt.Errorf("host detection failed: %w", err)
	}

	arch, err := ParseArch(runtime.GOARCH)
	if err != nil {
		return Info{}, fmt.Errorf("host detection failed: %w", err)
	}

	info := Info{OS: os, Arch: arch}

	if os == OSLinux {
		platform, _, version, err := host.PlatformInformationWithContext(ctx)
		if err != nil {
			// Cancellation is a hard failure; detection failures are not.
			if ctx.Err() != nil {
				return Info{}, fmt.Errorf("host detection cancelled: %w", ctx.Err())
			}
			return info, nil
		}

		platform = strings.ToLower(strings.TrimSpace(platform))
		if platform != "" {
			info.Distro = &Distro{
				ID:      platform,
				Version: strings.TrimSpace(version),
			}
		}
	}

	return info, nil
}
