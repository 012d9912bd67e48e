// Package platform provides target platform detection for release asset
// selection. It detects OS, architecture, and Linux distribution details,
// using gopsutil for distribution detection with graceful fallback when
// detection fails. Users can override detection with explicit --os and
// --arch values, which are parsed and validated here.
package platform

import (
	"context"
	"fmt"
)

// TargetOS represents an operating system a release asset is published for.
type TargetOS string

const (
	// OSLinux represents Linux targets
	OSLinux TargetOS = "linux"
	// OSDarwin represents macOS targets
	OSDarwin TargetOS = "darwin"
	// OSWindows represents Windows targets
	OSWindows TargetOS = "windows"
)

// String returns the string representation of the target OS.
func (o TargetOS) String() string {
	return string(o)
}

// IsValid returns true if the target OS is supported.
func (o TargetOS) IsValid() bool {
	switch o {
	case OSLinux, OSDarwin, OSWindows:
		return true
	default:
		return false
	}
}

// TargetArch represents a CPU architecture a release asset is published for.
type TargetArch string

const (
	// ArchX8664 represents the x86-64 architecture
	ArchX8664 TargetArch = "x86_64"
	// ArchAarch64 represents the 64-bit ARM architecture
	ArchAarch64 TargetArch = "aarch64"
)

// String returns the string representation of the target architecture.
func (a TargetArch) String() string {
	return string(a)
}

// IsValid returns true if the target architecture is supported.
func (a TargetArch) IsValid() bool {
	switch a {
	case ArchX8664, ArchAarch64:
		return true
	default:
		return false
	}
}

// Distro contains Linux distribution information.
// This is nil on non-Linux platforms and when detection fails.
type Distro struct {
	ID      string // distro ID (e.g., "ubuntu")
	Version string // distro version (e.g., "22.04")
}

// Info contains the resolved target platform for one install run.
// OS and Arch are always set; Distro is best-effort and Linux-only.
type Info struct {
	OS     TargetOS
	Arch   TargetArch
	Distro *Distro
}

// IsLinux returns true if the target OS is Linux.
func (i Info) IsLinux() bool {
	return i.OS == OSLinux
}

// IsWindows returns true if the target OS is Windows.
func (i Info) IsWindows() bool {
	return i.OS == OSWindows
}

// UnsupportedOSError indicates an OS token outside the supported set.
type UnsupportedOSError struct {
	Input string
}

func (e *UnsupportedOSError) Error() string {
	return fmt.Sprintf("unsupported OS: %s (supported: linux, darwin, windows)", e.Input)
}

// UnsupportedArchError indicates an architecture token outside the supported set.
type UnsupportedArchError struct {
	Input string
}

func (e *UnsupportedArchError) Error() string {
	return fmt.Sprintf("unsupported architecture: %s (supported: x86_64, aarch64)", e.Input)
}

// Detector is the interface for host platform detection.
type Detector interface {
	Detect(ctx context.Context) (Info, error)
}
