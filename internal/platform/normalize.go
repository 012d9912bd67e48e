package platform

import "strings"

// ParseOS converts a user-supplied OS token to a TargetOS.
// Common aliases are accepted and folded to the canonical value.
func ParseOS(input string) (TargetOS, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "linux":
		return OSLinux, nil
	case "darwin", "macos", "osx":
		return OSDarwin, nil
	case "windows", "win":
		return OSWindows, nil
	default:
		return "", &UnsupportedOSError{Input: input}
	}
}

// ParseArch converts a user-supplied architecture token to a TargetArch.
// Both the release naming (x86_64, aarch64) and the Go naming (amd64,
// arm64) are accepted.
func ParseArch(input string) (TargetArch, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "x86_64", "amd64":
		return ArchX8664, nil
	case "aarch64", "arm64":
		return ArchAarch64, nil
	default:
		return "", &UnsupportedArchError{Input: input}
	}
}
