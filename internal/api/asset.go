package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/WasmEdge/wasmedgeup/internal/platform"
)

// DefaultReleaseBase is the URL prefix under which release assets and
// checksum manifests are published.
const DefaultReleaseBase = "https://github.com/WasmEdge/WasmEdge/releases/download"

// checksumManifestName is the manifest file published alongside each
// release's assets, mapping asset filename to SHA256 digest.
const checksumManifestName = "checksums.txt"

// Asset identifies the release archive for one (version, OS, arch) triple.
// It is constructed once per install run and never modified.
type Asset struct {
	// Filename is the archive filename as published in the release.
	Filename string
	// InstallName is the top-level directory inside the archive. It also
	// names the staging workspace for the install run.
	InstallName string
	// URL is the full download URL for the archive.
	URL string
	// ChecksumURL is the full URL of the release's checksum manifest.
	ChecksumURL string
}

// NewAsset derives the release asset for a version and target platform.
//
// Naming patterns:
//   - linux:   WasmEdge-{version}-manylinux2014_{x86_64|aarch64}.tar.gz
//     (Ubuntu >= 20.04 hosts get WasmEdge-{version}-ubuntu20.04_{arch}.tar.gz)
//   - darwin:  WasmEdge-{version}-darwin_{x86_64|arm64}.tar.gz
//   - windows: WasmEdge-{version}-windows.zip (x86_64 only)
//
// Unsupported (OS, arch) combinations return an AssetResolutionError.
func NewAsset(version *semver.Version, info platform.Info) (*Asset, error) {
	v := version.String()

	var filename, installName string
	switch info.OS {
	case platform.OSLinux:
		arch, err := linuxArchName(info.Arch)
		if err != nil {
			return nil, err
		}
		filename = fmt.Sprintf("WasmEdge-%s-%s_%s.tar.gz", v, linuxFlavor(info.Distro), arch)
		installName = fmt.Sprintf("WasmEdge-%s-Linux", v)

	case platform.OSDarwin:
		arch, err := darwinArchName(info.Arch)
		if err != nil {
			return nil, err
		}
		filename = fmt.Sprintf("WasmEdge-%s-darwin_%s.tar.gz", v, arch)
		installName = fmt.Sprintf("WasmEdge-%s-Darwin", v)

	case platform.OSWindows:
		if info.Arch != platform.ArchX8664 {
			return nil, &AssetResolutionError{OS: info.OS.String(), Arch: info.Arch.String()}
		}
		filename = fmt.Sprintf("WasmEdge-%s-windows.zip", v)
		installName = fmt.Sprintf("WasmEdge-%s-Windows", v)

	default:
		return nil, &AssetResolutionError{OS: info.OS.String(), Arch: info.Arch.String()}
	}

	return &Asset{
		Filename:    filename,
		InstallName: installName,
		URL:         fmt.Sprintf("%s/%s/%s", DefaultReleaseBase, v, filename),
		ChecksumURL: fmt.Sprintf("%s/%s/%s", DefaultReleaseBase, v, checksumManifestName),
	}, nil
}

// linuxFlavor selects the Linux archive flavor. Releases publish a
// distro-agnostic manylinux2014 build and an ubuntu20.04 build; the latter
// is preferred on Ubuntu 20.04 or newer.
func linuxFlavor(distro *platform.Distro) string {
	if distro != nil && distro.ID == "ubuntu" && ubuntuMajor(distro.Version) >= 20 {
		return "ubuntu20.04"
	}
	return "manylinux2014"
}

// ubuntuMajor extracts the major release number from an Ubuntu version
// string such as "22.04". Returns 0 when it cannot be determined.
func ubuntuMajor(version string) int {
	major, _, _ := strings.Cut(version, ".")
	n, err := strconv.Atoi(major)
	if err != nil {
		return 0
	}
	return n
}

// linuxArchName maps a TargetArch to the Linux archive naming.
func linuxArchName(arch platform.TargetArch) (string, error) {
	switch arch {
	case platform.ArchX8664:
		return "x86_64", nil
	case platform.ArchAarch64:
		return "aarch64", nil
	default:
		return "", &AssetResolutionError{OS: platform.OSLinux.String(), Arch: arch.String()}
	}
}

// darwinArchName maps a TargetArch to the macOS archive naming.
// Note: darwin archives use "arm64" where Linux uses "aarch64".
func darwinArchName(arch platform.TargetArch) (string, error) {
	switch arch {
	case platform.ArchX8664:
		return "x86_64", nil
	case platform.ArchAarch64:
		return "arm64", nil
	default:
		return "", &AssetResolutionError{OS: platform.OSDarwin.String(), Arch: arch.String()}
	}
}
