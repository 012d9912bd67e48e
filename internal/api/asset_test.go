package api

import (
	"errors"
	"testing"

	"github.com/Masterminds/semver/v3"

	"github.com/WasmEdge/wasmedgeup/internal/platform"
)

func TestNewAsset(t *testing.T) {
	tests := []struct {
		name            string
		version         string
		info            platform.Info
		wantFilename    string
		wantInstallName string
		wantErr         bool
	}{
		{
			name:            "linux_x86_64",
			version:         "0.14.1",
			info:            platform.Info{OS: platform.OSLinux, Arch: platform.ArchX8664},
			wantFilename:    "WasmEdge-0.14.1-manylinux2014_x86_64.tar.gz",
			wantInstallName: "WasmEdge-0.14.1-Linux",
		},
		{
			name:            "linux_aarch64",
			version:         "0.14.1",
			info:            platform.Info{OS: platform.OSLinux, Arch: platform.ArchAarch64},
			wantFilename:    "WasmEdge-0.14.1-manylinux2014_aarch64.tar.gz",
			wantInstallName: "WasmEdge-0.14.1-Linux",
		},
		{
			name:    "linux_ubuntu_22_prefers_ubuntu_build",
			version: "0.14.1",
			info: platform.Info{
				OS:     platform.OSLinux,
				Arch:   platform.ArchX8664,
				Distro: &platform.Distro{ID: "ubuntu", Version: "22.04"},
			},
			wantFilename:    "WasmEdge-0.14.1-ubuntu20.04_x86_64.tar.gz",
			wantInstallName: "WasmEdge-0.14.1-Linux",
		},
		{
			name:    "linux_old_ubuntu_falls_back_to_manylinux",
			version: "0.14.1",
			info: platform.Info{
				OS:     platform.OSLinux,
				Arch:   platform.ArchX8664,
				Distro: &platform.Distro{ID: "ubuntu", Version: "18.04"},
			},
			wantFilename:    "WasmEdge-0.14.1-manylinux2014_x86_64.tar.gz",
			wantInstallName: "WasmEdge-0.14.1-Linux",
		},
		{
			name:    "linux_other_distro_falls_back_to_manylinux",
			version: "0.14.1",
			info: platform.Info{
				OS:     platform.OSLinux,
				Arch:   platform.ArchX8664,
				Distro: &platform.Distro{ID: "fedora", Version: "40"},
			},
			wantFilename:    "WasmEdge-0.14.1-manylinux2014_x86_64.tar.gz",
			wantInstallName: "WasmEdge-0.14.1-Linux",
		},
		{
			name:            "darwin_x86_64",
			version:         "0.14.1",
			info:            platform.Info{OS: platform.OSDarwin, Arch: platform.ArchX8664},
			wantFilename:    "WasmEdge-0.14.1-darwin_x86_64.tar.gz",
			wantInstallName: "WasmEdge-0.14.1-Darwin",
		},
		{
			name:            "darwin_aarch64_uses_arm64_naming",
			version:         "0.14.1",
			info:            platform.Info{OS: platform.OSDarwin, Arch: platform.ArchAarch64},
			wantFilename:    "WasmEdge-0.14.1-darwin_arm64.tar.gz",
			wantInstallName: "WasmEdge-0.14.1-Darwin",
		},
		{
			name:            "windows_x86_64",
			version:         "0.14.1",
			info:            platform.Info{OS: platform.OSWindows, Arch: platform.ArchX8664},
			wantFilename:    "WasmEdge-0.14.1-windows.zip",
			wantInstallName: "WasmEdge-0.14.1-Windows",
		},
		{
			name:            "prerelease_version",
			version:         "0.14.1-rc.1",
			info:            platform.Info{OS: platform.OSLinux, Arch: platform.ArchX8664},
			wantFilename:    "WasmEdge-0.14.1-rc.1-manylinux2014_x86_64.tar.gz",
			wantInstallName: "WasmEdge-0.14.1-rc.1-Linux",
		},
		{
			name:    "windows_aarch64_unsupported",
			version: "0.14.1",
			info:    platform.Info{OS: platform.OSWindows, Arch: platform.ArchAarch64},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version := semver.MustParse(tt.version)
			asset, err := NewAsset(version, tt.info)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				var resolution *AssetResolutionError
				if !errors.As(err, &resolution) {
					t.Errorf("expected AssetResolutionError, got %T", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if asset.Filename != tt.wantFilename {
				t.Errorf("filename:\ngot:  %s\nwant: %s", asset.Filename, tt.wantFilename)
			}
			if asset.InstallName != tt.wantInstallName {
				t.Errorf("install name:\ngot:  %s\nwant: %s", asset.InstallName, tt.wantInstallName)
			}

			wantURL := DefaultReleaseBase + "/" + tt.version + "/" + tt.wantFilename
			if asset.URL != wantURL {
				t.Errorf("URL:\ngot:  %s\nwant: %s", asset.URL, wantURL)
			}
			wantChecksumURL := DefaultReleaseBase + "/" + tt.version + "/checksums.txt"
			if asset.ChecksumURL != wantChecksumURL {
				t.Errorf("checksum URL:\ngot:  %s\nwant: %s", asset.ChecksumURL, wantChecksumURL)
			}
		})
	}
}

func TestNewAssetIsDeterministic(t *testing.T) {
	version := semver.MustParse("0.14.1")
	info := platform.Info{OS: platform.OSLinux, Arch: platform.ArchX8664}

	first, err := NewAsset(version, info)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := NewAsset(version, info)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *first != *second {
		t.Errorf("asset resolution not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
