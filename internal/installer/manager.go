// Package installer runs the end-to-end install pipeline: resolve the
// requested version, pick the platform's asset, fetch and verify it,
// expand it into a staging workspace, copy the tree under the install
// root, and record the executable directory on the user's PATH.
//
// The pipeline is fail-fast with no retries. A failure before the
// install stage leaves the install root untouched; the staging
// workspace is kept on any failure so the partial state can be
// inspected. PATH registration runs last, after the binaries are in
// place, so a registration failure still leaves a working install.
package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"

	"github.com/WasmEdge/wasmedgeup/internal/api"
	"github.com/WasmEdge/wasmedgeup/internal/archive"
	"github.com/WasmEdge/wasmedgeup/internal/install"
	"github.com/WasmEdge/wasmedgeup/internal/platform"
	"github.com/WasmEdge/wasmedgeup/internal/shell"
)

// ReleaseClient is the release-source surface the manager depends on.
// *api.Client satisfies it; tests substitute fakes.
type ReleaseClient interface {
	LatestRelease(ctx context.Context) (*semver.Version, error)
	ResolveChecksum(ctx context.Context, version *semver.Version, asset *api.Asset) (string, error)
	DownloadAsset(ctx context.Context, asset *api.Asset, destDir string, progress api.ProgressFunc) (string, error)
}

// Config carries one install run's inputs.
type Config struct {
	// Version is the user-supplied token: "latest" or an explicit
	// semantic version, with or without a leading "v".
	Version string

	// InstallRoot is the directory the runtime tree is placed under.
	InstallRoot string

	// TmpDir hosts the per-release staging workspace.
	TmpDir string

	// Platform selects the asset to install. It is normally the detected
	// host but may be overridden for cross-installs.
	Platform platform.Info

	// Progress, when non-nil, observes download byte counts.
	Progress api.ProgressFunc
}

// Result describes what an install run accomplished. It is non-nil
// whenever the runtime tree reached the install root, even if a later
// stage failed.
type Result struct {
	Version        *semver.Version
	Asset          *api.Asset
	InstallRoot    string
	BinDir         string
	PathRegistered bool
}

// Manager wires the pipeline's collaborators together.
type Manager struct {
	client    ReleaseClient
	registrar shell.Registrar
	logger    Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the pipeline's logger.
func WithLogger(l Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a Manager around a release client and a PATH
// registrar.
func NewManager(client ReleaseClient, registrar shell.Registrar, opts ...ManagerOption) *Manager {
	m := &Manager{
		client:    client,
		registrar: registrar,
		logger:    noopLogger{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Install runs the pipeline for cfg. On full success it returns the
// result and a nil error. When installation succeeded but PATH
// registration failed, it returns BOTH a result (PathRegistered false)
// and the registration error, so callers can report a usable but
// unregistered install.
func (m *Manager) Install(ctx context.Context, cfg Config) (*Result, error) {
	version, err := m.resolveVersion(ctx, cfg.Version)
	if err != nil {
		return nil, &StageError{Stage: StageResolvingVersion, Err: err}
	}
	m.logger.Info("resolved version", "version", version.String())

	asset, err := api.NewAsset(version, cfg.Platform)
	if err != nil {
		return nil, &StageError{Stage: StageResolvingAsset, Err: err}
	}
	m.logger.Debug("resolved asset", "filename", asset.Filename, "url", asset.URL)

	expected, err := m.client.ResolveChecksum(ctx, version, asset)
	if err != nil {
		return nil, &StageError{Stage: StageFetchingChecksum, Err: err}
	}
	m.logger.Debug("resolved checksum", "digest", expected)

	// The workspace exists before the transfer starts, so even a download
	// that fails outright leaves a directory to inspect.
	workspace := filepath.Join(cfg.TmpDir, asset.InstallName)
	if err := os.MkdirAll(workspace, 0o755); err != nil {
		return nil, &StageError{
			Stage: StageDownloading,
			Err:   &install.IoError{Action: "create staging workspace", Path: workspace, Err: err},
		}
	}

	archivePath, err := m.client.DownloadAsset(ctx, asset, workspace, cfg.Progress)
	if err != nil {
		return nil, &StageError{Stage: StageDownloading, Err: err}
	}
	m.logger.Info("downloaded asset", "path", archivePath)

	if err := m.verifyArchive(archivePath, expected); err != nil {
		return nil, &StageError{Stage: StageVerifying, Err: err}
	}
	m.logger.Debug("verified checksum")

	if err := archive.ForOS(cfg.Platform.OS).Extract(archivePath, workspace); err != nil {
		return nil, &StageError{Stage: StageExtracting, Err: err}
	}

	staged := filepath.Join(workspace, asset.InstallName)
	if err := install.CopyTree(staged, cfg.InstallRoot); err != nil {
		return nil, &StageError{Stage: StageInstalling, Err: err}
	}
	if err := install.RemoveStaging(workspace); err != nil {
		m.logger.Warn("failed to remove staging workspace", "path", workspace, "error", err)
	}
	m.logger.Info("installed runtime", "root", cfg.InstallRoot)

	result := &Result{
		Version:     version,
		Asset:       asset,
		InstallRoot: cfg.InstallRoot,
		BinDir:      filepath.Join(cfg.InstallRoot, "bin"),
	}

	if err := m.registrar.Register(result.BinDir); err != nil {
		return result, &StageError{Stage: StageRegisteringPath, Err: err}
	}
	result.PathRegistered = true
	m.logger.Info("registered PATH entry", "dir", result.BinDir)

	return result, nil
}

// Uninstall removes the PATH registration for installRoot's bin
// directory, then deletes the install root.
func (m *Manager) Uninstall(installRoot string) error {
	binDir := filepath.Join(installRoot, "bin")
	if err := m.registrar.Unregister(binDir); err != nil {
		return fmt.Errorf("remove PATH registration: %w", err)
	}
	m.logger.Info("removed PATH entry", "dir", binDir)

	if err := os.RemoveAll(installRoot); err != nil {
		return &install.IoError{Action: "remove install root", Path: installRoot, Err: err}
	}
	m.logger.Info("removed install root", "root", installRoot)
	return nil
}

// resolveVersion maps the user's token to a concrete version. Only the
// literal "latest" touches the release source; explicit versions parse
// locally.
func (m *Manager) resolveVersion(ctx context.Context, token string) (*semver.Version, error) {
	if token == "latest" {
		return m.client.LatestRelease(ctx)
	}
	return api.ParseVersion(token)
}

// verifyArchive checks the downloaded archive against the manifest
// digest.
func (m *Manager) verifyArchive(archivePath, expected string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open downloaded archive: %w", err)
	}
	defer f.Close()
	return api.VerifyChecksum(f, expected)
}
