package api

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 5 * time.Minute
	// DefaultUserAgent is the User-Agent header sent with requests
	DefaultUserAgent = "wasmedgeup/1.0"
)

// HTTPClient is the minimal HTTP client surface the release client needs.
// It exists so tests can substitute a fake transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches release metadata and assets from the release host.
// All of its operations are read-only and idempotent.
type Client struct {
	http      HTTPClient
	tags      TagLister
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h HTTPClient) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithRepoURL points tag listing at a different repository.
func WithRepoURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.tags = gitTagLister{repoURL: url}
		}
	}
}

// WithTagLister sets a custom tag source.
func WithTagLister(lister TagLister) Option {
	return func(c *Client) {
		if lister != nil {
			c.tags = lister
		}
	}
}

// NewClient creates a release client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: DefaultTimeout},
		tags:      gitTagLister{repoURL: DefaultRepoURL},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a GET against url and returns the response body on a 200.
// Failures are tagged with the resource name so callers can tell a manifest
// fetch from an asset fetch.
func (c *Client) get(ctx context.Context, url, resource string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, &RequestError{Resource: resource, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, &RequestError{Resource: resource, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, &RequestError{
			Resource: resource,
			Err:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	return resp.Body, resp.ContentLength, nil
}

// ResolveChecksum fetches the release's checksum manifest and returns the
// digest recorded for the asset's filename.
//
// Manifest format is one entry per line: "digest  filename". A manifest
// that fetches cleanly but has no entry for the asset is a
// ChecksumNotFoundError, distinct from any network failure.
func (c *Client) ResolveChecksum(ctx context.Context, version *semver.Version, asset *Asset) (string, error) {
	body, _, err := c.get(ctx, asset.ChecksumURL, "checksum manifest")
	if err != nil {
		return "", err
	}
	defer body.Close()

	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}

		// Tolerate manifests that record paths rather than bare filenames.
		if parts[1] == asset.Filename || filepath.Base(parts[1]) == asset.Filename {
			return parts[0], nil
		}
	}

	if err := scanner.Err(); err != nil {
		return "", &RequestError{Resource: "checksum manifest", Err: err}
	}

	return "", &ChecksumNotFoundError{Version: version.String(), Filename: asset.Filename}
}

// DownloadAsset streams the asset archive into destDir and returns the
// downloaded file's path. The body is written to a temporary file first and
// renamed into place, so an interrupted transfer never leaves a truncated
// file under the asset's name. Progress, when non-nil, observes cumulative
// byte counts during the transfer.
func (c *Client) DownloadAsset(ctx context.Context, asset *Asset, destDir string, progress ProgressFunc) (string, error) {
	body, total, err := c.get(ctx, asset.URL, "asset")
	if err != nil {
		return "", err
	}
	defer body.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create destination dir: %w", err)
	}

	destPath := filepath.Join(destDir, asset.Filename)
	tmpPath := destPath + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	reader := wrapProgress(body, total, progress)
	if err := copyBody(tmpFile, reader); err != nil {
		return "", err
	}

	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return "", fmt.Errorf("rename temp file: %w", err)
	}

	cleanupNeeded = false
	return destPath, nil
}

// copyBody streams src into dst, keeping the failure kinds apart: a read
// failure is a network problem and reports as a RequestError, while a
// write failure (disk full, permissions) is a local I/O problem and must
// not masquerade as one.
func copyBody(dst io.Writer, src io.Reader) error {
	w := &errTrackingWriter{w: dst}
	if _, err := io.Copy(w, src); err != nil {
		if w.err != nil {
			return fmt.Errorf("write temp file: %w", w.err)
		}
		return &RequestError{Resource: "asset", Err: err}
	}
	return nil
}

// errTrackingWriter remembers whether the write side produced an error,
// since io.Copy folds both sides into one return value.
type errTrackingWriter struct {
	w   io.Writer
	err error
}

func (t *errTrackingWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil {
		t.err = err
	}
	return n, err
}
