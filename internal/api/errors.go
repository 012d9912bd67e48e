package api

import "fmt"

// VersionParseError indicates a malformed semantic version token.
type VersionParseError struct {
	Input string
	Err   error
}

func (e *VersionParseError) Error() string {
	return fmt.Sprintf("invalid semantic version specifier %q: %v", e.Input, e.Err)
}

func (e *VersionParseError) Unwrap() error {
	return e.Err
}

// AssetResolutionError indicates that no release asset exists for an
// (OS, architecture) combination.
type AssetResolutionError struct {
	OS   string
	Arch string
}

func (e *AssetResolutionError) Error() string {
	return fmt.Sprintf("no release asset for %s/%s", e.OS, e.Arch)
}

// RequestError indicates a network failure fetching a named resource.
type RequestError struct {
	Resource string
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("unable to request resource %q: %v", e.Resource, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ChecksumNotFoundError indicates the checksum manifest has no entry for
// the asset. This is distinct from a network failure fetching the manifest.
type ChecksumNotFoundError struct {
	Version  string
	Filename string
}

func (e *ChecksumNotFoundError) Error() string {
	return fmt.Sprintf("checksum not found for version %s asset %s", e.Version, e.Filename)
}

// ChecksumMismatchError indicates downloaded bytes failed the integrity
// check. It carries both digests for diagnosis.
type ChecksumMismatchError struct {
	Expected string
	Actual   string
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected %s, got %s", e.Expected, e.Actual)
}
