package shell

import "fmt"

// ShellType represents a supported shell
type ShellType string

const (
	// ShellBash represents the Bash shell
	ShellBash ShellType = "bash"
	// ShellZsh represents the Z shell
	ShellZsh ShellType = "zsh"
	// ShellFish represents the Fish shell
	ShellFish ShellType = "fish"
	// ShellUnknown represents an unknown or unsupported shell
	ShellUnknown ShellType = "unknown"
)

// String returns the string representation of the shell type
func (s ShellType) String() string {
	return string(s)
}

// IsValid returns true if the shell type is supported
func (s ShellType) IsValid() bool {
	switch s {
	case ShellBash, ShellZsh, ShellFish:
		return true
	default:
		return false
	}
}

// SupportedShells returns the shells whose startup files are managed
func SupportedShells() []ShellType {
	return []ShellType{ShellBash, ShellZsh, ShellFish}
}

// Registrar adds and removes a directory from the user's command search
// path. Register is idempotent: repeated calls for the same directory
// record exactly one entry. Unregister is a no-op when the entry is
// absent.
type Registrar interface {
	Register(dir string) error
	Unregister(dir string) error
}

// UnsupportedShellError represents an unsupported shell error
type UnsupportedShellError struct {
	Shell string
}

func (e *UnsupportedShellError) Error() string {
	return fmt.Sprintf("unsupported shell: %s (supported: bash, zsh, fish)", e.Shell)
}

// RCDirNotFoundError indicates the parent directory for a startup file
// could not be located.
type RCDirNotFoundError struct {
	Path string
}

func (e *RCDirNotFoundError) Error() string {
	return fmt.Sprintf("parent directory not found for rc path: %s", e.Path)
}

// RCFileError represents an error with shell rc file operations
type RCFileError struct {
	Path    string
	Message string
	Cause   error
}

func (e *RCFileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rc file error (%s): %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("rc file error (%s): %s", e.Path, e.Message)
}

func (e *RCFileError) Unwrap() error {
	return e.Cause
}
