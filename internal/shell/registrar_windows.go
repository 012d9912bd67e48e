//go:build windows

package shell

import (
	"fmt"
	"strings"

	"golang.org/x/sys/windows/registry"
)

// NewRegistrar returns the registry backed registrar used on Windows.
func NewRegistrar() Registrar {
	return &RegistryRegistrar{}
}

// RegistryRegistrar records PATH entries in the per-user Environment key.
// The Path value is treated as a semicolon-separated list; membership is
// tested entry by entry, never by substring.
type RegistryRegistrar struct{}

// RegistryError represents a failure reading or writing the user's
// Environment registry key.
type RegistryError struct {
	Action string
	Err    error
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("failed to %s user environment: %v", e.Action, e.Err)
}

func (e *RegistryError) Unwrap() error {
	return e.Err
}

// Register appends dir to the user's Path value unless an equal entry is
// already present. Comparison ignores case, matching how Windows resolves
// paths.
func (r *RegistryRegistrar) Register(dir string) error {
	key, err := registry.OpenKey(registry.CURRENT_USER, "Environment", registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return &RegistryError{Action: "open", Err: err}
	}
	defer key.Close()

	current, _, err := key.GetStringValue("Path")
	if err != nil && err != registry.ErrNotExist {
		return &RegistryError{Action: "read", Err: err}
	}

	for _, entry := range strings.Split(current, ";") {
		if strings.EqualFold(strings.TrimSpace(entry), dir) {
			return nil
		}
	}

	updated := dir
	if current != "" {
		updated = current + ";" + dir
	}
	if err := key.SetStringValue("Path", updated); err != nil {
		return &RegistryError{Action: "write", Err: err}
	}
	return nil
}

// Unregister removes dir's entries from the user's Path value. Absent
// entries make this a no-op.
func (r *RegistryRegistrar) Unregister(dir string) error {
	key, err := registry.OpenKey(registry.CURRENT_USER, "Environment", registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return &RegistryError{Action: "open", Err: err}
	}
	defer key.Close()

	current, _, err := key.GetStringValue("Path")
	if err != nil {
		if err == registry.ErrNotExist {
			return nil
		}
		return &RegistryError{Action: "read", Err: err}
	}

	var kept []string
	changed := false
	for _, entry := range strings.Split(current, ";") {
		if strings.EqualFold(strings.TrimSpace(entry), dir) {
			changed = true
			continue
		}
		kept = append(kept, entry)
	}
	if !changed {
		return nil
	}

	if err := key.SetStringValue("Path", strings.Join(kept, ";")); err != nil {
		return &RegistryError{Action: "write", Err: err}
	}
	return nil
}
