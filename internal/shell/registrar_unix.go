//go:build !windows

package shell

import "os"

// NewRegistrar returns the startup-file backed registrar used on
// Unix-like systems.
func NewRegistrar() Registrar {
	return &RCFileRegistrar{}
}

// RCFileRegistrar records PATH entries in shell startup files. Every
// recognized shell whose startup file already exists gets the entry; when
// none exists, one is created for the shell named by $SHELL (bash when
// that is unset or unrecognized).
type RCFileRegistrar struct{}

// Register appends a PATH-exporting line for dir to each managed startup
// file that does not already reference it.
func (r *RCFileRegistrar) Register(dir string) error {
	targets, err := r.targetRCFiles()
	if err != nil {
		return err
	}

	for _, target := range targets {
		present, err := hasPathEntry(target.path, dir)
		if err != nil {
			return err
		}
		if present {
			continue
		}
		if err := appendPathLine(target.path, exportLine(target.shell, dir)); err != nil {
			return err
		}
	}
	return nil
}

// Unregister removes dir's PATH lines from every managed startup file.
func (r *RCFileRegistrar) Unregister(dir string) error {
	for _, shell := range SupportedShells() {
		rcPath, err := GetRCFilePath(shell)
		if err != nil {
			return err
		}
		if err := removePathEntry(rcPath, dir); err != nil {
			return err
		}
	}
	return nil
}

type rcTarget struct {
	shell ShellType
	path  string
}

// targetRCFiles returns the startup files to write to: every existing
// one, or the login shell's (created on demand) when none exist yet.
func (r *RCFileRegistrar) targetRCFiles() ([]rcTarget, error) {
	var targets []rcTarget
	for _, shell := range SupportedShells() {
		rcPath, err := GetRCFilePath(shell)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(rcPath); err == nil {
			targets = append(targets, rcTarget{shell: shell, path: rcPath})
		}
	}
	if len(targets) > 0 {
		return targets, nil
	}

	shell := DetectShell()
	if !shell.IsValid() {
		shell = ShellBash
	}
	rcPath, err := GetRCFilePath(shell)
	if err != nil {
		return nil, err
	}
	return []rcTarget{{shell: shell, path: rcPath}}, nil
}
