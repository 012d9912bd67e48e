package shell

import (
	"os"
	"path/filepath"
	"strings"
)

// DetectShell detects the user's login shell from the $SHELL environment
// variable. When $SHELL is unset or names an unrecognized shell, the
// result is ShellUnknown and callers fall back to bash.
func DetectShell() ShellType {
	if shell := os.Getenv("SHELL"); shell != "" {
		return parseShellFromPath(shell)
	}
	return ShellUnknown
}

// parseShellFromPath extracts the shell type from a shell binary path
// Examples:
//   - /bin/bash -> bash
//   - /usr/bin/zsh -> zsh
//   - /usr/local/bin/fish -> fish
func parseShellFromPath(shellPath string) ShellType {
	baseName := strings.ToLower(filepath.Base(shellPath))

	switch baseName {
	case "bash":
		return ShellBash
	case "zsh":
		return ShellZsh
	case "fish":
		return ShellFish
	default:
		return ShellUnknown
	}
}
