package shell

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// pathLineMarker precedes every line this tool appends to a startup
// file, so removal can take the comment out along with the export.
const pathLineMarker = "# Added by wasmedgeup"

// GetRCFilePath returns the startup file path for the given shell.
func GetRCFilePath(shell ShellType) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}

	switch shell {
	case ShellBash:
		return filepath.Join(home, ".bashrc"), nil
	case ShellZsh:
		return filepath.Join(home, ".zshrc"), nil
	case ShellFish:
		return filepath.Join(home, ".config", "fish", "config.fish"), nil
	default:
		return "", &UnsupportedShellError{Shell: shell.String()}
	}
}

// exportLine builds the line that prepends dir to PATH in the given
// shell's syntax.
func exportLine(shell ShellType, dir string) string {
	if shell == ShellFish {
		return fmt.Sprintf("set -gx PATH %q $PATH", dir)
	}
	return fmt.Sprintf("export PATH=%q:$PATH", strings.ReplaceAll(dir, `"`, ``))
}

// hasPathEntry reports whether rcPath already carries a PATH line
// referencing dir. Commented-out lines do not count.
func hasPathEntry(rcPath, dir string) (bool, error) {
	f, err := os.Open(rcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &RCFileError{Path: rcPath, Message: "failed to open for scanning", Cause: err}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		if containsPathToken(line, dir) && strings.Contains(line, "PATH") {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, &RCFileError{Path: rcPath, Message: "failed to scan", Cause: err}
	}
	return false, nil
}

// containsPathToken reports whether line references dir as a complete
// path, not merely as a prefix of a longer one: the character after the
// match, if any, must not extend the path. Keeps an entry for
// /opt/x/bin2 from being mistaken for /opt/x/bin.
func containsPathToken(line, dir string) bool {
	if dir == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(line[start:], dir)
		if i < 0 {
			return false
		}
		end := start + i + len(dir)
		if end == len(line) || !isPathChar(line[end]) {
			return true
		}
		start = start + i + 1
	}
}

func isPathChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '/', c == '\\', c == '.', c == '-', c == '_', c == '~', c == '+':
		return true
	}
	return false
}

// appendPathLine appends the marker comment and the export line to
// rcPath, creating the file when missing. The parent directory must
// already exist.
func appendPathLine(rcPath, line string) error {
	if _, err := os.Stat(filepath.Dir(rcPath)); err != nil {
		if os.IsNotExist(err) {
			return &RCDirNotFoundError{Path: rcPath}
		}
		return &RCFileError{Path: rcPath, Message: "failed to stat parent directory", Cause: err}
	}

	f, err := os.OpenFile(rcPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &RCFileError{Path: rcPath, Message: "failed to open for appending", Cause: err}
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n%s\n%s\n", pathLineMarker, line); err != nil {
		return &RCFileError{Path: rcPath, Message: "failed to append PATH line", Cause: err}
	}
	return nil
}

// removePathEntry rewrites rcPath without the PATH lines referencing dir
// and without the marker comments this tool added. Missing files and
// files without a matching entry are left alone.
func removePathEntry(rcPath, dir string) error {
	content, err := os.ReadFile(rcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &RCFileError{Path: rcPath, Message: "failed to read for rewriting", Cause: err}
	}

	lines := strings.Split(string(content), "\n")
	kept := make([]string, 0, len(lines))
	changed := false
	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == pathLineMarker {
			// Drop the marker together with the export it precedes.
			if i+1 < len(lines) {
				next := strings.TrimSpace(lines[i+1])
				if containsPathToken(next, dir) && strings.Contains(next, "PATH") {
					i++
					changed = true
					continue
				}
			}
			kept = append(kept, lines[i])
			continue
		}
		if !strings.HasPrefix(trimmed, "#") && containsPathToken(trimmed, dir) && strings.Contains(trimmed, "PATH") {
			changed = true
			continue
		}
		kept = append(kept, lines[i])
	}

	if !changed {
		return nil
	}

	info, err := os.Stat(rcPath)
	if err != nil {
		return &RCFileError{Path: rcPath, Message: "failed to stat for rewriting", Cause: err}
	}
	if err := os.WriteFile(rcPath, []byte(strings.Join(kept, "\n")), info.Mode().Perm()); err != nil {
		return &RCFileError{Path: rcPath, Message: "failed to rewrite", Cause: err}
	}
	return nil
}
