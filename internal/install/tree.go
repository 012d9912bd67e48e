// Package install places a staged runtime tree under the final install
// root. The copy is deliberately non-atomic and non-transactional: files
// already present at the same relative paths are overwritten in place,
// and a failure partway leaves the root in a mixed state for manual
// inspection. The staging directory is removed only after a fully
// successful copy.
package install

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// IoError indicates a filesystem failure during install, tagged with the
// action that failed and the path it failed on.
type IoError struct {
	Action string
	Path   string
	Err    error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("failed to %s at %s: %v", e.Action, e.Path, e.Err)
}

func (e *IoError) Unwrap() error {
	return e.Err
}

// CopyTree recursively copies every file and directory under src into
// dst, creating directories as needed and overwriting existing files at
// the same relative paths. File permission bits are carried over;
// symlinks are recreated pointing at their original targets.
func CopyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return &IoError{Action: "walk source tree", Path: path, Err: err}
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return &IoError{Action: "resolve relative path", Path: path, Err: err}
		}
		target := filepath.Join(dst, rel)

		switch {
		case entry.IsDir():
			if err := os.MkdirAll(target, 0o755); err != nil {
				return &IoError{Action: "create directory", Path: target, Err: err}
			}
			return nil

		case entry.Type()&fs.ModeSymlink != 0:
			linkTarget, err := os.Readlink(path)
			if err != nil {
				return &IoError{Action: "read symlink", Path: path, Err: err}
			}
			os.Remove(target)
			if err := os.Symlink(linkTarget, target); err != nil {
				return &IoError{Action: "create symlink", Path: target, Err: err}
			}
			return nil

		default:
			return copyFile(path, target)
		}
	})
}

// copyFile copies one regular file, preserving its permission bits.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return &IoError{Action: "stat file", Path: src, Err: err}
	}

	in, err := os.Open(src)
	if err != nil {
		return &IoError{Action: "open file", Path: src, Err: err}
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return &IoError{Action: "create file", Path: dst, Err: err}
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return &IoError{Action: "copy file", Path: dst, Err: err}
	}

	if err := out.Close(); err != nil {
		return &IoError{Action: "close file", Path: dst, Err: err}
	}

	// An overwritten file keeps its old mode without this.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return &IoError{Action: "set file mode", Path: dst, Err: err}
	}

	return nil
}

// RemoveStaging deletes a staging workspace. Call only after a fully
// successful copy; failed runs keep their workspace for diagnosis.
func RemoveStaging(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return &IoError{Action: "remove staging directory", Path: dir, Err: err}
	}
	return nil
}
