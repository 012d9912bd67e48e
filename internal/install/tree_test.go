package install

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// writeTree materializes name -> content files under a temp directory.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return root
}

func TestCopyTree(t *testing.T) {
	files := map[string]string{
		"bin/wasmedge":         "binary",
		"lib/libwasmedge.so.0": "library",
		"include/wasmedge.h":   "header",
		"LICENSE":              "license",
	}

	src := writeTree(t, files)
	dst := filepath.Join(t.TempDir(), "install-root")

	if err := CopyTree(src, dst); err != nil {
		t.Fatalf("copy failed: %v", err)
	}

	for name, want := range files {
		content, err := os.ReadFile(filepath.Join(dst, name))
		if err != nil {
			t.Errorf("failed to read copied file %s: %v", name, err)
			continue
		}
		if string(content) != want {
			t.Errorf("content mismatch for %s:\ngot:  %q\nwant: %q", name, string(content), want)
		}
	}

	// Source tree must be untouched by the copy itself.
	if _, err := os.Stat(filepath.Join(src, "bin", "wasmedge")); err != nil {
		t.Errorf("source tree modified: %v", err)
	}
}

func TestCopyTreeOverwritesExisting(t *testing.T) {
	src := writeTree(t, map[string]string{
		"bin/wasmedge": "new binary",
		"NEW.txt":      "added file",
	})

	dst := writeTree(t, map[string]string{
		"bin/wasmedge": "old binary",
		"KEEP.txt":     "unrelated file",
	})

	if err := CopyTree(src, dst); err != nil {
		t.Fatalf("copy failed: %v", err)
	}

	tests := []struct {
		name string
		want string
	}{
		{name: "bin/wasmedge", want: "new binary"},
		{name: "NEW.txt", want: "added file"},
		{name: "KEEP.txt", want: "unrelated file"},
	}
	for _, tt := range tests {
		content, err := os.ReadFile(filepath.Join(dst, tt.name))
		if err != nil {
			t.Errorf("failed to read %s: %v", tt.name, err)
			continue
		}
		if string(content) != tt.want {
			t.Errorf("content mismatch for %s:\ngot:  %q\nwant: %q", tt.name, string(content), tt.want)
		}
	}
}

func TestCopyTreePreservesMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}

	src := t.TempDir()
	binDir := filepath.Join(src, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("failed to create bin dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(binDir, "wasmedge"), []byte("binary"), 0o755); err != nil {
		t.Fatalf("failed to write binary: %v", err)
	}

	dst := filepath.Join(t.TempDir(), "root")
	if err := CopyTree(src, dst); err != nil {
		t.Fatalf("copy failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(dst, "bin", "wasmedge"))
	if err != nil {
		t.Fatalf("failed to stat copied binary: %v", err)
	}
	if info.Mode().Perm()&0o111 == 0 {
		t.Errorf("executable bit lost: mode %v", info.Mode())
	}
}

func TestCopyTreeMissingSource(t *testing.T) {
	err := CopyTree(filepath.Join(t.TempDir(), "does-not-exist"), t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing source")
	}

	var ioErr *IoError
	if !errors.As(err, &ioErr) {
		t.Errorf("expected IoError, got %T", err)
	}
}

func TestRemoveStaging(t *testing.T) {
	dir := writeTree(t, map[string]string{"nested/file.txt": "content"})

	if err := RemoveStaging(dir); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("staging directory still present after removal")
	}

	// Removing an already-absent directory is fine.
	if err := RemoveStaging(dir); err != nil {
		t.Errorf("second removal errored: %v", err)
	}
}
