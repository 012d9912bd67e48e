package archive

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// tarEntry describes one file to place in a test archive.
type tarEntry struct {
	content string
	mode    int64
}

// createTestTarGz builds a tar.gz archive from the given entries.
func createTestTarGz(t *testing.T, entries map[string]tarEntry) string {
	t.Helper()

	archivePath := filepath.Join(t.TempDir(), "test.tar.gz")

	archiveFile, err := os.Create(archivePath)
	if err != nil {
		t.Fatalf("failed to create archive: %v", err)
	}
	defer func() { _ = archiveFile.Close() }()

	gzipWriter := gzip.NewWriter(archiveFile)
	defer func() { _ = gzipWriter.Close() }()

	tarWriter := tar.NewWriter(gzipWriter)
	defer func() { _ = tarWriter.Close() }()

	for name, entry := range entries {
		mode := entry.mode
		if mode == 0 {
			mode = 0o644
		}
		header := &tar.Header{
			Name: name,
			Mode: mode,
			Size: int64(len(entry.content)),
		}

		if err := tarWriter.WriteHeader(header); err != nil {
			t.Fatalf("failed to write header for %s: %v", name, err)
		}
		if _, err := tarWriter.Write([]byte(entry.content)); err != nil {
			t.Fatalf("failed to write content for %s: %v", name, err)
		}
	}

	return archivePath
}

func TestTarGzExtract(t *testing.T) {
	tests := []struct {
		name    string
		entries map[string]tarEntry
	}{
		{
			name: "flat_files",
			entries: map[string]tarEntry{
				"file1.txt": {content: "content1"},
				"file2.txt": {content: "content2"},
			},
		},
		{
			name: "nested_directories",
			entries: map[string]tarEntry{
				"WasmEdge-0.14.1-Linux/bin/wasmedge":           {content: "binary", mode: 0o755},
				"WasmEdge-0.14.1-Linux/lib/libwasmedge.so.0":   {content: "library"},
				"WasmEdge-0.14.1-Linux/include/wasmedge/api.h": {content: "header"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archivePath := createTestTarGz(t, tt.entries)
			destDir := t.TempDir()

			extractor := &TarGzExtractor{}
			if err := extractor.Extract(archivePath, destDir); err != nil {
				t.Fatalf("extraction failed: %v", err)
			}

			for name, entry := range tt.entries {
				extractedPath := filepath.Join(destDir, name)

				content, err := os.ReadFile(extractedPath)
				if err != nil {
					t.Errorf("failed to read extracted file %s: %v", name, err)
					continue
				}
				if string(content) != entry.content {
					t.Errorf("content mismatch for %s:\ngot:  %q\nwant: %q",
						name, string(content), entry.content)
				}
			}
		})
	}
}

func TestTarGzExtractPreservesExecutableBit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bits are not meaningful on windows")
	}

	archivePath := createTestTarGz(t, map[string]tarEntry{
		"bin/wasmedge": {content: "#!/bin/sh\necho wasmedge", mode: 0o755},
		"README.md":    {content: "docs", mode: 0o644},
	})
	destDir := t.TempDir()

	extractor := &TarGzExtractor{}
	if err := extractor.Extract(archivePath, destDir); err != nil {
		t.Fatalf("extraction failed: %v", err)
	}

	binInfo, err := os.Stat(filepath.Join(destDir, "bin", "wasmedge"))
	if err != nil {
		t.Fatalf("failed to stat extracted binary: %v", err)
	}
	if binInfo.Mode().Perm()&0o111 == 0 {
		t.Errorf("executable bit lost: mode %v", binInfo.Mode())
	}

	docInfo, err := os.Stat(filepath.Join(destDir, "README.md"))
	if err != nil {
		t.Fatalf("failed to stat extracted file: %v", err)
	}
	if docInfo.Mode().Perm()&0o111 != 0 {
		t.Errorf("non-executable file gained exec bit: mode %v", docInfo.Mode())
	}
}

func TestTarGzExtractDotRootEntries(t *testing.T) {
	// Archives built with `tar -C dir .` carry a leading "./" root entry.
	archivePath := filepath.Join(t.TempDir(), "dotroot.tar.gz")
	archiveFile, err := os.Create(archivePath)
	if err != nil {
		t.Fatalf("failed to create archive: %v", err)
	}
	gzipWriter := gzip.NewWriter(archiveFile)
	tarWriter := tar.NewWriter(gzipWriter)

	headers := []*tar.Header{
		{Name: "./", Typeflag: tar.TypeDir, Mode: 0o755},
		{Name: "./bin/", Typeflag: tar.TypeDir, Mode: 0o755},
		{Name: "./bin/wasmedge", Typeflag: tar.TypeReg, Mode: 0o755, Size: int64(len("binary"))},
	}
	for _, header := range headers {
		if err := tarWriter.WriteHeader(header); err != nil {
			t.Fatalf("failed to write header %s: %v", header.Name, err)
		}
		if header.Typeflag == tar.TypeReg {
			if _, err := tarWriter.Write([]byte("binary")); err != nil {
				t.Fatalf("failed to write content: %v", err)
			}
		}
	}
	_ = tarWriter.Close()
	_ = gzipWriter.Close()
	_ = archiveFile.Close()

	destDir := t.TempDir()
	extractor := &TarGzExtractor{}
	if err := extractor.Extract(archivePath, destDir); err != nil {
		t.Fatalf("extraction of dot-rooted archive failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(destDir, "bin", "wasmedge"))
	if err != nil {
		t.Fatalf("extracted file missing: %v", err)
	}
	if string(content) != "binary" {
		t.Errorf("content mismatch: got %q", content)
	}
}

func TestTarGzExtractRejectsTraversal(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{name: "parent_escape", entry: "../evil.txt"},
		{name: "nested_escape", entry: "dir/../../evil.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archivePath := createTestTarGz(t, map[string]tarEntry{
				tt.entry: {content: "escaped"},
			})

			parent := t.TempDir()
			destDir := filepath.Join(parent, "dest")
			if err := os.MkdirAll(destDir, 0o755); err != nil {
				t.Fatalf("failed to create dest dir: %v", err)
			}

			extractor := &TarGzExtractor{}
			err := extractor.Extract(archivePath, destDir)
			if err == nil {
				t.Fatal("expected traversal to be rejected")
			}

			// Nothing may appear outside the destination directory.
			if _, statErr := os.Stat(filepath.Join(parent, "evil.txt")); !os.IsNotExist(statErr) {
				t.Error("traversal entry escaped the destination directory")
			}
		})
	}
}

func TestTarGzExtractRejectsEscapingSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation is restricted on windows")
	}

	archivePath := filepath.Join(t.TempDir(), "symlink.tar.gz")
	archiveFile, err := os.Create(archivePath)
	if err != nil {
		t.Fatalf("failed to create archive: %v", err)
	}
	gzipWriter := gzip.NewWriter(archiveFile)
	tarWriter := tar.NewWriter(gzipWriter)

	header := &tar.Header{
		Name:     "escape-link",
		Typeflag: tar.TypeSymlink,
		Linkname: "../../outside",
	}
	if err := tarWriter.WriteHeader(header); err != nil {
		t.Fatalf("failed to write symlink header: %v", err)
	}
	_ = tarWriter.Close()
	_ = gzipWriter.Close()
	_ = archiveFile.Close()

	extractor := &TarGzExtractor{}
	if err := extractor.Extract(archivePath, t.TempDir()); err == nil {
		t.Fatal("expected escaping symlink to be rejected")
	}
}

func TestTarGzExtractCorruptArchive(t *testing.T) {
	archivePath := filepath.Join(t.TempDir(), "corrupt.tar.gz")
	if err := os.WriteFile(archivePath, []byte("this is not gzip"), 0o644); err != nil {
		t.Fatalf("failed to write corrupt archive: %v", err)
	}

	extractor := &TarGzExtractor{}
	err := extractor.Extract(archivePath, t.TempDir())
	if err == nil {
		t.Fatal("expected error for corrupt archive")
	}
}
