package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ZipExtractor extracts .zip archives, the format used by Windows release
// assets.
type ZipExtractor struct{}

// Extract unpacks archivePath into destDir. Entry mode bits are applied
// as recorded in the archive; non-regular entries other than directories
// are skipped.
func (e *ZipExtractor) Extract(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return &ExtractError{Archive: archivePath, Err: fmt.Errorf("open archive: %w", err)}
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return &ExtractError{Archive: archivePath, Err: fmt.Errorf("create dest dir: %w", err)}
	}

	for _, entry := range reader.File {
		target, err := secureTarget(destDir, entry.Name)
		if err != nil {
			return &ExtractError{Archive: archivePath, Err: err}
		}

		info := entry.FileInfo()
		if info.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return &ExtractError{Archive: archivePath, Err: fmt.Errorf("create directory %s: %w", target, err)}
			}
			continue
		}

		if !info.Mode().IsRegular() {
			continue
		}

		if err := e.extractFile(entry, target); err != nil {
			return &ExtractError{Archive: archivePath, Err: err}
		}
	}

	return nil
}

func (e *ZipExtractor) extractFile(entry *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", target, err)
	}

	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("open entry %s: %w", entry.Name, err)
	}
	defer src.Close()

	mode := entry.FileInfo().Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}

	outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create file %s: %w", target, err)
	}

	if _, err := io.Copy(outFile, src); err != nil {
		outFile.Close()
		return fmt.Errorf("write file %s: %w", target, err)
	}

	return outFile.Close()
}
