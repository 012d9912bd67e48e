package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// TarGzExtractor extracts .tar.gz archives, the format used by Linux and
// macOS release assets.
type TarGzExtractor struct{}

// Extract unpacks archivePath into destDir. Directory entries are created
// as needed and file mode bits from the archive are preserved, so
// executables stay executable. Symlinks are recreated when their target
// stays inside destDir and rejected otherwise.
func (e *TarGzExtractor) Extract(archivePath, destDir string) error {
	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return &ExtractError{Archive: archivePath, Err: fmt.Errorf("open archive: %w", err)}
	}
	defer archiveFile.Close()

	gzipReader, err := gzip.NewReader(archiveFile)
	if err != nil {
		return &ExtractError{Archive: archivePath, Err: fmt.Errorf("create gzip reader: %w", err)}
	}
	defer gzipReader.Close()

	tarReader := tar.NewReader(gzipReader)

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return &ExtractError{Archive: archivePath, Err: fmt.Errorf("create dest dir: %w", err)}
	}

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return &ExtractError{Archive: archivePath, Err: fmt.Errorf("read tar header: %w", err)}
		}

		target, err := secureTarget(destDir, header.Name)
		if err != nil {
			return &ExtractError{Archive: archivePath, Err: err}
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return &ExtractError{Archive: archivePath, Err: fmt.Errorf("create directory %s: %w", target, err)}
			}

		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return &ExtractError{Archive: archivePath, Err: fmt.Errorf("create parent dir for %s: %w", target, err)}
			}

			mode := header.FileInfo().Mode().Perm()
			outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
			if err != nil {
				return &ExtractError{Archive: archivePath, Err: fmt.Errorf("create file %s: %w", target, err)}
			}

			if _, err := io.Copy(outFile, tarReader); err != nil {
				outFile.Close()
				return &ExtractError{Archive: archivePath, Err: fmt.Errorf("write file %s: %w", target, err)}
			}

			outFile.Close()

		case tar.TypeSymlink:
			// A link target escaping the destination is the same attack
			// as a traversal entry name.
			linkTarget := header.Linkname
			if filepath.IsAbs(linkTarget) {
				return &ExtractError{Archive: archivePath, Err: fmt.Errorf("illegal symlink target: %s", linkTarget)}
			}
			if _, err := secureTarget(destDir, filepath.Join(filepath.Dir(header.Name), linkTarget)); err != nil {
				return &ExtractError{Archive: archivePath, Err: err}
			}

			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return &ExtractError{Archive: archivePath, Err: fmt.Errorf("create parent dir for %s: %w", target, err)}
			}
			os.Remove(target)
			if err := os.Symlink(linkTarget, target); err != nil {
				return &ExtractError{Archive: archivePath, Err: fmt.Errorf("create symlink %s: %w", target, err)}
			}

		default:
			// Skip other types (char devices, block devices, etc.)
			continue
		}
	}

	return nil
}
