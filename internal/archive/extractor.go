// Package archive unpacks downloaded release archives. Unix-family
// releases ship as tar.gz, Windows releases as zip; the Extractor
// interface hides the difference so the install pipeline stays
// platform-agnostic.
//
// Both implementations guard against path traversal: any entry whose
// resolved path would land outside the destination directory aborts the
// extraction. No cleanup of partially extracted trees is attempted on
// failure; callers extract into a disposable staging directory.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/WasmEdge/wasmedgeup/internal/platform"
)

// Extractor unpacks one archive format into a destination directory.
type Extractor interface {
	Extract(archivePath, destDir string) error
}

// ForOS selects the extractor matching the target OS's archive format.
// Selection is keyed on the asset's target OS, not the host: an install
// run targeting Windows assets unpacks zip regardless of where it runs.
func ForOS(os platform.TargetOS) Extractor {
	if os == platform.OSWindows {
		return &ZipExtractor{}
	}
	return &TarGzExtractor{}
}

// ExtractError indicates a failed extraction: a corrupt archive, an I/O
// failure, or a path-traversal entry.
type ExtractError struct {
	Archive string
	Err     error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("unable to extract archive %s: %v", e.Archive, e.Err)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

// secureTarget resolves an archive entry name under destDir and rejects
// entries that escape it. A root entry ("." or "./", produced by tar -C)
// resolves to the destination itself and is allowed.
func secureTarget(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(name))
	clean := filepath.Clean(destDir)
	if target == clean {
		return target, nil
	}
	if !strings.HasPrefix(target, clean+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal file path: %s", name)
	}
	return target, nil
}
