package api

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

// VerifyChecksum computes a streaming SHA256 digest over the full content
// of r and compares it, case-insensitively, to the expected hex digest.
// The reader is rewound first so an already-consumed file handle can be
// passed directly. Content is hashed in bounded chunks; the file is never
// held in memory whole.
func VerifyChecksum(r io.ReadSeeker, expected string) error {
	if expected == "" {
		return errors.New("expected checksum is empty")
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind file: %w", err)
	}

	hasher := sha256.New()
	if _, err := io.Copy(hasher, r); err != nil {
		return fmt.Errorf("hash file: %w", err)
	}

	actual := hex.EncodeToString(hasher.Sum(nil))
	if !strings.EqualFold(actual, expected) {
		return &ChecksumMismatchError{
			Expected: strings.ToLower(expected),
			Actual:   actual,
		}
	}

	return nil
}
