package sign

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ChecksumSuffix is appended to an artifact path to name its checksum sidecar.
const ChecksumSuffix = ".sha256"

// ErrChecksumMismatch is returned when an artifact no longer matches its sidecar.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// WriteChecksum computes the SHA-256 of the file at path and writes it to
// path+ChecksumSuffix in sha256sum format. It returns the sidecar path.
func WriteChecksum(path string) (string, error) {
	sum, err := digestFile(path)
	if err != nil {
		return "", fmt.Errorf("calculate checksum: %w", err)
	}

	sidecar := path + ChecksumSuffix
	line := fmt.Sprintf("%s  %s\n", sum, filepath.Base(path))
	if err := os.WriteFile(sidecar, []byte(line), 0644); err != nil {
		return "", fmt.Errorf("write checksum file: %w", err)
	}

	return sidecar, nil
}

// VerifyChecksum compares the file at path against path+ChecksumSuffix.
func VerifyChecksum(path string) error {
	actual, err := digestFile(path)
	if err != nil {
		return fmt.Errorf("calculate checksum: %w", err)
	}

	expected, err := checksumFor(path+ChecksumSuffix, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("find checksum: %w", err)
	}

	if !strings.EqualFold(actual, expected) {
		return fmt.Errorf("%w for %s:\nactual:   %s\nexpected: %s",
			ErrChecksumMismatch, filepath.Base(path), actual, expected)
	}

	return nil
}

// digestFile returns the hex SHA-256 of the file at path.
func digestFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// checksumFor returns the digest recorded for name in a sha256sum listing.
// Entries may carry the binary-mode '*' prefix or a directory part.
func checksumFor(listing, name string) (string, error) {
	f, err := os.Open(listing)
	if err != nil {
		return "", fmt.Errorf("open checksum file: %w", err)
	}
	defer f.Close()

	lines := bufio.NewScanner(f)
	for lines.Scan() {
		digest, entry, ok := strings.Cut(strings.TrimSpace(lines.Text()), " ")
		if !ok {
			continue
		}
		entry = strings.TrimPrefix(strings.TrimSpace(entry), "*")
		if entry == name || path.Base(entry) == name {
			return digest, nil
		}
	}
	if err := lines.Err(); err != nil {
		return "", fmt.Errorf("scan checksum file: %w", err)
	}

	return "", fmt.Errorf("no checksum listed for %s", name)
}
