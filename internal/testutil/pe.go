package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// Optional header magic values for PE fixtures.
const (
	MagicPE32     uint16 = 0x010B
	MagicPE32Plus uint16 = 0x020B
)

// peHeaderOffset is where fixtures place the NT headers.
const peHeaderOffset = 0x80

// PEImage returns a minimal Windows executable image: an "MZ" stub whose
// e_lfanew points at a "PE\0\0" signature, a zeroed 20-byte file header and
// the given optional header magic.
func PEImage(magic uint16) []byte {
	img := make([]byte, peHeaderOffset+4+20+2+32)
	copy(img, "MZ")
	binary.LittleEndian.PutUint32(img[0x3C:], peHeaderOffset)
	copy(img[peHeaderOffset:], "PE\x00\x00")
	binary.LittleEndian.PutUint16(img[peHeaderOffset+4+20:], magic)
	return img
}

// MagicOffset returns the offset of the optional header magic in PEImage output.
func MagicOffset() int {
	return peHeaderOffset + 4 + 20
}

// WritePE writes a PEImage fixture to path, creating parent directories.
func WritePE(t *testing.T, path string, magic uint16) {
	t.Helper()

	WriteFile(t, path, PEImage(magic))
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(t *testing.T, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
