package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// lfanewOffset is the absolute offset of e_lfanew: 0x3A bytes past the
	// two-byte "MZ" signature.
	lfanewOffset   = 2 + 0x3A
	fileHeaderSize = 20

	magicPE32     = 0x010B
	magicPE32Plus = 0x020B
)

var (
	stubSignature = []byte("MZ")
	peSignature   = []byte("PE\x00\x00")
)

// GetArchitecture reads the header of the Windows executable at path and
// reports whether it is a 32-bit or 64-bit image.
func GetArchitecture(path string) (Architecture, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open executable: %w", err)
	}
	defer f.Close()

	return ReadArchitecture(f, path)
}

// ReadArchitecture is GetArchitecture over an already opened reader. name is
// only used in error messages.
func ReadArchitecture(r io.ReaderAt, name string) (Architecture, error) {
	invalid := func(reason string, got []byte) error {
		return &InvalidExecutableError{Path: name, Reason: reason, Got: got}
	}

	sig, err := readAt(r, 0, len(stubSignature))
	if err != nil || !bytes.Equal(sig, stubSignature) {
		return 0, invalid("invalid MZ signature", sig)
	}

	ptr, err := readAt(r, lfanewOffset, 4)
	if err != nil {
		return 0, invalid("truncated before PE header pointer", ptr)
	}
	ntOffset := int64(binary.LittleEndian.Uint32(ptr))

	sig, err = readAt(r, ntOffset, len(peSignature))
	if err != nil || !bytes.Equal(sig, peSignature) {
		return 0, invalid(fmt.Sprintf("invalid PE signature at offset %#x", ntOffset), sig)
	}

	magic, err := readAt(r, ntOffset+int64(len(peSignature))+fileHeaderSize, 2)
	if err != nil {
		return 0, invalid("truncated before optional header magic", magic)
	}

	switch binary.LittleEndian.Uint16(magic) {
	case magicPE32:
		return X86_32, nil
	case magicPE32Plus:
		return X86_64, nil
	default:
		return 0, invalid("unknown magic number", magic)
	}
}

// readAt reads exactly n bytes at off. On a short read it returns the bytes
// that were available together with an error.
func readAt(r io.ReaderAt, off int64, n int) ([]byte, error) {
	buf := make([]byte, n)
	got, err := r.ReadAt(buf, off)
	if got == n {
		return buf, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return buf[:got], err
}
