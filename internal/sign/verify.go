package sign

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
)

// SignatureSuffix is appended to an artifact path to name its signature sidecar.
const SignatureSuffix = ".asc"

// Result summarizes a successful verification.
type Result struct {
	Checksum bool   // checksum sidecar matched
	Signed   bool   // signature sidecar verified against the keyring
	Signer   string // identity of the signing key, when Signed
}

// Verify checks the checksum sidecar of the artifact at path. When
// keyringPath is non-empty the detached signature sidecar is verified too.
func Verify(path, keyringPath string) (*Result, error) {
	if err := VerifyChecksum(path); err != nil {
		return nil, err
	}

	result := &Result{Checksum: true}
	if keyringPath == "" {
		return result, nil
	}

	signer, err := verifySignature(path, path+SignatureSuffix, keyringPath)
	if err != nil {
		return nil, fmt.Errorf("verify signature: %w", err)
	}

	result.Signed = true
	for name := range signer.Identities {
		result.Signer = name
		break
	}

	return result, nil
}

// verifySignature verifies a detached signature, trying armored first.
func verifySignature(path, signaturePath, keyringPath string) (*openpgp.Entity, error) {
	keyring, err := loadKeyring(keyringPath)
	if err != nil {
		return nil, err
	}

	artifact, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer artifact.Close()

	sigFile, err := os.Open(signaturePath)
	if err != nil {
		return nil, fmt.Errorf("open signature: %w", err)
	}
	defer sigFile.Close()

	signer, err := openpgp.CheckArmoredDetachedSignature(keyring, artifact, sigFile, nil)
	if err != nil {
		if _, seekErr := artifact.Seek(0, io.SeekStart); seekErr != nil {
			return nil, seekErr
		}
		if _, seekErr := sigFile.Seek(0, io.SeekStart); seekErr != nil {
			return nil, seekErr
		}
		signer, err = openpgp.CheckDetachedSignature(keyring, artifact, sigFile, nil)
	}
	if err != nil {
		return nil, err
	}

	return signer, nil
}

// loadKeyring loads an armored or binary OpenPGP keyring.
func loadKeyring(keyringPath string) (openpgp.EntityList, error) {
	keyringFile, err := os.Open(keyringPath)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	defer keyringFile.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(keyringFile)
	if err != nil {
		if _, seekErr := keyringFile.Seek(0, io.SeekStart); seekErr != nil {
			return nil, seekErr
		}
		keyring, err = openpgp.ReadKeyRing(keyringFile)
		if err != nil {
			return nil, fmt.Errorf("read keyring: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, errors.New("keyring is empty")
	}

	return keyring, nil
}
