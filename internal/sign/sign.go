package sign

import (
	"errors"
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
)

// ErrNoSigningKey is returned when the key file holds no usable private key.
var ErrNoSigningKey = errors.New("no private signing key found")

// SignDetached writes an armored detached signature of the file at path to
// path+SignatureSuffix, using the first private key found in keyPath.
// passphrase is only used when that key is encrypted.
func SignDetached(path, keyPath string, passphrase []byte) (string, error) {
	keyring, err := loadKeyring(keyPath)
	if err != nil {
		return "", err
	}

	signer, err := signingEntity(keyring, passphrase)
	if err != nil {
		return "", err
	}

	artifact, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open artifact: %w", err)
	}
	defer artifact.Close()

	sidecar := path + SignatureSuffix
	out, err := os.Create(sidecar)
	if err != nil {
		return "", fmt.Errorf("create signature file: %w", err)
	}

	if err := openpgp.ArmoredDetachSign(out, signer, artifact, nil); err != nil {
		out.Close()
		os.Remove(sidecar)
		return "", fmt.Errorf("sign artifact: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("write signature file: %w", err)
	}

	return sidecar, nil
}

// signingEntity returns the first entity with a private key, decrypted.
func signingEntity(keyring openpgp.EntityList, passphrase []byte) (*openpgp.Entity, error) {
	for _, entity := range keyring {
		if entity.PrivateKey == nil {
			continue
		}

		if entity.PrivateKey.Encrypted {
			if len(passphrase) == 0 {
				return nil, fmt.Errorf("signing key is encrypted and no passphrase was given")
			}
			if err := entity.PrivateKey.Decrypt(passphrase); err != nil {
				return nil, fmt.Errorf("decrypt signing key: %w", err)
			}
		}
		for _, sub := range entity.Subkeys {
			if sub.PrivateKey != nil && sub.PrivateKey.Encrypted {
				if err := sub.PrivateKey.Decrypt(passphrase); err != nil {
					return nil, fmt.Errorf("decrypt signing subkey: %w", err)
				}
			}
		}

		return entity, nil
	}

	return nil, ErrNoSigningKey
}
