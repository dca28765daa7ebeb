package cryptox

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

// GenerateEd25519Key generates a new Ed25519 private key in PEM format (PKCS8).
func GenerateEd25519Key() ([]byte, error) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate Ed25519 key: %w", err)
	}

	// Ed25519 keys are always marshaled as PKCS8
	privateKeyBytes, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to marshal PKCS8 key: %w", err)
	}

	return pem.EncodeToMemory(&pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: privateKeyBytes,
	}), nil
}

// LoadOrGenerateEd25519Key reads a PEM key from path. An empty path yields a
// fresh key that only lives as long as the process. A missing file is created
// with a fresh key (mode 0600) so the next start reuses it.
func LoadOrGenerateEd25519Key(path string) (pemKey []byte, generated bool, err error) {
	if path == "" {
		pemKey, err = GenerateEd25519Key()
		return pemKey, true, err
	}

	pemKey, err = os.ReadFile(path)
	if err == nil {
		return pemKey, false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, false, fmt.Errorf("cryptox: read key file: %w", err)
	}

	pemKey, err = GenerateEd25519Key()
	if err != nil {
		return nil, false, err
	}
	if err := os.WriteFile(path, pemKey, 0o600); err != nil {
		return nil, false, fmt.Errorf("cryptox: write key file: %w", err)
	}
	return pemKey, true, nil
}
