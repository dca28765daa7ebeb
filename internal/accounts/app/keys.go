package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/passageqa/pkg/cryptox"
	"github.com/aussiebroadwan/passageqa/pkg/jwtx"
)

// verifierLeeway absorbs clock skew between replicas sharing a key file.
const verifierLeeway = 30 * time.Second

// InitKeys loads the Ed25519 signing key and builds the matching verifier.
//
// With ACCOUNTS_SIGNING_KEY_FILE unset the key is ephemeral: every restart
// invalidates outstanding tickets and sessions, and replicas cannot verify
// each other's tokens. Set the file (or mount the same file on every
// replica) for anything beyond local development.
func InitKeys(cfg Config, logger *slog.Logger) (*jwtx.EdDSASigner, *jwtx.EdDSAVerifier, error) {
	pemKey, generated, err := cryptox.LoadOrGenerateEd25519Key(cfg.SigningKeyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load signing key: %w", err)
	}

	// The kid is derived from the public key so replicas sharing a key file
	// agree on it without extra config.
	probe, err := jwtx.NewSignerEdDSA("", pemKey)
	if err != nil {
		return nil, nil, err
	}
	kid := cryptox.FingerprintToken(string(probe.Public()))[:16]

	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case cfg.SigningKeyFile == "":
		logger.Warn("using ephemeral signing key, tokens will not survive a restart", "kid", kid)
	case generated:
		logger.Info("generated signing key", "path", cfg.SigningKeyFile, "kid", kid)
	default:
		logger.Info("loaded signing key", "path", cfg.SigningKeyFile, "kid", kid)
	}

	return signer, jwtx.NewVerifierEdDSA(cfg.Issuer, verifierLeeway, signer), nil
}
