package auth

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/chacha20poly1305"

	"shoplocal/config"
	"shoplocal/internal/domain/service"
	"shoplocal/internal/errors"
)

// chachaSealer seals credentials with ChaCha20-Poly1305. The nonce is
// prepended to the ciphertext so a sealed blob is self-contained.
type chachaSealer struct {
	key []byte
}

// disabledSealer rejects every operation. Credentials are simply never stored
// when no seal key is configured, so profile sync degrades to local-only.
type disabledSealer struct{}

func (disabledSealer) Seal([]byte) ([]byte, error) {
	return nil, errors.New("credential storage is disabled: no seal key configured")
}

func (disabledSealer) Open([]byte) ([]byte, error) {
	return nil, errors.New("credential storage is disabled: no seal key configured")
}

// NewCredentialSealer builds a sealer from the hex-encoded key in config. An
// empty key disables credential storage instead of failing startup.
func NewCredentialSealer(cfg *config.Config) (service.CredentialSealer, error) {
	if cfg.Auth == nil || cfg.Auth.SealKey == "" {
		return disabledSealer{}, nil
	}

	key, err := hex.DecodeString(cfg.Auth.SealKey)
	if err != nil {
		return nil, errors.Wrap(err, "auth seal key is not valid hex")
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, errors.Errorf("auth seal key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}

	return &chachaSealer{key: key}, nil
}

// Seal encrypts the plaintext.
func (s *chachaSealer) Seal(plain []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build AEAD")
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, errors.Wrap(err, "failed to generate nonce")
	}

	return aead.Seal(nonce, nonce, plain, nil), nil
}

// Open decrypts a sealed blob produced by Seal.
func (s *chachaSealer) Open(sealed []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build AEAD")
	}

	if len(sealed) < aead.NonceSize() {
		return nil, errors.New("sealed credentials are truncated")
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]

	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sealed credentials")
	}

	return plain, nil
}
