package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"fmt"
)

// AESGCM seals values using AES-256-GCM.
type AESGCM struct {
	aead cipher.AEAD
}

// NewAESGCM creates an AES-256-GCM sealer. The key is hashed with SHA-256 to
// produce a consistent 32-byte AES key.
func NewAESGCM(key string) (*AESGCM, error) {
	keyBytes := sha256.Sum256([]byte(key))

	block, err := aes.NewCipher(keyBytes[:])
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return &AESGCM{aead: gcm}, nil
}

// Seal encrypts plaintext and returns a URL-safe base64 result.
func (s *AESGCM) Seal(plaintext string) (string, error) {
	return sealWith(s.aead, plaintext)
}

// Open decrypts a sealed value produced by Seal.
func (s *AESGCM) Open(sealed string) (string, error) {
	return openWith(s.aead, sealed)
}
