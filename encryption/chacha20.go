package encryption

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// ChaCha20 seals values using ChaCha20-Poly1305, a modern AEAD cipher that
// performs well on CPUs without AES hardware acceleration.
type ChaCha20 struct {
	aead cipher.AEAD
}

// NewChaCha20 creates a ChaCha20-Poly1305 sealer. The key is hashed with
// SHA-256 to produce a consistent 32-byte key.
func NewChaCha20(key string) (*ChaCha20, error) {
	keyBytes := sha256.Sum256([]byte(key))

	aead, err := chacha20poly1305.New(keyBytes[:])
	if err != nil {
		return nil, fmt.Errorf("create chacha20: %w", err)
	}

	return &ChaCha20{aead: aead}, nil
}

// Seal encrypts plaintext and returns a URL-safe base64 result.
func (s *ChaCha20) Seal(plaintext string) (string, error) {
	return sealWith(s.aead, plaintext)
}

// Open decrypts a sealed value produced by Seal.
func (s *ChaCha20) Open(sealed string) (string, error) {
	return openWith(s.aead, sealed)
}

// sealWith encrypts with a random nonce prefix and encodes URL-safe.
func sealWith(aead cipher.AEAD, plaintext string) (string, error) {
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	ciphertext := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

// openWith decodes and decrypts a nonce-prefixed sealed value. Decoding is
// strict: non-canonical base64 (stray trailing padding bits) is rejected
// rather than silently normalized to the same ciphertext.
func openWith(aead cipher.AEAD, sealed string) (string, error) {
	data, err := base64.RawURLEncoding.Strict().DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	nonceSize := aead.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("sealed value too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt: %w", err)
	}

	return string(plaintext), nil
}
