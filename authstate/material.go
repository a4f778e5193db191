package authstate

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"io"
)

// GenerateNonce creates a cryptographically secure random nonce for OIDC
// replay protection. Returns a 16-byte hex-encoded string (32 characters).
func GenerateNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// PKCE holds a Proof Key for Code Exchange challenge/verifier pair.
// The challenge goes into the authorization URL; the verifier rides in the
// signed state token and is presented during the code exchange.
type PKCE struct {
	// CodeVerifier is the random secret presented at token exchange.
	CodeVerifier string

	// CodeChallenge is the SHA-256 hash of the verifier, sent in the
	// authorization URL.
	CodeChallenge string

	// CodeChallengeMethod is always "S256".
	CodeChallengeMethod string
}

// NewPKCE generates a PKCE pair using the S256 method. The verifier is a
// 32-byte random value, base64url-encoded (43 characters).
func NewPKCE() (*PKCE, error) {
	raw := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return nil, err
	}

	verifier := base64.RawURLEncoding.EncodeToString(raw)
	sum := sha256.Sum256([]byte(verifier))

	return &PKCE{
		CodeVerifier:        verifier,
		CodeChallenge:       base64.RawURLEncoding.EncodeToString(sum[:]),
		CodeChallengeMethod: "S256",
	}, nil
}
