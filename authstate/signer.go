package authstate

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// delimiter separates the token fields. The signature alphabet
	// (standard base64) never contains it; secret material may, which the
	// parsing rule below tolerates.
	delimiter = "|"

	// signatureLength is how many characters of the base64 HMAC are kept.
	// Truncating the 44-character encoding to 32 keeps authorization URLs
	// short while retaining ~192 bits of MAC strength — an accepted
	// tradeoff, not an accident.
	signatureLength = 32

	// keyLength is how much of the master credential is used as the HMAC
	// key. Only the leading bytes of the (much longer) service credential
	// are consumed.
	keyLength = 32

	// DefaultTTL is the maximum age of a verifiable token.
	DefaultTTL = 5 * time.Minute
)

// Signer generates and verifies signed state tokens. The key is derived
// once at construction and is read-only afterward, so a Signer is safe for
// concurrent use.
type Signer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// Verification is the outcome of verifying a state token. When Valid is
// false the other fields are zero: the caller learns nothing about why the
// token was rejected.
type Verification struct {
	Valid          bool
	Timestamp      time.Time
	Platform       string
	SecretMaterial string
}

// Option configures a Signer.
type Option func(*Signer)

// WithTTL overrides the default 5-minute token lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Signer) { s.ttl = ttl }
}

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) { s.now = now }
}

// NewSigner derives a signing key from the first 32 bytes of the master
// credential. The credential itself is never stored or transmitted.
func NewSigner(masterCredential string, opts ...Option) (*Signer, error) {
	if masterCredential == "" {
		return nil, fmt.Errorf("authstate: master credential is empty")
	}
	material := masterCredential
	if len(material) > keyLength {
		material = material[:keyLength]
	}

	s := &Signer{
		key: []byte(material),
		ttl: DefaultTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Generate creates a signed state token binding the caller's platform tag
// and secret material to the current time. The platform tag must not
// contain the field delimiter; secret material may.
func (s *Signer) Generate(platform, secretMaterial string) (string, error) {
	if strings.Contains(platform, delimiter) {
		return "", fmt.Errorf("authstate: platform tag must not contain %q", delimiter)
	}

	timestamp := strconv.FormatInt(s.now().UnixMilli(), 10)
	data := timestamp + delimiter + platform + delimiter + secretMaterial
	return data + delimiter + s.sign(data), nil
}

// Verify checks a state token's structure, age, and signature. It never
// returns an error and never panics: every failure mode collapses into
// Valid=false.
func (s *Signer) Verify(token string) Verification {
	parts := strings.Split(token, delimiter)
	if len(parts) < 4 {
		return Verification{}
	}

	// Last segment is the signature; everything between the platform and
	// the signature is the secret material, re-joined in case it contained
	// the delimiter. Generate uses the identical layout.
	timestamp := parts[0]
	platform := parts[1]
	secretMaterial := strings.Join(parts[2:len(parts)-1], delimiter)
	signature := parts[len(parts)-1]

	millis, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return Verification{}
	}
	issuedAt := time.UnixMilli(millis)
	if s.now().Sub(issuedAt) > s.ttl {
		return Verification{}
	}

	data := timestamp + delimiter + platform + delimiter + secretMaterial
	if !hmac.Equal([]byte(s.sign(data)), []byte(signature)) {
		return Verification{}
	}

	return Verification{
		Valid:          true,
		Timestamp:      issuedAt,
		Platform:       platform,
		SecretMaterial: secretMaterial,
	}
}

// sign computes the truncated base64 HMAC-SHA256 over data.
func (s *Signer) sign(data string) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(data))
	encoded := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return encoded[:signatureLength]
}
