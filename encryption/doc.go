// Package encryption provides authenticated symmetric encryption for
// sensitive values that leave the service boundary, such as session cookies.
//
// Two AEAD ciphers are supported: AES-256-GCM (default) and
// ChaCha20-Poly1305 for CPUs without AES hardware acceleration. Output is
// URL-safe base64 so sealed values can be carried in cookies and query
// parameters without further escaping.
package encryption
