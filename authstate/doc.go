// Package authstate implements stateless, tamper-evident OAuth state tokens.
//
// A redirect-based login flow has no server memory between issuing the
// authorization URL and receiving the provider callback. The state token
// carries the context the callback needs — which client platform started
// the login and the replay-protection secret (an OIDC nonce or a PKCE code
// verifier) — signed with HMAC-SHA256 so it cannot be forged or altered,
// and bounded by a TTL so it cannot be replayed indefinitely.
//
// Wire format:
//
//	{epoch-millis}|{platform}|{secret-material}|{signature}
//
// The signature is the base64 HMAC over everything before it, truncated to
// 32 characters. Verification fails closed: any structural, temporal, or
// cryptographic problem yields Valid=false with no distinction between the
// causes.
package authstate
