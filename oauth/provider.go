package oauth

import "context"

// UserInfo is the provider-agnostic user profile resolved during login.
type UserInfo struct {
	// ID is the provider-scoped stable user identifier.
	ID string
	// DisplayName is the user's display name.
	DisplayName string
	// Picture is the avatar URL, when the provider supplies one.
	Picture string
}

// Provider is an OAuth2 identity provider in the authorization-code flow.
type Provider interface {
	// Name returns the provider identifier (e.g., "line", "twitter").
	Name() string

	// NewSecretMaterial generates the per-login secret bound into the state
	// token: an OIDC nonce for LINE, a PKCE code verifier for Twitter.
	NewSecretMaterial() (string, error)

	// AuthorizationURL builds the provider authorization URL carrying the
	// signed state and the public half of the secret material (the nonce
	// itself, or the S256 challenge derived from the verifier).
	AuthorizationURL(state, secretMaterial string) string

	// Authenticate exchanges the authorization code for tokens, enforces
	// the secret-material binding, and resolves the user profile. Failures
	// surface as *errors.AppError with the appropriate OAuth error code.
	Authenticate(ctx context.Context, code, secretMaterial string) (*UserInfo, error)
}
