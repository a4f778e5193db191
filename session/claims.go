package session

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session token payload. It embeds the registered JWT claims
// and adds the identity fields established during login.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the stable user identifier.
	UserID string `json:"user_id"`

	// Platform is the client surface that initiated the login (web, ios, android).
	Platform string `json:"platform"`

	// Provider is the identity provider the user authenticated with.
	Provider string `json:"provider"`

	// DisplayName is the user's display name from the provider profile.
	DisplayName string `json:"display_name,omitempty"`
}
