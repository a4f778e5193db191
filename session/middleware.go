package session

import (
	"github.com/gin-gonic/gin"

	"github.com/chaosregistry/platform/server"
)

// contextKey is the Gin context key holding the validated session claims.
const contextKey = "session_claims"

// Middleware returns a Gin middleware that requires a valid session. The
// validated claims are stored in the Gin context for handlers.
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := s.FromRequest(c)
		if err != nil {
			server.RespondWithError(c, err)
			c.Abort()
			return
		}
		c.Set(contextKey, claims)
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// OptionalMiddleware populates the session claims when a valid token is
// present and continues anonymously otherwise. For routes that are public
// but personalize when a session exists.
func (s *Service) OptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := s.FromRequest(c); err == nil {
			c.Set(contextKey, claims)
			c.Set("user_id", claims.UserID)
		}
		c.Next()
	}
}

// FromContext returns the session claims stored by Middleware, if any.
func FromContext(c *gin.Context) (*Claims, bool) {
	v, exists := c.Get(contextKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}
