package session

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/chaosregistry/platform/errors"
)

// SetCookie seals the session token and writes it as the session cookie.
// Web clients never see the raw JWT.
func (s *Service) SetCookie(c *gin.Context, token string) error {
	sealed, err := s.sealer.Seal(token)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cfg.CookieName, sealed, int(s.cfg.TTL.Seconds()), "/", s.cfg.CookieDomain, s.cfg.CookieSecure, true)
	return nil
}

// ClearCookie removes the session cookie.
func (s *Service) ClearCookie(c *gin.Context) {
	c.SetCookie(s.cfg.CookieName, "", -1, "/", s.cfg.CookieDomain, s.cfg.CookieSecure, true)
}

// FromRequest extracts and validates the session from a request: the
// Authorization Bearer token first, then the sealed session cookie.
func (s *Service) FromRequest(c *gin.Context) (*Claims, error) {
	if auth := c.GetHeader("Authorization"); len(auth) > 7 && auth[:7] == "Bearer " {
		return s.Validate(auth[7:])
	}

	sealed, err := c.Cookie(s.cfg.CookieName)
	if err != nil {
		return nil, apperrors.Unauthorized("no session")
	}
	token, err := s.sealer.Open(sealed)
	if err != nil {
		return nil, apperrors.InvalidToken().WithCause(err)
	}
	return s.Validate(token)
}
