package session

import (
	"github.com/gin-gonic/gin"

	"github.com/chaosregistry/platform/admincache"
	apperrors "github.com/chaosregistry/platform/errors"
	"github.com/chaosregistry/platform/server"
)

// ProfileHandler serves the authenticated user's own profile, including
// the admin flag resolved through the admin-status cache.
type ProfileHandler struct {
	sessions *Service
	admins   *admincache.Cache
}

// NewProfileHandler creates the profile handler. admins may be nil, in
// which case every profile reports a non-admin user.
func NewProfileHandler(sessions *Service, admins *admincache.Cache) *ProfileHandler {
	return &ProfileHandler{sessions: sessions, admins: admins}
}

// Register mounts the profile routes behind the session middleware.
func (h *ProfileHandler) Register(r gin.IRouter) {
	r.GET("/me", h.sessions.Middleware(), h.Me)
}

type profileResponse struct {
	UserID      string `json:"user_id"`
	Provider    string `json:"provider"`
	DisplayName string `json:"display_name"`
	Platform    string `json:"platform"`
	IsAdmin     bool   `json:"is_admin"`
}

// Me returns the caller's identity. Admin status degrades to false when it
// cannot be resolved; a profile read must not fail on a checker outage.
func (h *ProfileHandler) Me(c *gin.Context) {
	claims, ok := FromContext(c)
	if !ok {
		server.RespondWithError(c, apperrors.Unauthorized("session required"))
		return
	}

	isAdmin := false
	if h.admins != nil {
		if v, err := h.admins.IsAdmin(c.Request.Context(), claims.UserID); err == nil {
			isAdmin = v
		}
	}

	server.RespondOK(c, profileResponse{
		UserID:      claims.UserID,
		Provider:    claims.Provider,
		DisplayName: claims.DisplayName,
		Platform:    claims.Platform,
		IsAdmin:     isAdmin,
	})
}
