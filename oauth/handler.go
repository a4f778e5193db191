package oauth

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chaosregistry/platform/authstate"
	apperrors "github.com/chaosregistry/platform/errors"
	"github.com/chaosregistry/platform/logger"
	"github.com/chaosregistry/platform/observability"
	"github.com/chaosregistry/platform/server"
	"github.com/chaosregistry/platform/session"
)

// Handler serves the login and callback endpoints for all providers.
type Handler struct {
	signer          *authstate.Signer
	providers       map[string]Provider
	sessions        *session.Service
	redirects       RedirectConfig
	exchangeTimeout time.Duration
	metrics         *observability.Metrics
	log             *logger.Logger
}

// NewHandler creates the OAuth handler. metrics may be nil.
func NewHandler(
	signer *authstate.Signer,
	sessions *session.Service,
	redirects RedirectConfig,
	exchangeTimeout time.Duration,
	metrics *observability.Metrics,
	log *logger.Logger,
	providers ...Provider,
) *Handler {
	byName := make(map[string]Provider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	if exchangeTimeout <= 0 {
		exchangeTimeout = 10 * time.Second
	}
	return &Handler{
		signer:          signer,
		providers:       byName,
		sessions:        sessions,
		redirects:       redirects,
		exchangeTimeout: exchangeTimeout,
		metrics:         metrics,
		log:             log.WithComponent("oauth"),
	}
}

// Register mounts the login and callback routes.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/auth/:provider/login", h.Login)
	r.GET("/auth/:provider/callback", h.Callback)
}

// loginResponse is the body returned by the login endpoint.
type loginResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	Provider         string `json:"provider"`
	Platform         string `json:"platform"`
}

// Login starts the flow: generates secret material, signs the state, and
// returns the provider authorization URL for the client to open.
func (h *Handler) Login(c *gin.Context) {
	provider, ok := h.providers[c.Param("provider")]
	if !ok {
		server.RespondWithError(c, apperrors.NotFound("provider", c.Param("provider")))
		return
	}

	platform := c.DefaultQuery("platform", "web")

	material, err := provider.NewSecretMaterial()
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}

	state, err := h.signer.Generate(platform, material)
	if err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("platform", err.Error()))
		return
	}

	h.log.Info("Login started", logger.Fields(
		logger.FieldProvider, provider.Name(),
		logger.FieldPlatform, platform,
	))

	server.RespondOK(c, loginResponse{
		AuthorizationURL: provider.AuthorizationURL(state, material),
		Provider:         provider.Name(),
		Platform:         platform,
	})
}

// Callback completes the flow. Every outcome, success or failure, is a 302:
// to the platform's success target with a session, or to its error target
// with a machine-readable code. Nothing here is retried — a failed code
// exchange cannot succeed twice.
func (h *Handler) Callback(c *gin.Context) {
	providerName := c.Param("provider")
	provider, hasProvider := h.providers[providerName]

	// Platform is only trustworthy after state verification; until then
	// error redirects fall back to the web target.
	platform := "web"

	verification := h.signer.Verify(c.Query("state"))
	if !verification.Valid || !hasProvider {
		h.redirectError(c, providerName, platform, apperrors.InvalidState())
		return
	}
	platform = verification.Platform

	code := c.Query("code")
	if code == "" {
		// Covers both a missing code and an explicit provider denial
		// (error/error_description query parameters).
		h.redirectError(c, providerName, platform, apperrors.NoCode())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.exchangeTimeout)
	defer cancel()

	user, err := provider.Authenticate(ctx, code, verification.SecretMaterial)
	if err != nil {
		h.redirectError(c, providerName, platform, err)
		return
	}

	identity := session.Identity{
		UserID:      provider.Name() + ":" + user.ID,
		Provider:    provider.Name(),
		DisplayName: user.DisplayName,
	}

	token, err := h.sessions.Issue(identity, platform)
	if err != nil {
		h.redirectError(c, providerName, platform, apperrors.Internal(err))
		return
	}

	if !isNativePlatform(platform) {
		if err := h.sessions.SetCookie(c, token); err != nil {
			h.redirectError(c, providerName, platform, apperrors.Internal(err))
			return
		}
	}

	h.metrics.RecordLogin(c.Request.Context(), providerName, platform, "ok")
	h.log.Info("Login completed", logger.Fields(
		logger.FieldProvider, providerName,
		logger.FieldPlatform, platform,
		logger.FieldUserID, identity.UserID,
	))

	c.Redirect(http.StatusFound, h.redirects.SuccessURL(platform, token))
}

// redirectError terminates the flow with a 302 carrying the error code.
func (h *Handler) redirectError(c *gin.Context, providerName, platform string, err error) {
	code := wireErrorCode(err)
	description := "login failed"
	if appErr, ok := apperrors.AsAppError(err); ok {
		description = appErr.Message
	}

	h.metrics.RecordLoginFailure(c.Request.Context(), providerName, platform, code)
	h.log.Warn("Login failed", logger.Fields(
		logger.FieldProvider, providerName,
		logger.FieldPlatform, platform,
		"code", code,
		logger.FieldError, err.Error(),
	))

	c.Redirect(http.StatusFound, h.redirects.ErrorURL(platform, code, description))
}
