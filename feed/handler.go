package feed

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/chaosregistry/platform/errors"
	"github.com/chaosregistry/platform/observability"
	"github.com/chaosregistry/platform/server"
	"github.com/chaosregistry/platform/session"
)

// Handler serves the feed endpoints.
type Handler struct {
	service *Service
	metrics *observability.Metrics
}

// NewHandler creates the feed handler. metrics may be nil.
func NewHandler(service *Service, metrics *observability.Metrics) *Handler {
	return &Handler{service: service, metrics: metrics}
}

// Register mounts the feed routes.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/feed/:tab", h.Feed)
}

// Feed returns one page of a tab's render plan. The joined tab requires a
// session; hot and latest are public.
func (h *Handler) Feed(c *gin.Context) {
	tab, err := ParseTab(c.Param("tab"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	var userID string
	if claims, ok := session.FromContext(c); ok {
		userID = claims.UserID
	}
	if tab == TabJoined && userID == "" {
		server.RespondWithError(c, apperrors.Unauthorized("the joined tab requires a session"))
		return
	}

	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "page_size", defaultPageSize)

	result, err := h.service.Page(c.Request.Context(), tab, userID, page, pageSize)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	h.metrics.RecordFeedPage(c.Request.Context(), string(tab), result.AdSlots)

	totalPages := 0
	if result.PageSize > 0 {
		totalPages = (result.Total + result.PageSize - 1) / result.PageSize
	}
	server.RespondOKWithMeta(c, result, &server.Meta{
		Page:       result.Page,
		PageSize:   result.PageSize,
		Total:      result.Total,
		TotalPages: totalPages,
	})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
