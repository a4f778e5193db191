package feed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/chaosregistry/platform/remoteconfig"
	"github.com/chaosregistry/platform/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *session.Service) {
	t.Helper()

	sessions, err := session.NewService(session.Config{Secret: "feed-test-secret"})
	if err != nil {
		t.Fatal(err)
	}

	svc := newTestService(t, seedTopics(6), remoteconfig.StaticSource{
		remoteconfig.KeyAdInsertionInterval:  "2",
		remoteconfig.KeyAdInsertionSkipFirst: "0",
	})
	h := NewHandler(svc, nil)

	engine := gin.New()
	group := engine.Group("/", sessions.OptionalMiddleware())
	h.Register(group)
	return engine, sessions
}

func TestFeedEndpoint_Hot(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/feed/hot?page_size=4", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}

	var body struct {
		Data Page `json:"data"`
		Meta struct {
			Total      int `json:"total"`
			TotalPages int `json:"totalPages"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.Tab != TabHot {
		t.Errorf("tab = %q", body.Data.Tab)
	}
	if body.Meta.Total != 6 || body.Meta.TotalPages != 2 {
		t.Errorf("meta = %+v", body.Meta)
	}
	if body.Data.AdSlots == 0 {
		t.Error("expected ad slots on the hot page")
	}
}

func TestFeedEndpoint_UnknownTab(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/feed/trending", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestFeedEndpoint_JoinedRequiresSession(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/feed/joined", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestFeedEndpoint_JoinedWithSession(t *testing.T) {
	engine, sessions := newTestRouter(t)

	token, err := sessions.Issue(session.Identity{UserID: "u1", Provider: "line"}, "web")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/feed/joined", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}

	var body struct {
		Data Page `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.Total != 3 {
		t.Errorf("joined total = %d, want the caller's 3 memberships", body.Data.Total)
	}
}
