package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/chaosregistry/platform/admincache"
	"github.com/chaosregistry/platform/logger"
)

func newProfileRouter(t *testing.T, checker admincache.Checker) (*gin.Engine, *Service) {
	t.Helper()

	svc, err := NewService(Config{Secret: "profile-test-secret"})
	if err != nil {
		t.Fatal(err)
	}

	var admins *admincache.Cache
	if checker != nil {
		admins, err = admincache.New(admincache.Config{}, checker, logger.NewDefault("test"))
		if err != nil {
			t.Fatal(err)
		}
	}

	engine := gin.New()
	NewProfileHandler(svc, admins).Register(engine)
	return engine, svc
}

func getProfile(t *testing.T, engine *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestProfile_RequiresSession(t *testing.T) {
	engine, _ := newProfileRouter(t, nil)

	if w := getProfile(t, engine, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestProfile_ReportsAdminStatus(t *testing.T) {
	checker := func(_ context.Context, userID string) (bool, error) {
		return userID == "line:U1", nil
	}
	engine, svc := newProfileRouter(t, checker)

	token, err := svc.Issue(Identity{UserID: "line:U1", Provider: "line", DisplayName: "Alice"}, "web")
	if err != nil {
		t.Fatal(err)
	}

	w := getProfile(t, engine, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}

	var body struct {
		Data profileResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Data.IsAdmin {
		t.Error("expected is_admin true for the configured admin")
	}
	if body.Data.UserID != "line:U1" || body.Data.Provider != "line" {
		t.Errorf("unexpected profile: %+v", body.Data)
	}
}

func TestProfile_CheckerFailureDegradesToNonAdmin(t *testing.T) {
	checker := func(_ context.Context, _ string) (bool, error) {
		return false, errors.New("backend down")
	}
	engine, svc := newProfileRouter(t, checker)

	token, err := svc.Issue(Identity{UserID: "line:U2", Provider: "line"}, "web")
	if err != nil {
		t.Fatal(err)
	}

	w := getProfile(t, engine, token)
	if w.Code != http.StatusOK {
		t.Fatalf("a checker outage must not fail the profile read, got %d", w.Code)
	}

	var body struct {
		Data profileResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.IsAdmin {
		t.Error("unresolvable admin status must degrade to false")
	}
}

func TestProfile_NilCacheIsNonAdmin(t *testing.T) {
	engine, svc := newProfileRouter(t, nil)

	token, err := svc.Issue(Identity{UserID: "line:U3", Provider: "line"}, "ios")
	if err != nil {
		t.Fatal(err)
	}

	w := getProfile(t, engine, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body struct {
		Data profileResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.IsAdmin {
		t.Error("no admin cache wired means no admins")
	}
}
