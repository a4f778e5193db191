package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/chaosregistry/platform/authstate"
	apperrors "github.com/chaosregistry/platform/errors"
	"github.com/chaosregistry/platform/logger"
	"github.com/chaosregistry/platform/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeProvider drives the handler without real provider endpoints.
type fakeProvider struct {
	name     string
	material string
	user     *UserInfo
	authErr  error

	gotCode     string
	gotMaterial string
}

func (f *fakeProvider) Name() string                       { return f.name }
func (f *fakeProvider) NewSecretMaterial() (string, error) { return f.material, nil }

func (f *fakeProvider) AuthorizationURL(state, secretMaterial string) string {
	return "https://provider.example.com/authorize?state=" + url.QueryEscape(state)
}

func (f *fakeProvider) Authenticate(_ context.Context, code, secretMaterial string) (*UserInfo, error) {
	f.gotCode = code
	f.gotMaterial = secretMaterial
	if f.authErr != nil {
		return nil, f.authErr
	}
	return f.user, nil
}

type handlerFixture struct {
	engine   *gin.Engine
	signer   *authstate.Signer
	provider *fakeProvider
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	signer, err := authstate.NewSigner("0123456789abcdef0123456789abcdef-extra")
	if err != nil {
		t.Fatal(err)
	}
	sessions, err := session.NewService(session.Config{Secret: "session-secret"})
	if err != nil {
		t.Fatal(err)
	}

	provider := &fakeProvider{
		name:     "line",
		material: "nonce-material",
		user:     &UserInfo{ID: "U1", DisplayName: "Alice"},
	}

	h := NewHandler(signer, sessions, testRedirects(), 0, nil, logger.NewDefault("test"), provider)

	engine := gin.New()
	h.Register(engine)

	return &handlerFixture{engine: engine, signer: signer, provider: provider}
}

func (f *handlerFixture) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func redirectQuery(t *testing.T, w *httptest.ResponseRecorder) (string, url.Values) {
	t.Helper()
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d (%s)", w.Code, w.Body.String())
	}
	loc, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatal(err)
	}
	return loc.Scheme, loc.Query()
}

func TestLogin_ReturnsAuthorizationURL(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.do(t, http.MethodPost, "/auth/line/login?platform=ios")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "authorization_url") || !strings.Contains(body, "provider.example.com") {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestLogin_UnknownProvider(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.do(t, http.MethodPost, "/auth/facebook/login")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown provider, got %d", w.Code)
	}
}

func TestCallback_Success_Native(t *testing.T) {
	f := newHandlerFixture(t)

	state, err := f.signer.Generate("ios", "nonce-material")
	if err != nil {
		t.Fatal(err)
	}

	w := f.do(t, http.MethodGet, "/auth/line/callback?state="+url.QueryEscape(state)+"&code=the-code")

	scheme, q := redirectQuery(t, w)
	if scheme != "chaosregistry" {
		t.Errorf("native login must land on the deep link, got scheme %q", scheme)
	}
	if q.Get("token") == "" {
		t.Error("native success redirect must carry the session token")
	}
	if f.provider.gotCode != "the-code" {
		t.Errorf("provider received code %q", f.provider.gotCode)
	}
	if f.provider.gotMaterial != "nonce-material" {
		t.Errorf("provider received material %q, want the state token's secret", f.provider.gotMaterial)
	}
}

func TestCallback_Success_Web_SetsCookie(t *testing.T) {
	f := newHandlerFixture(t)

	state, err := f.signer.Generate("web", "nonce-material")
	if err != nil {
		t.Fatal(err)
	}

	w := f.do(t, http.MethodGet, "/auth/line/callback?state="+url.QueryEscape(state)+"&code=c1")

	scheme, q := redirectQuery(t, w)
	if scheme != "https" {
		t.Errorf("web login must land on the frontend URL, got scheme %q", scheme)
	}
	if q.Get("token") != "" {
		t.Error("web success redirect must not carry the raw token")
	}
	if len(w.Result().Cookies()) == 0 {
		t.Error("web login must set the session cookie")
	}
}

func TestCallback_TamperedState(t *testing.T) {
	f := newHandlerFixture(t)

	state, _ := f.signer.Generate("ios", "nonce-material")
	tampered := state[:len(state)-1] + string(state[len(state)-1]^1)

	w := f.do(t, http.MethodGet, "/auth/line/callback?state="+url.QueryEscape(tampered)+"&code=c1")

	scheme, q := redirectQuery(t, w)
	if q.Get("error") != "invalid_state" {
		t.Errorf("error = %q, want invalid_state", q.Get("error"))
	}
	// Platform cannot be trusted from a bad state; errors land on web.
	if scheme != "https" {
		t.Errorf("unverified state must fall back to the web target, got %q", scheme)
	}
}

func TestCallback_MissingState(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.do(t, http.MethodGet, "/auth/line/callback?code=c1")
	_, q := redirectQuery(t, w)
	if q.Get("error") != "invalid_state" {
		t.Errorf("error = %q, want invalid_state", q.Get("error"))
	}
}

func TestCallback_MissingCode(t *testing.T) {
	f := newHandlerFixture(t)

	state, _ := f.signer.Generate("android", "nonce-material")
	w := f.do(t, http.MethodGet, "/auth/line/callback?state="+url.QueryEscape(state))

	scheme, q := redirectQuery(t, w)
	if q.Get("error") != "no_code" {
		t.Errorf("error = %q, want no_code", q.Get("error"))
	}
	// Platform was recovered from the valid state, so the error deep-links.
	if scheme != "chaosregistry" {
		t.Errorf("verified state should use the platform target, got %q", scheme)
	}
}

func TestCallback_ExchangeFailure(t *testing.T) {
	f := newHandlerFixture(t)
	f.provider.authErr = apperrors.TokenExchangeFailed("line", nil)

	state, _ := f.signer.Generate("web", "nonce-material")
	w := f.do(t, http.MethodGet, "/auth/line/callback?state="+url.QueryEscape(state)+"&code=c1")

	_, q := redirectQuery(t, w)
	if q.Get("error") != "token_exchange_failed" {
		t.Errorf("error = %q, want token_exchange_failed", q.Get("error"))
	}
	if q.Get("error_description") == "" {
		t.Error("error redirect must carry a human-readable description")
	}
}

func TestCallback_UserInfoFailure(t *testing.T) {
	f := newHandlerFixture(t)
	f.provider.authErr = apperrors.UserInfoFailed("line", nil)

	state, _ := f.signer.Generate("web", "nonce-material")
	w := f.do(t, http.MethodGet, "/auth/line/callback?state="+url.QueryEscape(state)+"&code=c1")

	_, q := redirectQuery(t, w)
	if q.Get("error") != "user_info_failed" {
		t.Errorf("error = %q, want user_info_failed", q.Get("error"))
	}
}
