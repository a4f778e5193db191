package oauth

import (
	"net/url"
	"strings"
	"testing"

	apperrors "github.com/chaosregistry/platform/errors"
)

func testRedirects() RedirectConfig {
	return RedirectConfig{
		WebURL:         "https://app.example.com/auth/callback",
		DeepLinkScheme: "chaosregistry",
	}
}

func TestTarget_PlatformBranching(t *testing.T) {
	r := testRedirects()

	cases := []struct {
		platform string
		want     string
	}{
		{"ios", "chaosregistry://auth/callback"},
		{"android", "chaosregistry://auth/callback"},
		{"web", "https://app.example.com/auth/callback"},
		{"", "https://app.example.com/auth/callback"},
		{"something-else", "https://app.example.com/auth/callback"},
	}

	for _, tc := range cases {
		if got := r.Target(tc.platform); got != tc.want {
			t.Errorf("Target(%q) = %q, want %q", tc.platform, got, tc.want)
		}
	}
}

func TestSuccessURL_NativeCarriesToken(t *testing.T) {
	r := testRedirects()

	u, err := url.Parse(r.SuccessURL("ios", "jwt-token"))
	if err != nil {
		t.Fatal(err)
	}
	if u.Scheme != "chaosregistry" {
		t.Errorf("scheme = %q", u.Scheme)
	}
	if got := u.Query().Get("token"); got != "jwt-token" {
		t.Errorf("token param = %q, want jwt-token", got)
	}
}

func TestSuccessURL_WebOmitsToken(t *testing.T) {
	r := testRedirects()

	u, err := url.Parse(r.SuccessURL("web", "jwt-token"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(u.RawQuery, "jwt-token") {
		t.Error("web success redirect must not carry the raw token")
	}
	if u.Query().Get("login") != "success" {
		t.Error("expected login=success marker")
	}
}

func TestErrorURL(t *testing.T) {
	r := testRedirects()

	u, err := url.Parse(r.ErrorURL("android", "invalid_state", "state check failed"))
	if err != nil {
		t.Fatal(err)
	}
	if u.Scheme != "chaosregistry" {
		t.Errorf("scheme = %q", u.Scheme)
	}
	if u.Query().Get("error") != "invalid_state" {
		t.Errorf("error param = %q", u.Query().Get("error"))
	}
	if u.Query().Get("error_description") != "state check failed" {
		t.Errorf("error_description = %q", u.Query().Get("error_description"))
	}
}

func TestWireErrorCode(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{apperrors.InvalidState(), "invalid_state"},
		{apperrors.NoCode(), "no_code"},
		{apperrors.TokenExchangeFailed("line", nil), "token_exchange_failed"},
		{apperrors.UserInfoFailed("twitter", nil), "user_info_failed"},
		{apperrors.Internal(nil), "login_failed"},
	}

	for _, tc := range cases {
		if got := wireErrorCode(tc.err); got != tc.want {
			t.Errorf("wireErrorCode(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
