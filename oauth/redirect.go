package oauth

import (
	"net/url"
	"strings"

	apperrors "github.com/chaosregistry/platform/errors"
)

// Native platforms complete the flow on a deep link; everything else is web.
func isNativePlatform(platform string) bool {
	switch platform {
	case "ios", "android":
		return true
	default:
		return false
	}
}

// Target returns the terminal redirect base for a platform. This branching
// is part of the login contract: native apps resume on a deep link, web
// clients on the frontend URL.
func (r RedirectConfig) Target(platform string) string {
	if isNativePlatform(platform) {
		return r.DeepLinkScheme + "://auth/callback"
	}
	return r.WebURL
}

// SuccessURL builds the terminal redirect for a completed login. Native
// platforms carry the session token on the deep link; web clients receive
// it via the session cookie instead.
func (r RedirectConfig) SuccessURL(platform, sessionToken string) string {
	target := r.Target(platform)
	q := url.Values{}
	q.Set("login", "success")
	if isNativePlatform(platform) {
		q.Set("token", sessionToken)
	}
	return target + "?" + q.Encode()
}

// ErrorURL builds the terminal redirect for a failed login, carrying a
// machine-readable error code and a human-readable description.
func (r RedirectConfig) ErrorURL(platform, code, description string) string {
	q := url.Values{}
	q.Set("error", code)
	if description != "" {
		q.Set("error_description", description)
	}
	return r.Target(platform) + "?" + q.Encode()
}

// wireErrorCode lowers an AppError code to the wire format used on error
// redirects (INVALID_STATE -> invalid_state). Unknown errors collapse to
// login_failed.
func wireErrorCode(err error) string {
	if appErr, ok := apperrors.AsAppError(err); ok {
		switch appErr.Code {
		case apperrors.ErrCodeInvalidState,
			apperrors.ErrCodeNoCode,
			apperrors.ErrCodeTokenExchangeFailed,
			apperrors.ErrCodeUserInfoFailed:
			return strings.ToLower(string(appErr.Code))
		}
	}
	return "login_failed"
}
