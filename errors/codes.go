package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Connection/Availability errors (retryable)
const (
	// ErrCodeServiceUnavailable indicates the service is temporarily unavailable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeRateLimited indicates the client is rate limited.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeConflict indicates a conflict with the current state of the resource.
	ErrCodeConflict ErrorCode = "CONFLICT"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Authentication/Authorization errors
const (
	// ErrCodeUnauthorized indicates the request is unauthorized.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeForbidden indicates the request is forbidden.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
	// ErrCodeTokenExpired indicates the session token has expired.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	// ErrCodeInvalidToken indicates the session token is invalid.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
)

// OAuth login-flow errors. These map one-to-one onto the machine-readable
// error query parameter carried on terminal callback redirects.
const (
	// ErrCodeInvalidState indicates the OAuth state parameter is missing,
	// malformed, expired, or failed signature verification. The sub-cases
	// are deliberately not distinguished to clients.
	ErrCodeInvalidState ErrorCode = "INVALID_STATE"
	// ErrCodeNoCode indicates the provider callback carried no authorization code.
	ErrCodeNoCode ErrorCode = "NO_CODE"
	// ErrCodeTokenExchangeFailed indicates the authorization-code exchange
	// with the provider failed. The one-time code is already consumed by
	// the provider, so the exchange is never retried.
	ErrCodeTokenExchangeFailed ErrorCode = "TOKEN_EXCHANGE_FAILED"
	// ErrCodeUserInfoFailed indicates the provider profile fetch failed
	// after a successful exchange.
	ErrCodeUserInfoFailed ErrorCode = "USER_INFO_FAILED"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeExternalService indicates an error from an external service.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable: true,
	ErrCodeTimeout:            true,
	ErrCodeRateLimited:        true,
	ErrCodeExternalService:    true,
	ErrCodeUserInfoFailed:     true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// OAuth state and exchange failures are security rejections, not transient
// faults, and are never retryable.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
