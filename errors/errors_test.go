package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found", http.StatusNotFound)
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
	if err.Retryable {
		t.Error("NOT_FOUND should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeTimeout, "timed out", http.StatusGatewayTimeout)
	if !err.Retryable {
		t.Error("TIMEOUT should be retryable")
	}
}

func TestAppError_InvalidState(t *testing.T) {
	err := InvalidState()
	if err.Code != ErrCodeInvalidState {
		t.Errorf("expected INVALID_STATE, got %s", err.Code)
	}
	if err.Retryable {
		t.Error("InvalidState is a security rejection and must not be retryable")
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.HTTPStatus)
	}
}

func TestAppError_TokenExchangeFailed(t *testing.T) {
	cause := fmt.Errorf("provider returned 400")
	err := TokenExchangeFailed("line", cause)
	if err.Code != ErrCodeTokenExchangeFailed {
		t.Errorf("expected TOKEN_EXCHANGE_FAILED, got %s", err.Code)
	}
	if err.Retryable {
		t.Error("a consumed authorization code can never be exchanged again")
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be wrapped")
	}
	if err.Details["provider"] != "line" {
		t.Errorf("expected provider=line, got %v", err.Details["provider"])
	}
}

func TestAppError_UserInfoFailed_Retryable(t *testing.T) {
	err := UserInfoFailed("twitter", fmt.Errorf("503"))
	if !err.Retryable {
		t.Error("USER_INFO_FAILED should be retryable")
	}
}

func TestAppError_ErrorString(t *testing.T) {
	err := Unauthorized("")
	want := "UNAUTHORIZED: Authentication required."
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	withCause := Internal(fmt.Errorf("boom"))
	if got := withCause.Error(); got != "INTERNAL_ERROR: An unexpected error occurred. Please try again or contact support. (cause: boom)" {
		t.Errorf("unexpected error string: %q", got)
	}
}

func TestAppError_UnwrapChain(t *testing.T) {
	root := fmt.Errorf("root cause")
	err := Internal(root)
	if !stderrors.Is(err, root) {
		t.Error("errors.Is should reach the root cause")
	}
}

func TestAppError_WithDetail(t *testing.T) {
	err := InvalidState().WithDetail("platform", "ios")
	if err.Details["platform"] != "ios" {
		t.Errorf("expected platform detail, got %v", err.Details)
	}
}

func TestToResponse(t *testing.T) {
	err := NoCode()
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeNoCode {
		t.Errorf("expected NO_CODE, got %s", resp.Error.Code)
	}
	if resp.Error.Message == "" {
		t.Error("expected non-empty message")
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", InvalidState())
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to find the AppError")
	}
	if appErr.Code != ErrCodeInvalidState {
		t.Errorf("expected INVALID_STATE, got %s", appErr.Code)
	}

	if IsAppError(stderrors.New("plain")) {
		t.Error("plain error should not be an AppError")
	}
}
