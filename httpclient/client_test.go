package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestDo_JSONRoundTrip(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Default") != "yes" {
			t.Error("default header not applied")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	c, err := New(Config{BaseURL: ts.URL, Headers: map[string]string{"X-Default": "yes"}})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/thing"})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if !resp.IsSuccess() {
		t.Errorf("expected success, got %d", resp.StatusCode)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Errorf("unexpected body: %s", resp.Body)
	}
}

func TestPostForm_EncodesBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if r.PostForm.Get("grant_type") != "authorization_code" {
			t.Errorf("grant_type = %q", r.PostForm.Get("grant_type"))
		}
		_, _ = w.Write([]byte(`{"access_token":"tok"}`))
	}))
	defer ts.Close()

	c, _ := New(Config{BaseURL: ts.URL})

	form := url.Values{}
	form.Set("grant_type", "authorization_code")

	type tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	resp, err := PostForm[tokenResp](c, context.Background(), "/token", form)
	if err != nil {
		t.Fatalf("PostForm failed: %v", err)
	}
	if resp.Data.AccessToken != "tok" {
		t.Errorf("access_token = %q", resp.Data.AccessToken)
	}
}

func TestAuth_BearerAndBasic(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c, _ := New(Config{BaseURL: ts.URL, Auth: BearerAuth("client-token")})
	if _, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"}); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer client-token" {
		t.Errorf("client-level auth = %q", gotAuth)
	}

	// Request-level auth overrides client-level.
	_, err := c.Do(context.Background(), Request{
		Method: http.MethodGet, Path: "/",
		Auth: BasicAuth("id", "secret"),
	})
	if err != nil {
		t.Fatal(err)
	}
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("id", "secret")
	if gotAuth != req.Header.Get("Authorization") {
		t.Errorf("request-level auth = %q", gotAuth)
	}
}

func TestDo_ClassifiesErrors(t *testing.T) {
	cases := []struct {
		status int
		code   ErrorCode
		retry  bool
	}{
		{401, ErrCodeAuth, false},
		{404, ErrCodeNotFound, false},
		{429, ErrCodeRateLimit, true},
		{400, ErrCodeValidation, false},
		{503, ErrCodeServer, true},
	}

	for _, tc := range cases {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte("nope"))
		}))

		c, _ := New(Config{BaseURL: ts.URL})
		resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
		ts.Close()

		if err == nil {
			t.Errorf("status %d: expected error", tc.status)
			continue
		}
		he, ok := err.(*Error)
		if !ok {
			t.Errorf("status %d: expected *Error, got %T", tc.status, err)
			continue
		}
		if he.Code != tc.code {
			t.Errorf("status %d: code = %s, want %s", tc.status, he.Code, tc.code)
		}
		if he.Retryable != tc.retry {
			t.Errorf("status %d: retryable = %v, want %v", tc.status, he.Retryable, tc.retry)
		}
		if resp == nil || string(resp.Body) != "nope" {
			t.Errorf("status %d: error response should still carry the body", tc.status)
		}
	}
}

func TestDo_ContextDeadline(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	c, _ := New(Config{BaseURL: ts.URL})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/slow"})
	if err == nil {
		t.Fatal("expected deadline error")
	}
	he, ok := err.(*Error)
	if !ok || he.Code != ErrCodeTimeout {
		t.Errorf("expected timeout classification, got %v", err)
	}
}
