// Package httpclient is a small HTTP client wrapper for calls to external
// APIs, primarily the OAuth identity providers. It supports JSON and
// form-encoded bodies, Bearer and Basic authentication, and classifies
// response status codes into structured errors.
//
// All calls take a context; deadlines and cancellation come from the caller.
package httpclient
