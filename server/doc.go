// Package server provides the HTTP server for the ChaosRegistry service.
//
// The server is backed by Gin and wrapped with h2c so HTTP/2 cleartext
// clients can connect on the same port. It carries the standard middleware
// stack (recovery, request ID, CORS, rate limiting, request logging) and
// registers the default health and version endpoints.
package server
