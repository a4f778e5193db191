// Package session issues and validates user sessions after a completed
// login. Sessions are HS256-signed JWTs; web clients additionally receive
// the token sealed inside an encrypted cookie, while native apps carry it
// as a Bearer token.
package session
