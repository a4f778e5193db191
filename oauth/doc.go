// Package oauth hosts the social login flow: building provider
// authorization URLs protected by signed state tokens, and handling the
// provider callback that exchanges the authorization code, verifies the
// secret-material binding, and issues a platform session.
//
// Two providers are implemented: LINE (OpenID Connect with a nonce bound
// into the state token) and Twitter/X (OAuth2 with PKCE, the code verifier
// riding in the state token). The flow is stateless on the server: all
// context a callback needs is recovered from the verified state parameter.
package oauth
