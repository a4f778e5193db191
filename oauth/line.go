package oauth

import (
	"context"
	"net/url"

	"github.com/chaosregistry/platform/authstate"
	apperrors "github.com/chaosregistry/platform/errors"
	"github.com/chaosregistry/platform/httpclient"
)

// LineProvider implements the LINE Login flow (OpenID Connect). The secret
// material is an OIDC nonce: it rides in the state token, is sent in the
// authorization URL, and must come back as the nonce claim of the ID token.
type LineProvider struct {
	cfg    ProviderConfig
	client *httpclient.Client
}

// NewLineProvider creates the LINE provider.
func NewLineProvider(cfg ProviderConfig, client *httpclient.Client) *LineProvider {
	return &LineProvider{cfg: cfg, client: client}
}

// Name returns "line".
func (p *LineProvider) Name() string { return "line" }

// NewSecretMaterial generates an OIDC nonce.
func (p *LineProvider) NewSecretMaterial() (string, error) {
	return authstate.GenerateNonce()
}

// AuthorizationURL builds the LINE authorization URL.
func (p *LineProvider) AuthorizationURL(state, secretMaterial string) string {
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", p.cfg.ClientID)
	q.Set("redirect_uri", p.cfg.RedirectURI)
	q.Set("state", state)
	q.Set("scope", "profile openid")
	q.Set("nonce", secretMaterial)
	return p.cfg.AuthURL + "?" + q.Encode()
}

// lineTokenResponse is the LINE token endpoint response.
type lineTokenResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// lineIDTokenClaims is the LINE ID-token verify endpoint response.
type lineIDTokenClaims struct {
	Iss     string `json:"iss"`
	Sub     string `json:"sub"`
	Aud     string `json:"aud"`
	Nonce   string `json:"nonce"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Authenticate exchanges the code, verifies the ID token through LINE's
// verify endpoint, and enforces the nonce binding.
func (p *LineProvider) Authenticate(ctx context.Context, code, secretMaterial string) (*UserInfo, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", p.cfg.RedirectURI)
	form.Set("client_id", p.cfg.ClientID)
	form.Set("client_secret", p.cfg.ClientSecret)

	token, err := httpclient.PostForm[lineTokenResponse](p.client, ctx, p.cfg.TokenURL, form)
	if err != nil {
		return nil, apperrors.TokenExchangeFailed(p.Name(), err)
	}
	if token.Data.IDToken == "" {
		return nil, apperrors.TokenExchangeFailed(p.Name(), nil)
	}

	// LINE validates the ID token signature server-side; the nonce claim
	// comes back for the caller to check.
	verify := url.Values{}
	verify.Set("id_token", token.Data.IDToken)
	verify.Set("client_id", p.cfg.ClientID)

	claims, err := httpclient.PostForm[lineIDTokenClaims](p.client, ctx, p.cfg.VerifyURL, verify)
	if err != nil {
		return nil, apperrors.UserInfoFailed(p.Name(), err)
	}

	// The nonce claim must match the secret material recovered from the
	// verified state token. A mismatch is a replay, not a transient fault.
	if claims.Data.Nonce == "" || claims.Data.Nonce != secretMaterial {
		return nil, apperrors.InvalidState()
	}
	if claims.Data.Sub == "" {
		return nil, apperrors.UserInfoFailed(p.Name(), nil)
	}

	return &UserInfo{
		ID:          claims.Data.Sub,
		DisplayName: claims.Data.Name,
		Picture:     claims.Data.Picture,
	}, nil
}
