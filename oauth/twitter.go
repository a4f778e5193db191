package oauth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"net/url"

	"github.com/chaosregistry/platform/authstate"
	apperrors "github.com/chaosregistry/platform/errors"
	"github.com/chaosregistry/platform/httpclient"
)

// TwitterProvider implements the Twitter/X OAuth2 flow with PKCE. The
// secret material is the PKCE code verifier: its S256 challenge goes into
// the authorization URL, and the verifier itself is presented at exchange.
type TwitterProvider struct {
	cfg    ProviderConfig
	client *httpclient.Client
}

// NewTwitterProvider creates the Twitter provider.
func NewTwitterProvider(cfg ProviderConfig, client *httpclient.Client) *TwitterProvider {
	return &TwitterProvider{cfg: cfg, client: client}
}

// Name returns "twitter".
func (p *TwitterProvider) Name() string { return "twitter" }

// NewSecretMaterial generates a PKCE code verifier.
func (p *TwitterProvider) NewSecretMaterial() (string, error) {
	pkce, err := authstate.NewPKCE()
	if err != nil {
		return "", err
	}
	return pkce.CodeVerifier, nil
}

// AuthorizationURL builds the Twitter authorization URL with the S256
// challenge derived from the verifier.
func (p *TwitterProvider) AuthorizationURL(state, secretMaterial string) string {
	sum := sha256.Sum256([]byte(secretMaterial))
	challenge := base64.RawURLEncoding.EncodeToString(sum[:])

	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", p.cfg.ClientID)
	q.Set("redirect_uri", p.cfg.RedirectURI)
	q.Set("state", state)
	q.Set("scope", "users.read tweet.read")
	q.Set("code_challenge", challenge)
	q.Set("code_challenge_method", "S256")
	return p.cfg.AuthURL + "?" + q.Encode()
}

// twitterTokenResponse is the Twitter token endpoint response.
type twitterTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// twitterUserResponse is the users/me endpoint response.
type twitterUserResponse struct {
	Data struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		Username        string `json:"username"`
		ProfileImageURL string `json:"profile_image_url"`
	} `json:"data"`
}

// Authenticate exchanges the code with the PKCE verifier and fetches the
// user profile.
func (p *TwitterProvider) Authenticate(ctx context.Context, code, secretMaterial string) (*UserInfo, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", p.cfg.RedirectURI)
	form.Set("client_id", p.cfg.ClientID)
	form.Set("code_verifier", secretMaterial)

	token, err := httpclient.PostForm[twitterTokenResponse](p.client, ctx, p.cfg.TokenURL, form,
		httpclient.WithRequestAuth(httpclient.BasicAuth(p.cfg.ClientID, p.cfg.ClientSecret)),
	)
	if err != nil {
		return nil, apperrors.TokenExchangeFailed(p.Name(), err)
	}
	if token.Data.AccessToken == "" {
		return nil, apperrors.TokenExchangeFailed(p.Name(), nil)
	}

	user, err := httpclient.Get[twitterUserResponse](p.client, ctx, p.cfg.UserInfoURL,
		httpclient.WithQueryParam("user.fields", "profile_image_url"),
		httpclient.WithRequestAuth(httpclient.BearerAuth(token.Data.AccessToken)),
	)
	if err != nil {
		return nil, apperrors.UserInfoFailed(p.Name(), err)
	}
	if user.Data.Data.ID == "" {
		return nil, apperrors.UserInfoFailed(p.Name(), nil)
	}

	name := user.Data.Data.Name
	if name == "" {
		name = user.Data.Data.Username
	}

	return &UserInfo{
		ID:          user.Data.Data.ID,
		DisplayName: name,
		Picture:     user.Data.Data.ProfileImageURL,
	}, nil
}
