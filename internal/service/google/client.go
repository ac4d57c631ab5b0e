package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"RaptorExplorer/internal/domain/models"
	xhttp "RaptorExplorer/pkg/http"
	"RaptorExplorer/pkg/util"
)

const defaultTokenURL = "https://oauth2.googleapis.com/token"

const (
	grantAuthorizationCode = "authorization_code"
	grantRefreshToken      = "refresh_token"
)

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	TokenURL     string
	Timeout      time.Duration
}

// Client exchanges OAuth codes and refresh tokens at Google's token
// endpoint. It implements service.IdentityProvider.
type Client struct {
	cfg  Config
	http *xhttp.Client
	now  func() time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = xhttp.NewClient(xhttp.WithHTTPClient(hc))
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func New(cfg Config, opts ...Option) *Client {
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	c := &Client{
		cfg:  cfg,
		http: xhttp.NewClient(xhttp.WithTimeout(cfg.Timeout)),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tokenRequest struct {
	Code         string `json:"code,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURI  string `json:"redirect_uri,omitempty"`
	GrantType    string `json:"grant_type"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	IDToken      string `json:"id_token"`
	Scope        string `json:"scope"`
	TokenType    string `json:"token_type"`
}

func (c *Client) ExchangeCode(ctx context.Context, code string) (*models.TokenGrant, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: authorization code is required", models.ErrInvalidRequest)
	}
	return c.token(ctx, tokenRequest{
		Code:        code,
		RedirectURI: c.cfg.RedirectURI,
		GrantType:   grantAuthorizationCode,
	}, true)
}

// RefreshToken returns a new access token. Google does not rotate the
// refresh token, so it is left out of the grant.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenGrant, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: refresh token is required", models.ErrInvalidRequest)
	}
	return c.token(ctx, tokenRequest{
		RefreshToken: refreshToken,
		GrantType:    grantRefreshToken,
	}, false)
}

func (c *Client) token(ctx context.Context, req tokenRequest, keepRefresh bool) (*models.TokenGrant, error) {
	if c.cfg.ClientID == "" || c.cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: google client credentials are not set", models.ErrConfiguration)
	}
	req.ClientID = c.cfg.ClientID
	req.ClientSecret = c.cfg.ClientSecret

	now := c.now()
	var resp tokenResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodPost,
		URL:     c.cfg.TokenURL,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    req,
	}, &resp)
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) {
			return nil, &models.ProviderRejectedError{Provider: "google", Status: se.StatusCode, Body: se.Body}
		}
		return nil, fmt.Errorf("google token %s: %w", req.GrantType, err)
	}

	grant := &models.TokenGrant{
		AccessToken: resp.AccessToken,
		ExpiresAt:   util.UnixAfter(now, time.Duration(resp.ExpiresIn)*time.Second),
	}
	if keepRefresh {
		grant.RefreshToken = resp.RefreshToken
	}
	return grant, nil
}
