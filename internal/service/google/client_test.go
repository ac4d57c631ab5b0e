package google

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"RaptorExplorer/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestClient(url string) *Client {
	return New(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "https://example.com/cb",
		TokenURL:     url,
	}, WithClock(func() time.Time { return fixedNow }))
}

func TestExchangeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{
			"code":          "auth-code",
			"client_id":     "client-id",
			"client_secret": "client-secret",
			"redirect_uri":  "https://example.com/cb",
			"grant_type":    "authorization_code",
		}, body)

		_, _ = w.Write([]byte(`{"access_token":"at","expires_in":3599,"refresh_token":"rt","token_type":"Bearer"}`))
	}))
	defer srv.Close()

	grant, err := newTestClient(srv.URL).ExchangeCode(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, &models.TokenGrant{
		AccessToken:  "at",
		ExpiresAt:    fixedNow.Unix() + 3599,
		RefreshToken: "rt",
	}, grant)
}

func TestRefreshToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "refresh_token", body["grant_type"])
		assert.Equal(t, "rt", body["refresh_token"])
		_, hasRedirect := body["redirect_uri"]
		assert.False(t, hasRedirect)

		_, _ = w.Write([]byte(`{"access_token":"at2","expires_in":60,"refresh_token":"ignored"}`))
	}))
	defer srv.Close()

	grant, err := newTestClient(srv.URL).RefreshToken(context.Background(), "rt")
	require.NoError(t, err)
	assert.Equal(t, "at2", grant.AccessToken)
	assert.Equal(t, fixedNow.Unix()+60, grant.ExpiresAt)
	assert.Empty(t, grant.RefreshToken)
}

func TestRejectedExchangeKeepsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Bad Request"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ExchangeCode(context.Background(), "stale")
	require.ErrorIs(t, err, models.ErrProviderRejected)

	var rejected *models.ProviderRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, http.StatusBadRequest, rejected.Status)
	assert.JSONEq(t, `{"error":"invalid_grant","error_description":"Bad Request"}`, string(rejected.Body))
}

func TestMissingInput(t *testing.T) {
	c := newTestClient("http://127.0.0.1:0")

	_, err := c.ExchangeCode(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrInvalidRequest)

	_, err = c.RefreshToken(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrInvalidRequest)

	_, err = New(Config{}).ExchangeCode(context.Background(), "code")
	assert.ErrorIs(t, err, models.ErrConfiguration)
}
