package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "code123", r.Form.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "token123",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// completeCallback simulates the user approving access: it follows the
// redirect URI from the authorization URL with the given query values.
func completeCallback(t *testing.T, authURL string, extra url.Values) {
	t.Helper()
	u, err := url.Parse(authURL)
	require.NoError(t, err)

	redirect := u.Query().Get("redirect_uri")
	require.NotEmpty(t, redirect)

	q := url.Values{}
	if extra.Get("error") == "" {
		q.Set("state", u.Query().Get("state"))
		q.Set("code", "code123")
	}
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	resp, err := http.Get(redirect + "?" + q.Encode())
	require.NoError(t, err)
	_ = resp.Body.Close()
}

func TestRequestAccessToken_Success(t *testing.T) {
	tokenSrv := newTokenServer(t)

	p := NewOAuthProvider("client-id", "secret", "https://example.com/auth", tokenSrv.URL)
	p.openURL = func(authURL string) error {
		go completeCallback(t, authURL, nil)
		return nil
	}

	token, err := p.RequestAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token123", token)
}

func TestRequestAccessToken_ProviderError(t *testing.T) {
	p := NewOAuthProvider("client-id", "secret", "https://example.com/auth", "https://example.com/token")
	p.openURL = func(authURL string) error {
		go completeCallback(t, authURL, url.Values{"error": {"access_denied"}})
		return nil
	}

	_, err := p.RequestAccessToken(context.Background())
	assert.ErrorIs(t, err, ErrAuthorizationFailed)
}

func TestRequestAccessToken_StateMismatch(t *testing.T) {
	p := NewOAuthProvider("client-id", "secret", "https://example.com/auth", "https://example.com/token")
	p.openURL = func(authURL string) error {
		go completeCallback(t, authURL, url.Values{"state": {"forged"}})
		return nil
	}

	_, err := p.RequestAccessToken(context.Background())
	assert.ErrorIs(t, err, ErrAuthorizationFailed)
}

func TestRequestAccessToken_Cancelled(t *testing.T) {
	p := NewOAuthProvider("client-id", "secret", "https://example.com/auth", "https://example.com/token")
	ctx, cancel := context.WithCancel(context.Background())
	p.openURL = func(string) error {
		cancel() // user never completes the flow
		return nil
	}

	_, err := p.RequestAccessToken(ctx)
	assert.ErrorIs(t, err, ErrAuthorizationFailed)
}

func TestInitialize_Ready(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	p := NewOAuthProvider("client-id", "secret", srv.URL, srv.URL)
	assert.NoError(t, p.Initialize(context.Background()))
}

func TestInitialize_NeverBecameReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // unreachable endpoint

	p := NewOAuthProvider("client-id", "secret", srv.URL, srv.URL)
	assert.ErrorIs(t, p.Initialize(context.Background()), ErrProviderNotReady)
}

func TestInitialize_MissingClientID(t *testing.T) {
	p := NewOAuthProvider("", "", "https://example.com/auth", "https://example.com/token")
	assert.ErrorIs(t, p.Initialize(context.Background()), ErrProviderNotReady)
}
