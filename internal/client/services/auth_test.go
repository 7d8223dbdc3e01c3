package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/jrnl/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	initErr  error
	token    string
	tokenErr error
}

func (f *fakeProvider) Initialize(context.Context) error { return f.initErr }

func (f *fakeProvider) RequestAccessToken(context.Context) (string, error) {
	return f.token, f.tokenErr
}

func profileServer(t *testing.T, wantToken string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+wantToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u1","name":"Alex","email":"alex@example.com","picture":"https://img.example/u1"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAuthService_SignIn(t *testing.T) {
	db := setupDB(t)
	srv := profileServer(t, "tok-abc")
	sessions := session.NewStore(db, time.Hour)

	svc := NewAuthService(&fakeProvider{token: "tok-abc"}, sessions, srv.URL)

	sess, err := svc.SignIn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Alex", sess.User.Name)
	assert.Equal(t, "tok-abc", sess.AccessToken)
	assert.False(t, sess.ExpiresAt.IsZero())

	restored, err := svc.Restore(context.Background())
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "alex@example.com", restored.User.Email)
}

func TestAuthService_SignIn_ProviderNotReady(t *testing.T) {
	db := setupDB(t)
	initErr := errors.New("provider unreachable")
	svc := NewAuthService(&fakeProvider{initErr: initErr}, session.NewStore(db, time.Hour), "http://unused")

	_, err := svc.SignIn(context.Background())
	assert.ErrorIs(t, err, initErr)
}

func TestAuthService_SignIn_AuthorizationDenied(t *testing.T) {
	db := setupDB(t)
	tokenErr := errors.New("user denied access")
	svc := NewAuthService(&fakeProvider{tokenErr: tokenErr}, session.NewStore(db, time.Hour), "http://unused")

	_, err := svc.SignIn(context.Background())
	assert.ErrorIs(t, err, tokenErr)

	restored, err := svc.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, restored)
}

func TestAuthService_SignInWithToken_ProfileRejected(t *testing.T) {
	db := setupDB(t)
	srv := profileServer(t, "valid")
	svc := NewAuthService(&fakeProvider{}, session.NewStore(db, time.Hour), srv.URL)

	_, err := svc.SignInWithToken(context.Background(), "stale")
	require.Error(t, err)

	// no partial session may survive a failed profile fetch
	restored, err := svc.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, restored)
}

func TestAuthService_SignOut(t *testing.T) {
	db := setupDB(t)
	srv := profileServer(t, "tok")
	svc := NewAuthService(&fakeProvider{token: "tok"}, session.NewStore(db, time.Hour), srv.URL)
	ctx := context.Background()

	_, err := svc.SignIn(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx))

	restored, err := svc.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, restored)
}
