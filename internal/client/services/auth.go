// Package services contains application services for the jrnl client.
// This file defines the authentication service: interactive sign-in,
// sign-out, and restoration of a persisted session.
package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/jrnl/internal/client/auth"
	"github.com/dmitrijs2005/jrnl/internal/client/models"
	"github.com/dmitrijs2005/jrnl/internal/client/session"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - SignIn: run the interactive flow, fetch the profile, persist the session.
//   - SignInWithToken: complete a session from a credential obtained out of band.
//   - SignOut: destroy the persisted session.
//   - Restore: read back a persisted, unexpired session (nil when signed out).
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	SignIn(ctx context.Context) (*models.Session, error)
	SignInWithToken(ctx context.Context, accessToken string) (*models.Session, error)
	SignOut(ctx context.Context) error
	Restore(ctx context.Context) (*models.Session, error)
}

// authService is the concrete AuthService backed by an injected
// TokenProvider and the local session store.
type authService struct {
	provider        auth.TokenProvider
	sessions        *session.Store
	httpClient      *http.Client
	profileEndpoint string
}

// NewAuthService constructs an AuthService bound to the given provider and
// session store.
func NewAuthService(provider auth.TokenProvider, sessions *session.Store, profileEndpoint string) AuthService {
	return &authService{
		provider:        provider,
		sessions:        sessions,
		httpClient:      &http.Client{},
		profileEndpoint: profileEndpoint,
	}
}

// SignIn performs the interactive authorization flow. Authorization is
// atomic from the store's perspective: the session is complete only after
// the profile fetch succeeds, and is then persisted with a fresh expiry.
func (a *authService) SignIn(ctx context.Context) (*models.Session, error) {
	if err := a.provider.Initialize(ctx); err != nil {
		return nil, err
	}
	token, err := a.provider.RequestAccessToken(ctx)
	if err != nil {
		return nil, err
	}
	return a.SignInWithToken(ctx, token)
}

// SignInWithToken completes a session from an already-issued credential.
// Used by the manual sign-in path on headless machines.
func (a *authService) SignInWithToken(ctx context.Context, accessToken string) (*models.Session, error) {
	user, err := auth.FetchProfile(ctx, a.httpClient, a.profileEndpoint, accessToken)
	if err != nil {
		return nil, err
	}

	sess := &models.Session{User: user, AccessToken: accessToken}
	if err := a.sessions.Persist(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SignOut destroys the persisted session.
func (a *authService) SignOut(ctx context.Context) error {
	return a.sessions.Clear(ctx)
}

// Restore returns the persisted session, or nil when absent or expired.
func (a *authService) Restore(ctx context.Context) (*models.Session, error) {
	return a.sessions.Restore(ctx)
}
