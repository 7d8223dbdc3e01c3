// Package auth performs the interactive authorization flow against the
// external identity provider and fetches the basic profile that completes
// a session. The provider is an injected capability so tests can
// substitute a fake implementation.
package auth

import (
	"context"
	"errors"
)

var (
	// ErrAuthorizationFailed covers every way the interactive flow can
	// end without a credential: the user cancelled, the provider
	// reported an error, or the profile fetch failed. None are retried.
	ErrAuthorizationFailed = errors.New("authorization failed")

	// ErrProviderNotReady is returned when the provider cannot be
	// reached before the readiness deadline.
	ErrProviderNotReady = errors.New("identity provider never became ready")
)

// TokenProvider abstracts the external identity provider.
type TokenProvider interface {
	// Initialize resolves once the provider is ready to serve an
	// interactive flow. It performs a single bounded readiness check and
	// fails with ErrProviderNotReady instead of retrying indefinitely.
	Initialize(ctx context.Context) error

	// RequestAccessToken runs the interactive flow and blocks until the
	// provider invokes its completion callback, returning the bearer
	// access credential.
	RequestAccessToken(ctx context.Context) (string, error)
}
