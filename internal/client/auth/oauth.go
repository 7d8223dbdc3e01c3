package auth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const readinessTimeout = 10 * time.Second

// DefaultScopes request identity plus per-file drive access.
var DefaultScopes = []string{
	"openid",
	"email",
	"profile",
	"https://www.googleapis.com/auth/drive.file",
}

// OAuthProvider implements TokenProvider with a loopback-redirect
// authorization-code flow: a one-shot HTTP listener on 127.0.0.1 receives
// the provider's completion callback while the user approves access in the
// browser.
type OAuthProvider struct {
	cfg *oauth2.Config

	// test seams
	httpClient *http.Client
	openURL    func(url string) error
}

// NewOAuthProvider builds the interactive provider for the given endpoints.
func NewOAuthProvider(clientID, clientSecret, authURL, tokenURL string) *OAuthProvider {
	return &OAuthProvider{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     oauth2.Endpoint{AuthURL: authURL, TokenURL: tokenURL},
			Scopes:       DefaultScopes,
		},
		httpClient: &http.Client{},
		openURL:    printAuthURL,
	}
}

func printAuthURL(u string) error {
	_, err := fmt.Fprintf(os.Stdout, "Open the following link in your browser to continue:\n%s\n", u)
	return err
}

// Initialize performs a single bounded readiness probe of the authorization
// endpoint. It resolves once; an unreachable provider fails with
// ErrProviderNotReady instead of being retried indefinitely.
func (p *OAuthProvider) Initialize(ctx context.Context) error {
	if p.cfg.ClientID == "" {
		return fmt.Errorf("%w: client id is not configured", ErrProviderNotReady)
	}

	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.cfg.Endpoint.AuthURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderNotReady, err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderNotReady, err)
	}
	_ = resp.Body.Close()
	return nil
}

type callbackResult struct {
	code string
	err  error
}

// RequestAccessToken runs the interactive flow and blocks until the
// provider redirects back to the loopback listener. The user cancelling,
// a provider-side error, and an exchange failure all surface as
// ErrAuthorizationFailed.
func (p *OAuthProvider) RequestAccessToken(ctx context.Context) (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthorizationFailed, err)
	}
	defer ln.Close()

	state := uuid.NewString()
	cfg := *p.cfg
	cfg.RedirectURL = fmt.Sprintf("http://%s/callback", ln.Addr().String())

	results := make(chan callbackResult, 1)
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/callback" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if e := q.Get("error"); e != "" {
			fmt.Fprintln(w, "Authorization failed. You can close this window.")
			results <- callbackResult{err: fmt.Errorf("provider error: %s", e)}
			return
		}
		if q.Get("state") != state {
			fmt.Fprintln(w, "Authorization failed. You can close this window.")
			results <- callbackResult{err: fmt.Errorf("state mismatch")}
			return
		}
		fmt.Fprintln(w, "Signed in. You can close this window.")
		results <- callbackResult{code: q.Get("code")}
	})}
	go func() { _ = srv.Serve(ln) }()
	defer srv.Close()

	if err := p.openURL(cfg.AuthCodeURL(state, oauth2.AccessTypeOnline)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthorizationFailed, err)
	}

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", ErrAuthorizationFailed, ctx.Err())
	case res := <-results:
		if res.err != nil {
			return "", fmt.Errorf("%w: %v", ErrAuthorizationFailed, res.err)
		}
		tctx := context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
		tok, err := cfg.Exchange(tctx, res.code)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrAuthorizationFailed, err)
		}
		return tok.AccessToken, nil
	}
}
