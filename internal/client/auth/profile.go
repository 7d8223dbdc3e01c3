package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/jrnl/internal/client/models"
)

// FetchProfile retrieves basic profile fields with the freshly issued
// credential. A session is not complete until this call succeeds; a
// failure here counts as an authorization failure, not a remote I/O one.
func FetchProfile(ctx context.Context, httpClient *http.Client, endpoint, accessToken string) (models.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthorizationFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := httpClient.Do(req)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthorizationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.User{}, fmt.Errorf("%w: profile fetch returned status %d", ErrAuthorizationFailed, resp.StatusCode)
	}

	var u models.User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthorizationFailed, err)
	}
	return u, nil
}
