// internal/api/users.go
// User profile endpoints.

package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/imadgeboyega/kiekky-client/internal/entity"
)

// GetProfile returns a user's public profile by username. A missing profile
// is not an error: the result is (nil, nil) and callers render an empty
// state.
func (c *Client) GetProfile(ctx context.Context, username string) (*entity.User, error) {
	path := "/users/profile/" + url.PathEscape(username)
	var out entity.User
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}
