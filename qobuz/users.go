package qobuz

import (
	"context"
	"encoding/json"
	"net/url"
)

// UsersAPI groups endpoints about the authenticated user.
type UsersAPI struct {
	client *Client
}

// GetMyProfile returns the authenticated user's account profile.
func (u *UsersAPI) GetMyProfile(ctx context.Context) (json.RawMessage, error) {
	if err := u.client.requireAuth(); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("user_id", u.client.UserIdentifier())
	return u.client.cachedGet(ctx, "user.get", "user/get", params)
}

// GetMyLastUpdates returns change counters for the user's library, used to
// detect library updates without fetching everything.
func (u *UsersAPI) GetMyLastUpdates(ctx context.Context) (json.RawMessage, error) {
	if err := u.client.requireAuth(); err != nil {
		return nil, err
	}
	return u.client.cachedGet(ctx, "user.last-updates", "user/lastUpdate", url.Values{})
}
