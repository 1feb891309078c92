package qobuz

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/bbye98/minim-sub004/cache"
)

// FavoritesAPI groups the user's library (favorites) endpoints.
//
// Mutations bust the cached reads: after Save or RemoveSaved, the next
// GetSaved or GetSavedIDs call goes back to the API instead of serving a
// snapshot from before the mutation.
type FavoritesAPI struct {
	client *Client
}

// FavoriteIDs names content to save or remove. Any subset of the fields may
// be set, but at least one must be.
type FavoriteIDs struct {
	AlbumIDs  []string
	ArtistIDs []int64
	TrackIDs  []int64
}

func (f FavoriteIDs) empty() bool {
	return len(f.AlbumIDs) == 0 && len(f.ArtistIDs) == 0 && len(f.TrackIDs) == 0
}

func (f FavoriteIDs) form() url.Values {
	form := url.Values{}
	if len(f.AlbumIDs) > 0 {
		form.Set("album_ids", strings.Join(f.AlbumIDs, ","))
	}
	if len(f.ArtistIDs) > 0 {
		form.Set("artist_ids", joinInt64s(f.ArtistIDs))
	}
	if len(f.TrackIDs) > 0 {
		form.Set("track_ids", joinInt64s(f.TrackIDs))
	}
	return form
}

func joinInt64s(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// GetSaved returns the user's saved content of one type ("albums",
// "artists", "tracks"), paginated.
func (f *FavoritesAPI) GetSaved(ctx context.Context, kind string, limit, offset int) (json.RawMessage, error) {
	if err := f.client.requireAuth(); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("type", kind)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	return f.client.cachedGet(ctx, "favorites.get", "favorite/getUserFavorites", params)
}

// GetSavedIDs returns the IDs of everything the user has saved.
func (f *FavoritesAPI) GetSavedIDs(ctx context.Context) (json.RawMessage, error) {
	if err := f.client.requireAuth(); err != nil {
		return nil, err
	}
	return f.client.cachedGet(ctx, "favorites.ids", "favorite/getUserFavoriteIds", url.Values{})
}

// Save adds content to the user's favorites and invalidates the cached
// favorites reads.
func (f *FavoritesAPI) Save(ctx context.Context, ids FavoriteIDs) error {
	return f.mutate(ctx, "favorite/create", ids)
}

// RemoveSaved removes content from the user's favorites and invalidates the
// cached favorites reads.
func (f *FavoritesAPI) RemoveSaved(ctx context.Context, ids FavoriteIDs) error {
	return f.mutate(ctx, "favorite/delete", ids)
}

func (f *FavoritesAPI) mutate(ctx context.Context, endpoint string, ids FavoriteIDs) error {
	if err := f.client.requireAuth(); err != nil {
		return err
	}
	if ids.empty() {
		return fmt.Errorf("qobuz: at least one of album, artist, or track IDs must be specified")
	}
	if _, err := f.client.postForm(ctx, endpoint, ids.form()); err != nil {
		return err
	}

	// The mutation makes every cached favorites read of this account stale,
	// whatever its pagination arguments were.
	owner := f.client.cacheOwner(cache.TierUser)
	if err := f.client.mw.InvalidateMethod(ctx, owner, "favorites.get"); err != nil {
		return err
	}
	return f.client.mw.InvalidateMethod(ctx, owner, "favorites.ids")
}
