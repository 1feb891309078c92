package qobuz

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// SearchAPI groups search endpoints. Search results are cached on the
// shortest tier: rankings move quickly and stale results are visible to
// users.
type SearchAPI struct {
	client *Client
}

// Search queries the whole catalog, paginated.
func (s *SearchAPI) Search(ctx context.Context, query string, limit, offset int) (json.RawMessage, error) {
	return s.search(ctx, "catalog.search", "catalog/search", query, limit, offset)
}

// SearchAlbums queries albums only.
func (s *SearchAPI) SearchAlbums(ctx context.Context, query string, limit, offset int) (json.RawMessage, error) {
	return s.search(ctx, "album.search", "album/search", query, limit, offset)
}

// SearchArtists queries artists only.
func (s *SearchAPI) SearchArtists(ctx context.Context, query string, limit, offset int) (json.RawMessage, error) {
	return s.search(ctx, "artist.search", "artist/search", query, limit, offset)
}

// SearchTracks queries tracks only.
func (s *SearchAPI) SearchTracks(ctx context.Context, query string, limit, offset int) (json.RawMessage, error) {
	return s.search(ctx, "track.search", "track/search", query, limit, offset)
}

// MostPopular returns the most popular results for a query by content type
// ("albums", "artists", "tracks").
func (s *SearchAPI) MostPopular(ctx context.Context, query, kind string, limit, offset int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("type", kind)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	return s.client.cachedGet(ctx, "most-popular.get", "most-popular/get", params)
}

func (s *SearchAPI) search(ctx context.Context, method, endpoint, query string, limit, offset int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	return s.client.cachedGet(ctx, method, endpoint, params)
}
