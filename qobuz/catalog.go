package qobuz

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// CatalogAPI groups catalog read endpoints. All of them are cached; the
// tier reflects how quickly the underlying data drifts.
type CatalogAPI struct {
	client *Client
}

// GetAlbum returns catalog metadata for an album.
func (a *CatalogAPI) GetAlbum(ctx context.Context, albumID string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("album_id", albumID)
	return a.client.cachedGet(ctx, "album.get", "album/get", params)
}

// GetArtist returns catalog metadata for an artist. Popularity-derived
// fields drift faster than the rest of the catalog, hence the shorter tier.
func (a *CatalogAPI) GetArtist(ctx context.Context, artistID int64) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("artist_id", strconv.FormatInt(artistID, 10))
	return a.client.cachedGet(ctx, "artist.get", "artist/get", params)
}

// GetArtistReleases returns an artist's releases, paginated.
func (a *CatalogAPI) GetArtistReleases(ctx context.Context, artistID int64, limit, offset int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("artist_id", strconv.FormatInt(artistID, 10))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	return a.client.cachedGet(ctx, "artist.releases", "artist/getReleasesList", params)
}

// GetLabel returns catalog metadata for a label.
func (a *CatalogAPI) GetLabel(ctx context.Context, labelID int64) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("label_id", strconv.FormatInt(labelID, 10))
	return a.client.cachedGet(ctx, "label.get", "label/get", params)
}

// GetPlaylist returns a playlist with its tracks, paginated.
func (a *CatalogAPI) GetPlaylist(ctx context.Context, playlistID int64, limit, offset int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("playlist_id", strconv.FormatInt(playlistID, 10))
	params.Set("extra", "tracks")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	return a.client.cachedGet(ctx, "playlist.get", "playlist/get", params)
}

// GetGenre returns a genre. Genres essentially never change.
func (a *CatalogAPI) GetGenre(ctx context.Context, genreID int64) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("genre_id", strconv.FormatInt(genreID, 10))
	return a.client.cachedGet(ctx, "genre.get", "genre/get", params)
}

// GetGenres lists genres, optionally under a parent genre.
func (a *CatalogAPI) GetGenres(ctx context.Context, parentID int64) (json.RawMessage, error) {
	params := url.Values{}
	if parentID != 0 {
		params.Set("parent_id", strconv.FormatInt(parentID, 10))
	}
	return a.client.cachedGet(ctx, "genre.list", "genre/list", params)
}

// GetFeaturedAlbums returns a featured-album rail (e.g. "new-releases",
// "press-awards"), paginated.
func (a *CatalogAPI) GetFeaturedAlbums(ctx context.Context, kind string, limit, offset int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("type", kind)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	return a.client.cachedGet(ctx, "album.featured", "album/getFeatured", params)
}
