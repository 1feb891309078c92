package qobuz

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// TracksAPI groups track endpoints.
type TracksAPI struct {
	client *Client
}

// Audio format identifiers accepted by the playback endpoint.
const (
	FormatMP3320   = 5  // constant 320 kbps MP3
	FormatCD       = 6  // 16-bit / 44.1 kHz FLAC
	FormatHiRes96  = 7  // up to 24-bit / 96 kHz FLAC
	FormatHiRes192 = 27 // up to 24-bit / 192 kHz FLAC
)

// PlaybackInfo is the playback descriptor for one track.
type PlaybackInfo struct {
	TrackID      int64   `json:"track_id"`
	URL          string  `json:"url"`
	FormatID     int     `json:"format_id"`
	MimeType     string  `json:"mime_type"`
	BitDepth     int     `json:"bit_depth"`
	SamplingRate float64 `json:"sampling_rate"`
	Duration     int     `json:"duration"`
	Sample       bool    `json:"sample"`
}

// GetTrack returns catalog metadata for a track.
func (t *TracksAPI) GetTrack(ctx context.Context, trackID int64) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("track_id", strconv.FormatInt(trackID, 10))
	return t.client.cachedGet(ctx, "track.get", "track/get", params)
}

// GetPlaybackInfo returns the playback URL and format details for a track.
// The endpoint is signed; playback descriptors are treated as static since
// format capabilities do not change for a given release.
func (t *TracksAPI) GetPlaybackInfo(ctx context.Context, trackID int64, formatID int) (*PlaybackInfo, error) {
	switch formatID {
	case FormatMP3320, FormatCD, FormatHiRes96, FormatHiRes192:
	default:
		return nil, fmt.Errorf("qobuz: invalid format id %d (valid: 5, 6, 7, 27)", formatID)
	}

	params := url.Values{}
	params.Set("track_id", strconv.FormatInt(trackID, 10))
	params.Set("format_id", strconv.Itoa(formatID))

	data, err := t.client.cached(ctx, "track.playback", params,
		func(ctx context.Context) ([]byte, error) {
			return t.client.getSigned(ctx, "track/getFileUrl", params)
		})
	if err != nil {
		return nil, err
	}
	var info PlaybackInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("qobuz: decoding playback info: %w", err)
	}
	return &info, nil
}
