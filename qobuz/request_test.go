package qobuz

import (
	"net/url"
	"testing"
)

func TestSignRequestDeterministic(t *testing.T) {
	params := url.Values{}
	params.Set("track_id", "344521217")
	params.Set("format_id", "5")

	a := signRequest("track/getFileUrl", params, "1700000000", "secret")
	b := signRequest("track/getFileUrl", params, "1700000000", "secret")
	if a != b {
		t.Fatalf("signature not deterministic: %q vs %q", a, b)
	}
	if len(a) != 32 {
		t.Errorf("signature length = %d, want 32 hex chars", len(a))
	}
}

func TestSignRequestParameterOrderIndependent(t *testing.T) {
	first := url.Values{}
	first.Set("format_id", "5")
	first.Set("track_id", "344521217")

	second := url.Values{}
	second.Set("track_id", "344521217")
	second.Set("format_id", "5")

	if signRequest("track/getFileUrl", first, "1700000000", "s") !=
		signRequest("track/getFileUrl", second, "1700000000", "s") {
		t.Error("signature depends on parameter insertion order")
	}
}

func TestSignRequestSensitivity(t *testing.T) {
	params := url.Values{}
	params.Set("track_id", "344521217")
	base := signRequest("track/getFileUrl", params, "1700000000", "secret")

	altParams := url.Values{}
	altParams.Set("track_id", "344521218")

	tests := []struct {
		name string
		got  string
	}{
		{"different endpoint", signRequest("track/get", params, "1700000000", "secret")},
		{"different params", signRequest("track/getFileUrl", altParams, "1700000000", "secret")},
		{"different timestamp", signRequest("track/getFileUrl", params, "1700000001", "secret")},
		{"different secret", signRequest("track/getFileUrl", params, "1700000000", "other")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got == base {
				t.Error("signature did not change")
			}
		})
	}
}

func TestFlattenParams(t *testing.T) {
	params := url.Values{}
	params.Set("album_id", "0075679933652")
	params.Add("tag", "a")
	params.Add("tag", "b")

	args := flattenParams(params)
	if args["album_id"] != "0075679933652" {
		t.Errorf("album_id = %v", args["album_id"])
	}
	vals, ok := args["tag"].([]any)
	if !ok || len(vals) != 2 || vals[0] != "a" || vals[1] != "b" {
		t.Errorf("tag = %v", args["tag"])
	}
}
