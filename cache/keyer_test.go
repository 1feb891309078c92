package cache

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultKeyer_Deterministic(t *testing.T) {
	keyer := NewDefaultKeyer()

	key1, err := keyer.Key("qobuz:app1", "tracks.get", map[string]any{"track_id": 12345, "extra": "albums"})
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}
	key2, err := keyer.Key("qobuz:app1", "tracks.get", map[string]any{"extra": "albums", "track_id": 12345})
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}

	if key1 != key2 {
		t.Errorf("same arguments in different order produced different keys:\n%s\n%s", key1, key2)
	}
	if !strings.HasPrefix(key1, "cache:qobuz:app1:tracks.get:") {
		t.Errorf("unexpected key format: %s", key1)
	}
}

func TestDefaultKeyer_ArgumentSensitivity(t *testing.T) {
	keyer := NewDefaultKeyer()

	tests := []struct {
		name  string
		a, b  any
		owner string
	}{
		{"different values", map[string]any{"id": 1}, map[string]any{"id": 2}, "c1"},
		{"different types", map[string]any{"id": "1"}, map[string]any{"id": 1}, "c1"},
		{"nil vs empty map", nil, map[string]any{}, "c1"},
		{"nested difference", map[string]any{"f": []any{1, 2}}, map[string]any{"f": []any{2, 1}}, "c1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyA, err := keyer.Key(tt.owner, "m", tt.a)
			if err != nil {
				t.Fatalf("Key(a) failed: %v", err)
			}
			keyB, err := keyer.Key(tt.owner, "m", tt.b)
			if err != nil {
				t.Fatalf("Key(b) failed: %v", err)
			}
			if keyA == keyB {
				t.Errorf("distinct arguments collided on key %s", keyA)
			}
		})
	}
}

func TestDefaultKeyer_OwnerAndMethodIsolation(t *testing.T) {
	keyer := NewDefaultKeyer()
	args := map[string]any{"id": 42}

	k1, _ := keyer.Key("clientA", "albums.get", args)
	k2, _ := keyer.Key("clientB", "albums.get", args)
	k3, _ := keyer.Key("clientA", "artists.get", args)

	if k1 == k2 {
		t.Error("different owners produced the same key")
	}
	if k1 == k3 {
		t.Error("different methods produced the same key")
	}
}

func TestDefaultKeyer_Unkeyable(t *testing.T) {
	keyer := NewDefaultKeyer()

	tests := []struct {
		name string
		args any
	}{
		{"function value", map[string]any{"fn": func() {}}},
		{"channel value", make(chan int)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := keyer.Key("c1", "m", tt.args)
			if !errors.Is(err, ErrUnkeyable) {
				t.Errorf("Key(%s) error = %v, want ErrUnkeyable", tt.name, err)
			}
		})
	}
}

func TestDefaultKeyer_RequiresIdentity(t *testing.T) {
	keyer := NewDefaultKeyer()

	if _, err := keyer.Key("", "m", nil); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Key with empty owner error = %v, want ErrInvalidKey", err)
	}
	if _, err := keyer.Key("c1", "", nil); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Key with empty method error = %v, want ErrInvalidKey", err)
	}
}

func TestDefaultKeyer_StructArgs(t *testing.T) {
	keyer := NewDefaultKeyer()

	type args struct {
		Query  string
		Limit  int
		Offset int
	}

	k1, err := keyer.Key("c1", "search", args{Query: "miles davis", Limit: 10})
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}
	k2, _ := keyer.Key("c1", "search", args{Query: "miles davis", Limit: 10})
	k3, _ := keyer.Key("c1", "search", args{Query: "miles davis", Limit: 20})

	if k1 != k2 {
		t.Error("equal struct arguments produced different keys")
	}
	if k1 == k3 {
		t.Error("different struct arguments collided")
	}
}
