package cache

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryCache_GetSetDelete(t *testing.T) {
	c := NewMemoryCache(0)
	ctx := context.Background()

	val, ok := c.Get(ctx, "nonexistent")
	if ok || val != nil {
		t.Error("Get on empty cache should return (nil, false)")
	}

	key := "test-key"
	value := []byte("test-value")
	if err := c.Set(ctx, key, value, 5*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := c.Get(ctx, key)
	if !ok {
		t.Error("Get after Set should return ok=true")
	}
	if !bytes.Equal(got, value) {
		t.Errorf("Get returned %q, want %q", got, value)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := c.Get(ctx, key); ok {
		t.Error("Get after Delete should return ok=false")
	}

	// Delete is idempotent
	if err := c.Delete(ctx, "nonexistent"); err != nil {
		t.Errorf("Delete on non-existent key should not error, got: %v", err)
	}
}

func TestMemoryCache_LazyExpiry(t *testing.T) {
	c := NewMemoryCache(0)
	ctx := context.Background()

	now := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "k", []byte("v"), 10*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Within the TTL window.
	now = now.Add(9 * time.Minute)
	if _, ok := c.Get(ctx, "k"); !ok {
		t.Error("entry expired early")
	}

	// Past expiry: invalid entries are indistinguishable from absent ones.
	now = now.Add(2 * time.Minute)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("entry still valid past its TTL")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not collected on read, Len = %d", c.Len())
	}
}

func TestMemoryCache_ExpiryBoundary(t *testing.T) {
	c := NewMemoryCache(0)
	ctx := context.Background()

	now := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)

	// Valid iff now < expires_at: at exactly expires_at the entry is gone.
	now = now.Add(time.Minute)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("entry valid at exactly expires_at, want expired")
	}
}

func TestMemoryCache_LRUEviction(t *testing.T) {
	c := NewMemoryCache(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_ = c.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), time.Hour)
	}

	// Touch k0 so k1 becomes the least recently used.
	if _, ok := c.Get(ctx, "k0"); !ok {
		t.Fatal("k0 missing before eviction")
	}

	_ = c.Set(ctx, "k3", []byte("v"), time.Hour)

	if _, ok := c.Get(ctx, "k1"); ok {
		t.Error("least recently used entry k1 survived eviction")
	}
	for _, k := range []string{"k0", "k2", "k3"} {
		if _, ok := c.Get(ctx, k); !ok {
			t.Errorf("entry %s evicted unexpectedly", k)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}
}

func TestMemoryCache_SetReplacesWholesale(t *testing.T) {
	c := NewMemoryCache(0)
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("old"), time.Hour)
	_ = c.Set(ctx, "k", []byte("new"), time.Hour)

	got, ok := c.Get(ctx, "k")
	if !ok || !bytes.Equal(got, []byte("new")) {
		t.Errorf("Get after overwrite = %q, want %q", got, "new")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d after overwrite, want 1", c.Len())
	}
}

func TestMemoryCache_ZeroTTL(t *testing.T) {
	c := NewMemoryCache(0)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set with TTL=0 failed: %v", err)
	}
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("Set with TTL=0 should not store")
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache(0)
	ctx := context.Background()

	_ = c.Set(ctx, "a", []byte("1"), time.Hour)
	_ = c.Set(ctx, "b", []byte("2"), time.Hour)

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", c.Len())
	}

	// Clear is idempotent.
	if err := c.Clear(ctx); err != nil {
		t.Errorf("second Clear errored: %v", err)
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := NewMemoryCache(0)
	ctx := context.Background()

	const numGoroutines = 100
	const opsPerGoroutine = 1000

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < opsPerGoroutine; j++ {
				switch j % 4 {
				case 0:
					_ = c.Set(ctx, "shared", []byte("value"), 5*time.Minute)
				case 1:
					_, _ = c.Get(ctx, "shared")
				case 2:
					_ = c.Delete(ctx, "shared")
				case 3:
					_ = c.Clear(ctx)
				}
			}
		}()
	}

	wg.Wait()
}

// Verify MemoryCache implements Cache interface at compile time
var _ Cache = (*MemoryCache)(nil)
