package cache

import (
	"fmt"
	"time"
)

// Tier names a cache-expiry policy shared by many unrelated cached methods.
// Every cached method declares exactly one tier at definition time; the
// tier-to-duration mapping is process-wide configuration.
type Tier string

// The closed set of tiers.
const (
	// TierStatic covers data that effectively never changes (genre lists,
	// artwork metadata). Entries outlive any realistic process lifetime.
	TierStatic Tier = "static"

	// TierDaily covers data refreshed on a daily cadence (editorial picks,
	// charts).
	TierDaily Tier = "daily"

	// TierCatalog covers catalog metadata (albums, artists, labels).
	TierCatalog Tier = "catalog"

	// TierPopularity covers popularity-derived data (rankings, counts).
	TierPopularity Tier = "popularity"

	// TierSearch covers search results.
	TierSearch Tier = "search"

	// TierUser covers user-owned state (favorites, profile), which can
	// mutate externally at any moment and so gets the shortest TTL.
	TierUser Tier = "user"
)

var defaultTTLs = map[Tier]time.Duration{
	TierStatic:     30 * 24 * time.Hour,
	TierDaily:      24 * time.Hour,
	TierCatalog:    12 * time.Hour,
	TierPopularity: 6 * time.Hour,
	TierSearch:     30 * time.Minute,
	TierUser:       10 * time.Minute,
}

// Tiers maps tier names to time-to-live durations. It is configured once at
// construction and read-only afterwards; swap the whole registry in tests.
type Tiers struct {
	ttls map[Tier]time.Duration
}

// DefaultTiers returns the registry with the default durations.
func DefaultTiers() *Tiers {
	return &Tiers{ttls: defaultTTLs}
}

// NewTiers returns a registry with the default durations overridden by the
// given map. Unknown tier names fail with ErrUnknownTier; non-positive
// durations are rejected.
func NewTiers(overrides map[Tier]time.Duration) (*Tiers, error) {
	ttls := make(map[Tier]time.Duration, len(defaultTTLs))
	for tier, ttl := range defaultTTLs {
		ttls[tier] = ttl
	}
	for tier, ttl := range overrides {
		if _, ok := ttls[tier]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("cache: tier %q requires a positive duration, got %v", tier, ttl)
		}
		ttls[tier] = ttl
	}
	return &Tiers{ttls: ttls}, nil
}

// Resolve returns the duration for a tier, or ErrUnknownTier for names
// outside the registered set.
func (t *Tiers) Resolve(tier Tier) (time.Duration, error) {
	ttl, ok := t.ttls[tier]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	return ttl, nil
}
