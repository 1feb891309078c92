package tokens

import (
	"context"
	"time"
)

// Database is the credential manager clients talk to. It layers the bypass
// marker, JWT expiry inference, and redacted listings over an injected
// Store, so the same behavior works against memory, a file, or any other
// backend.
type Database struct {
	store Store
}

// NewDatabase wraps a Store. The store must be non-nil.
func NewDatabase(store Store) *Database {
	return &Database{store: store}
}

// GetToken resolves a stored credential record for the identity tuple.
//
// When userIdentifier carries the bypass marker ("~" prefix, or exactly
// "~"), the lookup is skipped and (nil, false, nil) is returned so the
// caller proceeds straight to fresh authorization. The marker is a
// per-lookup directive and never reaches the store.
//
// An empty userIdentifier (after marker stripping) resolves to the most
// recently accessed account for the (clientName, flow, clientID) triple.
func (d *Database) GetToken(ctx context.Context, clientName, flow, clientID, userIdentifier string) (*Record, bool, error) {
	identifier, bypass := SplitBypass(userIdentifier)
	if bypass {
		return nil, false, nil
	}
	return d.store.Find(ctx, clientName, flow, clientID, identifier)
}

// AddToken persists a credential record, replacing any existing record with
// the same identity. The bypass marker, if present on the user identifier,
// is stripped before persisting. When the record has no explicit expiry and
// the access token is a JWT, the expiry is inferred from the exp claim.
func (d *Database) AddToken(ctx context.Context, rec *Record) error {
	clone := rec.Clone()
	clone.UserIdentifier, _ = SplitBypass(clone.UserIdentifier)
	if clone.ExpiresAt == nil {
		if exp, ok := ExpiryFromAccessToken(clone.AccessToken); ok {
			clone.ExpiresAt = &exp
		}
	}
	return d.store.Upsert(ctx, clone)
}

// GetTokens lists redacted summaries of stored records matching the filter,
// most recently accessed first. An empty filter lists everything.
func (d *Database) GetTokens(ctx context.Context, f Filter) ([]Summary, error) {
	return d.store.List(ctx, f)
}

// RemoveTokens deletes stored records matching the filter and reports how
// many were deleted. An empty filter removes EVERY record; pass at least
// one constraint unless a full wipe is intended.
func (d *Database) RemoveTokens(ctx context.Context, f Filter) (int, error) {
	return d.store.Remove(ctx, f)
}

// Expired reports whether a record's access token is past its expiry at the
// given instant. Records with no known expiry are treated as still valid.
func Expired(rec *Record, now time.Time) bool {
	if rec == nil {
		return true
	}
	if rec.ExpiresAt == nil {
		return false
	}
	return !now.Before(*rec.ExpiresAt)
}
