package tokens

import (
	"context"
	"errors"
)

// ErrStoreUnavailable indicates the backing persistence layer could not be
// read or written at all. It is distinct from a record simply not existing:
// a missing record is reported as (nil, false, nil), never as an error.
var ErrStoreUnavailable = errors.New("tokens: token store unavailable")

// Store persists credential records keyed by the identity tuple
// (client name, authorization flow, client ID, user identifier).
//
// Contract:
//   - Find with an empty userIdentifier resolves to the most recently
//     accessed record matching the (clientName, flow, clientID) triple.
//   - A successful Find touches the record's LastAccessed timestamp so that
//     repeated ambiguous lookups keep returning the account in active use.
//   - Absence of a record is (nil, false, nil). An error return means the
//     store itself failed and says nothing about whether the record exists.
//   - Upsert replaces any record with the same identity wholesale and stamps
//     LastAccessed.
//   - Remove deletes every record matching the filter and reports how many
//     were deleted. An empty filter matches everything.
//   - List returns redacted summaries ordered most recently accessed first.
//
// Returned records are copies; callers may mutate them freely.
type Store interface {
	Find(ctx context.Context, clientName, flow, clientID, userIdentifier string) (*Record, bool, error)
	Upsert(ctx context.Context, rec *Record) error
	Remove(ctx context.Context, f Filter) (int, error)
	List(ctx context.Context, f Filter) ([]Summary, error)
}

// selectRecord picks the record matching the lookup tuple from a snapshot of
// records. When userIdentifier is empty the most recently accessed match of
// the triple wins. The returned pointer aliases the snapshot entry.
func selectRecord(records []*Record, clientName, flow, clientID, userIdentifier string) *Record {
	var best *Record
	for _, rec := range records {
		if rec.ClientName != clientName || rec.AuthorizationFlow != flow || rec.ClientID != clientID {
			continue
		}
		if userIdentifier != "" {
			if rec.UserIdentifier == userIdentifier {
				return rec
			}
			continue
		}
		if best == nil || rec.LastAccessed.After(best.LastAccessed) {
			best = rec
		}
	}
	return best
}
