package qobuz

import (
	"context"

	"github.com/bbye98/minim-sub004/tokens"
)

// TokenFilter narrows token management operations to particular accounts or
// application IDs. Zero value matches every record this client owns.
type TokenFilter struct {
	AppIDs          []string
	UserIdentifiers []string
}

func (f TokenFilter) storeFilter() tokens.Filter {
	return tokens.Filter{
		ClientNames:        []string{ClientName},
		AuthorizationFlows: []string{FlowPassword},
		ClientIDs:          f.AppIDs,
		UserIdentifiers:    f.UserIdentifiers,
	}
}

// GetTokens lists redacted summaries of this client's stored credential
// records, most recently used first.
func GetTokens(ctx context.Context, db *tokens.Database, f TokenFilter) ([]tokens.Summary, error) {
	return db.GetTokens(ctx, f.storeFilter())
}

// RemoveTokens deletes this client's stored credential records matching the
// filter and reports how many were deleted. The zero filter removes every
// record belonging to this client; records of other clients sharing the
// database are never touched.
func RemoveTokens(ctx context.Context, db *tokens.Database, f TokenFilter) (int, error) {
	return db.RemoveTokens(ctx, f.storeFilter())
}
