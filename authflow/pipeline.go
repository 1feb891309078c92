package authflow

import (
	"context"
	"fmt"
	"time"

	"github.com/bbye98/minim-sub004/tokens"
)

// Source names where a resolved credential came from.
type Source string

const (
	// SourceStatic is material supplied explicitly or via the environment.
	SourceStatic Source = "static"
	// SourceStored is a record retrieved from the token store.
	SourceStored Source = "stored"
	// SourceFresh is a record minted by a fresh authorization exchange.
	SourceFresh Source = "fresh"
)

// Credential is a resolved credential record together with its provenance.
type Credential struct {
	Record *tokens.Record
	Source Source
}

// Pipeline resolves credentials for one (client name, flow, client ID)
// identity. Resolution order is fixed: static material wins, then the token
// store, then a fresh exchange whose result is persisted for next time.
type Pipeline struct {
	db         *tokens.Database
	clientName string
	flow       string
	clientID   string

	static    *tokens.Record
	exchanger Exchanger
	now       func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithStatic short-circuits resolution with explicitly supplied material
// (typically assembled from environment variables). Static credentials are
// never persisted to the store.
func WithStatic(rec *tokens.Record) Option {
	return func(p *Pipeline) { p.static = rec }
}

// WithExchanger installs the fresh-authorization path.
func WithExchanger(e Exchanger) Option {
	return func(p *Pipeline) { p.exchanger = e }
}

// NewPipeline builds a resolution pipeline over the given token database.
func NewPipeline(db *tokens.Database, clientName, flow, clientID string, opts ...Option) *Pipeline {
	p := &Pipeline{
		db:         db,
		clientName: clientName,
		flow:       flow,
		clientID:   clientID,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Resolve produces a usable credential for the user identifier.
//
// The identifier may carry the bypass marker ("~" prefix), which skips the
// store lookup and forces a fresh exchange; the marker never reaches the
// persisted record. A fresh record is stored under the caller's identifier
// with the marker stripped; only when the caller supplied no identifier
// does the exchange's resolved identifier name the record. Store failures
// (tokens.ErrStoreUnavailable) propagate unchanged so callers can tell an
// unreachable store from an absent record.
func (p *Pipeline) Resolve(ctx context.Context, userIdentifier string) (*Credential, error) {
	if p.static != nil {
		return &Credential{Record: p.static.Clone(), Source: SourceStatic}, nil
	}

	rec, ok, err := p.db.GetToken(ctx, p.clientName, p.flow, p.clientID, userIdentifier)
	if err != nil {
		return nil, err
	}
	if ok && !tokens.Expired(rec, p.now()) {
		return &Credential{Record: rec, Source: SourceStored}, nil
	}

	if p.exchanger == nil {
		return nil, fmt.Errorf("%w: nothing stored and %v", ErrNoValidCredential, ErrNoExchanger)
	}
	grant, err := p.exchanger.Exchange(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: authorization exchange failed: %v", ErrNoValidCredential, err)
	}

	// The caller's identifier, marker stripped, names the account the
	// fresh record is stored under. The provider-resolved identifier is
	// only a fallback for callers that supplied none.
	identifier, _ := tokens.SplitBypass(userIdentifier)
	if identifier == "" {
		identifier = grant.UserIdentifier
	}
	fresh := &tokens.Record{
		Identity: tokens.Identity{
			ClientName:        p.clientName,
			AuthorizationFlow: p.flow,
			ClientID:          p.clientID,
			UserIdentifier:    identifier,
		},
		ClientSecret: grant.ClientSecret,
		TokenType:    grant.TokenType,
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		Scopes:       grant.Scopes,
		ExpiresAt:    grant.ExpiresAt,
		Extras:       grant.Extras,
	}
	if err := p.db.AddToken(ctx, fresh); err != nil {
		return nil, err
	}
	return &Credential{Record: fresh.Clone(), Source: SourceFresh}, nil
}

// Reauthenticate forces a fresh exchange for the identifier regardless of
// what the store holds, by applying the bypass marker internally.
func (p *Pipeline) Reauthenticate(ctx context.Context, userIdentifier string) (*Credential, error) {
	identifier, _ := tokens.SplitBypass(userIdentifier)
	return p.Resolve(ctx, tokens.BypassMarker+identifier)
}
