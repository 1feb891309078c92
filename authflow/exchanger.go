package authflow

import (
	"context"
	"time"
)

// Grant is the material produced by a successful authorization exchange.
type Grant struct {
	// UserIdentifier names the account the grant belongs to. May be empty
	// for flows without a user account.
	UserIdentifier string

	TokenType    string
	AccessToken  string
	RefreshToken string
	Scopes       []string

	// ClientSecret is the application secret that was validated during the
	// exchange, for providers whose secrets are discovered by probing. It
	// persists with the record so later sessions skip the probe.
	ClientSecret string

	// ExpiresAt is the token expiry if the provider reported one. Nil
	// lets the store infer it from the access token where possible.
	ExpiresAt *time.Time

	// Extras carries provider-specific material that must survive next to
	// the token (e.g. a numeric account ID).
	Extras map[string]any
}

// Exchanger performs a fresh authorization against the provider. For an
// interactive flow this is where the user logs in; for a machine flow it is
// a direct credential exchange.
type Exchanger interface {
	Exchange(ctx context.Context) (*Grant, error)
}

// ExchangerFunc adapts a function to the Exchanger interface.
type ExchangerFunc func(ctx context.Context) (*Grant, error)

// Exchange implements Exchanger.
func (f ExchangerFunc) Exchange(ctx context.Context) (*Grant, error) {
	return f(ctx)
}
