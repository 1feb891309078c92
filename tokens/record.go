package tokens

import (
	"strings"
	"time"
)

// BypassMarker is the reserved prefix on a user identifier that skips token
// retrieval and forces fresh authentication. The marker is always stripped
// before a record is persisted.
const BypassMarker = "~"

// SplitBypass strips the bypass marker from a user identifier and reports
// whether it was present.
func SplitBypass(userIdentifier string) (string, bool) {
	if strings.HasPrefix(userIdentifier, BypassMarker) {
		return userIdentifier[len(BypassMarker):], true
	}
	return userIdentifier, false
}

// Identity is the tuple a credential record is keyed by. UserIdentifier may
// be empty for flows without a user account (e.g. client credentials).
type Identity struct {
	ClientName        string `json:"client_name"`
	AuthorizationFlow string `json:"authorization_flow"`
	ClientID          string `json:"client_id"`
	UserIdentifier    string `json:"user_identifier,omitempty"`
}

// Record is the persisted unit: identity tuple, secret material, and opaque
// provider-specific extras. Records are owned exclusively by the store;
// callers receive copies and hold only the transient fields they need.
type Record struct {
	Identity

	ClientSecret string         `json:"client_secret,omitempty"`
	RedirectURI  string         `json:"redirect_uri,omitempty"`
	Scopes       []string       `json:"scopes,omitempty"`
	TokenType    string         `json:"token_type,omitempty"`
	AccessToken  string         `json:"access_token,omitempty"`
	RefreshToken string         `json:"refresh_token,omitempty"`
	ExpiresAt    *time.Time     `json:"expires_at,omitempty"`
	Extras       map[string]any `json:"extras,omitempty"`
	LastAccessed time.Time      `json:"last_accessed"`
}

// Clone returns a deep-enough copy so that store state cannot be mutated
// through a returned record.
func (r *Record) Clone() *Record {
	c := *r
	if r.Scopes != nil {
		c.Scopes = append([]string(nil), r.Scopes...)
	}
	if r.ExpiresAt != nil {
		exp := *r.ExpiresAt
		c.ExpiresAt = &exp
	}
	if r.Extras != nil {
		c.Extras = make(map[string]any, len(r.Extras))
		for k, v := range r.Extras {
			c.Extras[k] = v
		}
	}
	return &c
}

// Summary is the projection of a record safe for display: secret material
// (access token, refresh token, client secret) is excluded.
type Summary struct {
	Identity

	Scopes       []string   `json:"scopes,omitempty"`
	TokenType    string     `json:"token_type,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	LastAccessed time.Time  `json:"last_accessed"`
}

// Summary returns the display-safe projection of the record.
func (r *Record) Summary() Summary {
	s := Summary{
		Identity:     r.Identity,
		TokenType:    r.TokenType,
		LastAccessed: r.LastAccessed,
	}
	if r.Scopes != nil {
		s.Scopes = append([]string(nil), r.Scopes...)
	}
	if r.ExpiresAt != nil {
		exp := *r.ExpiresAt
		s.ExpiresAt = &exp
	}
	return s
}
