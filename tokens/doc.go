// Package tokens persists authentication tokens and associated secrets
// across process runs, keyed by client name, authorization flow, client ID,
// and an optional user identifier.
//
// When the user identifier is omitted at lookup time, resolution falls back
// to the most recently accessed record matching the other three fields, so a
// returning user gets the account they last used. Multiple records may
// coexist for one client when their user identifiers differ (multi-account
// support).
//
// An identifier prefixed with the bypass marker "~" forces fresh
// authentication: lookup is skipped, and the new token is stored under the
// identifier with the marker stripped.
//
// The Store is an explicitly passed dependency, never a package-level
// singleton; use MemoryStore as a test double and FileStore for real
// persistence.
package tokens
