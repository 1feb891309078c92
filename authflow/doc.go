// Package authflow resolves API credentials through a fixed precedence
// chain: explicitly supplied material first, then environment variables,
// then the persisted token store, and finally a fresh authorization
// exchange. Resolved credentials are written back to the store so later
// runs skip the exchange.
//
// The package also provides ordered probing of candidate application
// secrets, for providers whose secrets must be discovered rather than
// issued, and an http.RoundTripper that stamps resolved credentials onto
// outgoing requests.
package authflow
