// Package qobuz is a client for the private Qobuz API used by the Qobuz Web
// Player.
//
// The client composes the library's core pieces: read endpoints are memoized
// through the tiered response cache, credentials resolve through the
// explicit > environment > stored > fresh chain, and user tokens persist in
// a token store shared across accounts.
//
// Application credentials (app ID and secret) are not issued to end users;
// when none are supplied or found in the environment, the client recovers
// them from the web player's JavaScript bundle and probes the candidate
// secrets to find the working one.
package qobuz
