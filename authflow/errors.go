package authflow

import "errors"

// Sentinel errors for credential resolution.
var (
	// ErrNoValidCredential means every configured credential source was
	// exhausted without producing a working credential: nothing supplied
	// explicitly, nothing usable in the environment or the store, and the
	// fresh-authorization path (including secret probing) failed.
	ErrNoValidCredential = errors.New("authflow: no valid credential")

	// ErrNoExchanger means a fresh authorization was required but the
	// pipeline was built without an Exchanger.
	ErrNoExchanger = errors.New("authflow: no exchanger configured")
)
