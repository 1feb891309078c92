package authflow

import (
	"context"
	"errors"
	"fmt"
)

// Prober validates a single candidate secret against the provider. A nil
// return accepts the candidate; any error rejects it and moves probing on
// to the next candidate.
type Prober interface {
	Probe(ctx context.Context, secret string) error
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context, secret string) error

// Probe implements Prober.
func (f ProberFunc) Probe(ctx context.Context, secret string) error {
	return f(ctx, secret)
}

// ProbeSecrets tries each candidate secret in order and returns the first
// one the prober accepts. Probing is bounded by the candidate list: each
// candidate is tried exactly once, in the order given, and there are no
// retries. When every candidate is rejected the result is
// ErrNoValidCredential carrying the last rejection.
//
// A context cancellation aborts probing immediately and is returned as-is
// rather than being folded into ErrNoValidCredential.
func ProbeSecrets(ctx context.Context, candidates []string, prober Prober) (string, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: no candidate secrets", ErrNoValidCredential)
	}
	var lastErr error
	for _, secret := range candidates {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		err := prober.Probe(ctx, secret)
		if err == nil {
			return secret, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("%w: all %d candidate secrets rejected: %v",
		ErrNoValidCredential, len(candidates), lastErr)
}
