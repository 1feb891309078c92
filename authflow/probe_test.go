package authflow

import (
	"context"
	"errors"
	"testing"
)

func TestProbeSecretsFirstAcceptedWins(t *testing.T) {
	ctx := context.Background()
	var tried []string
	prober := ProberFunc(func(_ context.Context, secret string) error {
		tried = append(tried, secret)
		if secret == "good" {
			return nil
		}
		return errors.New("rejected")
	})

	secret, err := ProbeSecrets(ctx, []string{"bad1", "good", "never"}, prober)
	if err != nil {
		t.Fatalf("ProbeSecrets: %v", err)
	}
	if secret != "good" {
		t.Errorf("secret = %q, want good", secret)
	}
	// Probing stops at the first accepted candidate.
	if len(tried) != 2 || tried[0] != "bad1" || tried[1] != "good" {
		t.Errorf("tried = %v, want [bad1 good]", tried)
	}
}

func TestProbeSecretsBoundedByList(t *testing.T) {
	ctx := context.Background()
	attempts := 0
	prober := ProberFunc(func(_ context.Context, _ string) error {
		attempts++
		return errors.New("rejected")
	})

	_, err := ProbeSecrets(ctx, []string{"a", "b", "c"}, prober)
	if !errors.Is(err, ErrNoValidCredential) {
		t.Fatalf("err = %v, want ErrNoValidCredential", err)
	}
	// Each candidate is tried exactly once; no retries.
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestProbeSecretsEmptyCandidates(t *testing.T) {
	_, err := ProbeSecrets(context.Background(), nil, ProberFunc(func(context.Context, string) error {
		t.Fatal("prober should not be called")
		return nil
	}))
	if !errors.Is(err, ErrNoValidCredential) {
		t.Fatalf("err = %v, want ErrNoValidCredential", err)
	}
}

func TestProbeSecretsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	prober := ProberFunc(func(_ context.Context, _ string) error {
		cancel()
		return errors.New("rejected")
	})

	_, err := ProbeSecrets(ctx, []string{"a", "b"}, prober)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if errors.Is(err, ErrNoValidCredential) {
		t.Error("cancellation must not be reported as a credential failure")
	}
}
