package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bbye98/minim-sub004/tokens"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusHealthy, "healthy"},
		{StatusUnhealthy, "unhealthy"},
		{Status(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestStoreCheckerHealthy(t *testing.T) {
	checker := NewStoreChecker(tokens.NewMemoryStore())

	res := checker.Check(context.Background())
	if res.Status != StatusHealthy {
		t.Errorf("status = %v, want healthy: %v", res.Status, res.Error)
	}
}

type brokenStore struct{}

func (brokenStore) Find(context.Context, string, string, string, string) (*tokens.Record, bool, error) {
	return nil, false, tokens.ErrStoreUnavailable
}
func (brokenStore) Upsert(context.Context, *tokens.Record) error { return tokens.ErrStoreUnavailable }
func (brokenStore) Remove(context.Context, tokens.Filter) (int, error) {
	return 0, tokens.ErrStoreUnavailable
}
func (brokenStore) List(context.Context, tokens.Filter) ([]tokens.Summary, error) {
	return nil, tokens.ErrStoreUnavailable
}

func TestStoreCheckerUnhealthy(t *testing.T) {
	checker := NewStoreChecker(brokenStore{})

	res := checker.Check(context.Background())
	if res.Status != StatusUnhealthy {
		t.Fatalf("status = %v, want unhealthy", res.Status)
	}
	if !errors.Is(res.Error, tokens.ErrStoreUnavailable) {
		t.Errorf("error = %v, want ErrStoreUnavailable", res.Error)
	}
}

func TestAggregatorWorstStatusWins(t *testing.T) {
	agg := NewAggregator(time.Second)
	agg.Register("good", CheckerFunc(func(context.Context) Result {
		return Healthy("ok")
	}))
	agg.Register("bad", CheckerFunc(func(context.Context) Result {
		return Unhealthy("down", errors.New("connection refused"))
	}))

	report := agg.Run(context.Background())
	if report.Status != StatusUnhealthy {
		t.Errorf("overall = %v, want unhealthy", report.Status)
	}
	if len(report.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(report.Results))
	}
	if report.Results["good"].Status != StatusHealthy {
		t.Errorf("good = %v", report.Results["good"].Status)
	}
	if report.Results["bad"].Status != StatusUnhealthy {
		t.Errorf("bad = %v", report.Results["bad"].Status)
	}
}

func TestAggregatorAllHealthy(t *testing.T) {
	agg := NewAggregator(time.Second)
	for _, name := range []string{"a", "b", "c"} {
		agg.Register(name, CheckerFunc(func(context.Context) Result {
			return Healthy("ok")
		}))
	}

	report := agg.Run(context.Background())
	if report.Status != StatusHealthy {
		t.Errorf("overall = %v, want healthy", report.Status)
	}
}

func TestAggregatorHonorsTimeout(t *testing.T) {
	agg := NewAggregator(50 * time.Millisecond)
	agg.Register("slow", CheckerFunc(func(ctx context.Context) Result {
		select {
		case <-ctx.Done():
			return Unhealthy("timed out", ctx.Err())
		case <-time.After(5 * time.Second):
			return Healthy("never")
		}
	}))

	started := time.Now()
	report := agg.Run(context.Background())
	if elapsed := time.Since(started); elapsed > time.Second {
		t.Fatalf("run took %v, timeout not applied", elapsed)
	}
	if report.Status != StatusUnhealthy {
		t.Errorf("overall = %v, want unhealthy on timeout", report.Status)
	}
}

func TestAggregatorRecordsDuration(t *testing.T) {
	agg := NewAggregator(time.Second)
	agg.Register("timed", CheckerFunc(func(context.Context) Result {
		time.Sleep(10 * time.Millisecond)
		return Healthy("ok")
	}))

	report := agg.Run(context.Background())
	if d := report.Results["timed"].Duration; d < 10*time.Millisecond {
		t.Errorf("duration = %v, want >= 10ms", d)
	}
}
