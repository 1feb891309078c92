package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds a full aggregator run.
const DefaultTimeout = 10 * time.Second

// Report is the combined outcome of all registered checks.
type Report struct {
	// Status is the worst status among the individual checks.
	Status Status
	// Results maps checker name to its outcome.
	Results map[string]Result
}

// Aggregator combines named checkers into a single composite check.
type Aggregator struct {
	timeout time.Duration

	mu       sync.RWMutex
	checkers map[string]Checker
}

// NewAggregator creates an aggregator. A non-positive timeout falls back to
// DefaultTimeout.
func NewAggregator(timeout time.Duration) *Aggregator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Aggregator{
		timeout:  timeout,
		checkers: make(map[string]Checker),
	}
}

// Register adds a named checker, replacing any previous checker with the
// same name.
func (a *Aggregator) Register(name string, checker Checker) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.checkers[name] = checker
}

// Run executes every registered check concurrently and folds the outcomes
// into a Report. The whole run is bounded by the aggregator's timeout.
func (a *Aggregator) Run(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	a.mu.RLock()
	checkers := make(map[string]Checker, len(a.checkers))
	for name, c := range a.checkers {
		checkers[name] = c
	}
	a.mu.RUnlock()

	var (
		resultMu sync.Mutex
		results  = make(map[string]Result, len(checkers))
	)
	g, ctx := errgroup.WithContext(ctx)
	for name, checker := range checkers {
		name, checker := name, checker
		g.Go(func() error {
			started := time.Now()
			res := checker.Check(ctx)
			res.Duration = time.Since(started)

			resultMu.Lock()
			results[name] = res
			resultMu.Unlock()
			return nil
		})
	}
	// Checkers never return errors through the group; failures live in
	// their Results.
	_ = g.Wait()

	report := Report{Status: StatusHealthy, Results: results}
	for _, res := range results {
		if res.Status == StatusUnhealthy {
			report.Status = StatusUnhealthy
			break
		}
	}
	return report
}
