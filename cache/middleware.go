package cache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ReadFunc is the underlying call executed on a cache miss. It must be an
// idempotent read; wrapping a mutating operation is a misuse.
type ReadFunc func(ctx context.Context) ([]byte, error)

// Recorder receives cache outcome events. observe.Metrics implements it.
type Recorder interface {
	CacheHit(ctx context.Context)
	CacheMiss(ctx context.Context)
}

// Middleware memoizes read calls keyed by their full call signature, with
// expiry selected by tier.
//
// Contract:
// - A valid entry is returned without invoking the underlying call: no side
//   effect of the call occurs on a hit.
// - On miss or expiry the call runs, and its result is stored only if it
//   returns without error. Errors propagate unchanged and are never cached.
// - Concurrent misses on one key are collapsed into a single underlying call.
type Middleware struct {
	cache    Cache
	keyer    Keyer
	tiers    *Tiers
	group    singleflight.Group
	recorder Recorder

	// indexMu guards index, which maps owner+method to the live keys
	// written under it. The index makes method-scoped invalidation
	// possible without enumerating argument combinations.
	indexMu sync.Mutex
	index   map[string]map[string]struct{}
}

// Option configures a Middleware.
type Option func(*Middleware)

// WithRecorder attaches a hit/miss recorder.
func WithRecorder(r Recorder) Option {
	return func(m *Middleware) { m.recorder = r }
}

// WithKeyer replaces the default keyer.
func WithKeyer(k Keyer) Option {
	return func(m *Middleware) { m.keyer = k }
}

// NewMiddleware creates a cache middleware over the given backend and tier
// registry. A nil tiers registry selects DefaultTiers.
func NewMiddleware(c Cache, tiers *Tiers, opts ...Option) *Middleware {
	if tiers == nil {
		tiers = DefaultTiers()
	}
	m := &Middleware{
		cache: c,
		keyer: NewDefaultKeyer(),
		tiers: tiers,
		index: make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Execute runs fn with memoization under the given tier.
func (m *Middleware) Execute(ctx context.Context, tier Tier, owner, method string, args any, fn ReadFunc) ([]byte, error) {
	ttl, err := m.tiers.Resolve(tier)
	if err != nil {
		return nil, err
	}

	key, err := m.keyer.Key(owner, method, args)
	if err != nil {
		return nil, err
	}

	if cached, ok := m.cache.Get(ctx, key); ok {
		m.hit(ctx)
		return cached, nil
	}
	m.miss(ctx)

	result, err, _ := m.group.Do(key, func() (any, error) {
		// A collapsed caller may find the entry already written.
		if cached, ok := m.cache.Get(ctx, key); ok {
			return cached, nil
		}

		value, err := fn(ctx)
		if err != nil {
			// Errors are never memoized; a transient failure cannot
			// poison subsequent calls.
			return nil, err
		}

		if m.cache.Set(ctx, key, value, ttl) == nil {
			m.indexKey(owner, method, key)
		}
		return value, nil
	})
	if err != nil {
		return nil, err
	}

	value, _ := result.([]byte)
	return value, nil
}

// Invalidate removes the entry for one specific call signature. Idempotent -
// invalidating an absent entry is a no-op.
func (m *Middleware) Invalidate(ctx context.Context, owner, method string, args any) error {
	key, err := m.keyer.Key(owner, method, args)
	if err != nil {
		return err
	}
	m.unindexKey(owner, method, key)
	return m.cache.Delete(ctx, key)
}

// InvalidateMethod removes every entry written under the owner and method,
// regardless of arguments. Used to bust cached reads after a mutation.
func (m *Middleware) InvalidateMethod(ctx context.Context, owner, method string) error {
	m.indexMu.Lock()
	keys := m.index[owner+"\x00"+method]
	delete(m.index, owner+"\x00"+method)
	m.indexMu.Unlock()

	var firstErr error
	for key := range keys {
		if err := m.cache.Delete(ctx, key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// InvalidateAll clears the whole cache.
func (m *Middleware) InvalidateAll(ctx context.Context) error {
	m.indexMu.Lock()
	m.index = make(map[string]map[string]struct{})
	m.indexMu.Unlock()
	return m.cache.Clear(ctx)
}

func (m *Middleware) indexKey(owner, method, key string) {
	m.indexMu.Lock()
	defer m.indexMu.Unlock()
	bucket := m.index[owner+"\x00"+method]
	if bucket == nil {
		bucket = make(map[string]struct{})
		m.index[owner+"\x00"+method] = bucket
	}
	bucket[key] = struct{}{}
}

func (m *Middleware) unindexKey(owner, method, key string) {
	m.indexMu.Lock()
	defer m.indexMu.Unlock()
	if bucket := m.index[owner+"\x00"+method]; bucket != nil {
		delete(bucket, key)
	}
}

// bindProbeOwner stands in for the real owner during the wrap-time
// keyability probe; the owner is supplied per call.
const bindProbeOwner = "bind"

// Bind resolves the tier and probes argument keyability up front, so a
// misconfigured tier name or an unkeyable argument type surfaces at wrap
// time rather than on the first call. The prototype should be a zero value
// of the argument type the call will pass. One bound call may serve many
// owners, so the owner key segment is passed to Do per call.
func (m *Middleware) Bind(tier Tier, method string, prototype any) (*BoundCall, error) {
	if _, err := m.tiers.Resolve(tier); err != nil {
		return nil, err
	}
	if _, err := m.keyer.Key(bindProbeOwner, method, prototype); err != nil {
		return nil, err
	}
	return &BoundCall{mw: m, tier: tier, method: method}, nil
}

// BoundCall is a call site bound to a tier and method.
type BoundCall struct {
	mw     *Middleware
	tier   Tier
	method string
}

// Tier returns the tier the call was bound to.
func (b *BoundCall) Tier() Tier { return b.tier }

// Do runs fn with memoization under the bound tier. Distinct owners keep
// distinct entries.
func (b *BoundCall) Do(ctx context.Context, owner string, args any, fn ReadFunc) ([]byte, error) {
	return b.mw.Execute(ctx, b.tier, owner, b.method, args, fn)
}

// Invalidate removes the owner's entry for the bound call with the given
// arguments.
func (b *BoundCall) Invalidate(ctx context.Context, owner string, args any) error {
	return b.mw.Invalidate(ctx, owner, b.method, args)
}

func (m *Middleware) hit(ctx context.Context) {
	if m.recorder != nil {
		m.recorder.CacheHit(ctx)
	}
}

func (m *Middleware) miss(ctx context.Context) {
	if m.recorder != nil {
		m.recorder.CacheMiss(ctx)
	}
}
