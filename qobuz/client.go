package qobuz

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/bbye98/minim-sub004/authflow"
	"github.com/bbye98/minim-sub004/cache"
	"github.com/bbye98/minim-sub004/config"
	"github.com/bbye98/minim-sub004/observe"
	"github.com/bbye98/minim-sub004/tokens"
)

const (
	// BaseURL is the private Qobuz API root.
	BaseURL = "https://www.qobuz.com/api.json/0.2"
	// WebPlayerURL hosts the web player whose bundle carries the app
	// credentials.
	WebPlayerURL = "https://play.qobuz.com"
	// EnvPrefix scopes the environment variables read by the client:
	// PRIVATE_QOBUZ_API_APP_ID and PRIVATE_QOBUZ_API_APP_SECRET.
	EnvPrefix = "PRIVATE_QOBUZ_API"

	// ClientName keys this client's records in the token store.
	ClientName = "qobuz"
	// FlowPassword is the web player credential login flow.
	FlowPassword = "password"
)

// cachedCallTiers binds every memoized read to its expiry tier. New resolves
// the whole table at construction, so a bad tier name fails there instead of
// on the first call to the affected endpoint.
var cachedCallTiers = map[string]cache.Tier{
	"album.get":         cache.TierCatalog,
	"album.featured":    cache.TierDaily,
	"album.search":      cache.TierSearch,
	"artist.get":        cache.TierPopularity,
	"artist.releases":   cache.TierDaily,
	"artist.search":     cache.TierSearch,
	"catalog.search":    cache.TierSearch,
	"favorites.get":     cache.TierUser,
	"favorites.ids":     cache.TierUser,
	"genre.get":         cache.TierStatic,
	"genre.list":        cache.TierStatic,
	"label.get":         cache.TierCatalog,
	"most-popular.get":  cache.TierSearch,
	"playlist.get":      cache.TierUser,
	"track.get":         cache.TierPopularity,
	"track.playback":    cache.TierStatic,
	"track.search":      cache.TierSearch,
	"user.get":          cache.TierUser,
	"user.last-updates": cache.TierUser,
}

// Client talks to the private Qobuz API. Construct with New; the zero value
// is not usable.
//
// Endpoint groups are explicit fields so discoverability matches the API's
// own layout:
//
//	client.Catalog.GetAlbum(ctx, "0075679933652")
//	client.Search.Search(ctx, "daft punk", 10, 0)
type Client struct {
	baseURL      string
	webPlayerURL string
	httpClient   *http.Client
	db           *tokens.Database
	mw           *cache.Middleware
	calls        map[string]*cache.BoundCall
	logger       observe.Logger
	metrics      *observe.Metrics
	tracer       *observe.Tracer
	now          func() time.Time

	cacheBackend cache.Cache

	mu               sync.RWMutex
	appID            string
	appSecret        string
	candidateSecrets []string
	userAuthToken    string
	userIdentifier   string

	Catalog   *CatalogAPI
	Search    *SearchAPI
	Tracks    *TracksAPI
	Users     *UsersAPI
	Favorites *FavoritesAPI
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAppCredentials supplies application credentials explicitly, winning
// over the environment and bundle recovery.
func WithAppCredentials(appID, appSecret string) ClientOption {
	return func(c *Client) {
		c.appID = appID
		c.appSecret = appSecret
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenDatabase attaches a token database for credential persistence.
// Without one, tokens live only for the client's lifetime.
func WithTokenDatabase(db *tokens.Database) ClientOption {
	return func(c *Client) { c.db = db }
}

// WithCache selects the response cache backend. Default is an in-memory
// LRU cache.
func WithCache(backend cache.Cache) ClientOption {
	return func(c *Client) { c.cacheBackend = backend }
}

// WithLogger attaches a structured logger. Default discards output.
func WithLogger(l observe.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// WithMetrics attaches cache and auth metrics.
func WithMetrics(m *observe.Metrics) ClientOption {
	return func(c *Client) { c.metrics = m }
}

// WithTracer attaches a tracer for API call spans.
func WithTracer(t *observe.Tracer) ClientOption {
	return func(c *Client) { c.tracer = t }
}

// WithBaseURL overrides the API root. Intended for tests.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// WithWebPlayerURL overrides the web player root. Intended for tests.
func WithWebPlayerURL(u string) ClientOption {
	return func(c *Client) { c.webPlayerURL = u }
}

// New builds a Client.
//
// Application credentials resolve in order: the WithAppCredentials option,
// then the PRIVATE_QOBUZ_API_APP_ID / PRIVATE_QOBUZ_API_APP_SECRET
// environment pair, then lazily from the web player bundle on first use.
func New(opts ...ClientOption) (*Client, error) {
	c := &Client{
		baseURL:      BaseURL,
		webPlayerURL: WebPlayerURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		db:           tokens.NewDatabase(tokens.NewMemoryStore()),
		logger:       observe.NopLogger(),
		tracer:       observe.NewTracer(nil),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.appID == "" {
		if creds, ok := config.CredentialsFromEnv(EnvPrefix); ok {
			c.appID = creds.AppID
			c.appSecret = creds.AppSecret
		}
	}
	if c.metrics == nil {
		m, err := observe.NewMetrics(nil)
		if err != nil {
			return nil, err
		}
		c.metrics = m
	}
	if c.cacheBackend == nil {
		c.cacheBackend = cache.NewMemoryCache(0)
	}
	c.mw = cache.NewMiddleware(c.cacheBackend, nil, cache.WithRecorder(c.metrics))

	c.calls = make(map[string]*cache.BoundCall, len(cachedCallTiers))
	for method, tier := range cachedCallTiers {
		call, err := c.mw.Bind(tier, method, map[string]any{})
		if err != nil {
			return nil, fmt.Errorf("qobuz: binding %s: %w", method, err)
		}
		c.calls[method] = call
	}

	// Auth headers ride on every request through the transport so the
	// endpoint methods never handle credential material themselves.
	base := c.httpClient.Transport
	clone := *c.httpClient
	clone.Transport = &authflow.Transport{Base: base, Source: c}
	c.httpClient = &clone

	c.Catalog = &CatalogAPI{client: c}
	c.Search = &SearchAPI{client: c}
	c.Tracks = &TracksAPI{client: c}
	c.Users = &UsersAPI{client: c}
	c.Favorites = &FavoritesAPI{client: c}
	return c, nil
}

// AuthHeaders implements authflow.HeaderSource.
func (c *Client) AuthHeaders(*http.Request) (map[string]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	headers := make(map[string]string, 2)
	if c.appID != "" {
		headers["X-App-Id"] = c.appID
	}
	if c.userAuthToken != "" {
		headers["X-User-Auth-Token"] = c.userAuthToken
	}
	return headers, nil
}

var _ authflow.HeaderSource = (*Client)(nil)

// Authenticated reports whether a user token is set.
func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userAuthToken != ""
}

// UserIdentifier returns the account the current token belongs to, if known.
func (c *Client) UserIdentifier() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userIdentifier
}

// AppID returns the application ID in use, if resolved.
func (c *Client) AppID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.appID
}

// cacheOwner derives the owner segment of cache keys. Catalog-wide reads
// share entries across accounts with the same application ID; user-tier
// reads carry the authenticated account, so clients sharing one cache
// backend never serve one user's private data to another.
func (c *Client) cacheOwner(tier cache.Tier) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	owner := ClientName + ":" + c.appID
	if tier == cache.TierUser && c.userIdentifier != "" {
		owner += ":" + c.userIdentifier
	}
	return owner
}

func (c *Client) setUserToken(token, identifier string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userAuthToken = token
	c.userIdentifier = identifier
}

func (c *Client) setAppSecret(secret string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.appSecret = secret
	c.candidateSecrets = nil
}

func (c *Client) currentAppSecret() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.appSecret
}
