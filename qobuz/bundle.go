package qobuz

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/bbye98/minim-sub004/observe"
)

// AppCredentials is what bundle recovery yields: the application ID and the
// candidate secrets, in bundle order. Only one candidate is the working
// secret for the production API; probing finds it.
type AppCredentials struct {
	AppID            string
	CandidateSecrets []string
}

var (
	bundlePathPattern = regexp.MustCompile(`/resources/[^"]*?/bundle\.js`)
	appIDPattern      = regexp.MustCompile(`production:\{api:\{appId:"(.*?)",appSecret`)
	seedPattern       = regexp.MustCompile(`[a-z]\.initialSeed\("(.*?)",window\.utimezone\.([a-zA-Z_]+)\)`)
)

// ResolveAppCredentials recovers the application ID and candidate secrets
// from the web player's JavaScript bundle.
//
// Each secret is assembled from three obfuscated fragments scattered through
// the bundle: a per-timezone seed, and the info and extras strings of the
// matching timezone block. The concatenation, minus a fixed-length tail, is
// the base64 of the secret.
func (c *Client) ResolveAppCredentials(ctx context.Context) (*AppCredentials, error) {
	login, err := c.fetchWebPlayer(ctx, "/login")
	if err != nil {
		return nil, err
	}
	bundlePath := bundlePathPattern.FindString(login)
	if bundlePath == "" {
		return nil, fmt.Errorf("%w: bundle path not found in login page", ErrNoAppCredentials)
	}

	bundle, err := c.fetchWebPlayer(ctx, bundlePath)
	if err != nil {
		return nil, err
	}
	creds, err := parseBundle(bundle)
	if err != nil {
		return nil, err
	}

	c.logger.Info(ctx, "recovered app credentials from bundle",
		observe.F("app_id", creds.AppID),
		observe.F("candidates", len(creds.CandidateSecrets)))
	return creds, nil
}

func (c *Client) fetchWebPlayer(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.webPlayerURL+path, nil)
	if err != nil {
		return "", fmt.Errorf("qobuz: building web player request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("qobuz: fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("qobuz: reading %s: %w", path, err)
	}
	return string(data), nil
}

func parseBundle(bundle string) (*AppCredentials, error) {
	appID := appIDPattern.FindStringSubmatch(bundle)
	if appID == nil {
		return nil, fmt.Errorf("%w: app id not found in bundle", ErrNoAppCredentials)
	}

	var candidates []string
	for _, seed := range seedPattern.FindAllStringSubmatch(bundle, -1) {
		if secret, ok := assembleSecret(bundle, seed[1], seed[2]); ok {
			candidates = append(candidates, secret)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidate secrets found in bundle", ErrNoAppCredentials)
	}
	return &AppCredentials{AppID: appID[1], CandidateSecrets: candidates}, nil
}

// assembleSecret joins a timezone's seed with its info and extras fragments
// and decodes the result. The trailing 44 characters are filler.
func assembleSecret(bundle, seed, timezone string) (string, bool) {
	pattern, err := regexp.Compile(capitalize(timezone) + `",info:"(.*?)",extras:"(.*?)"\},\{offset`)
	if err != nil {
		return "", false
	}
	match := pattern.FindStringSubmatch(bundle)
	if match == nil {
		return "", false
	}

	joined := seed + match[1] + match[2]
	if len(joined) <= 44 {
		return "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(joined[:len(joined)-44])
	if err != nil {
		return "", false
	}
	return string(decoded), true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
