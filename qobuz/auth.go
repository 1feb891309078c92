package qobuz

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bbye98/minim-sub004/authflow"
	"github.com/bbye98/minim-sub004/observe"
	"github.com/bbye98/minim-sub004/tokens"
)

// probeTrackID is a known always-available track used to validate candidate
// app secrets against the signed playback endpoint.
const probeTrackID = "344521217"

// Login performs the web player credential flow: the password is hashed,
// exchanged for a user auth token, the working app secret is probed from the
// bundle candidates where necessary, and the result is persisted in the
// token database under the provider-resolved user id.
func (c *Client) Login(ctx context.Context, username, password string) error {
	return c.LoginAs(ctx, "", username, password)
}

// LoginAs is Login with a caller-chosen account name: the persisted record
// is stored under identifier ("work", "personal") instead of the
// provider-resolved user id, so the session can be resumed by that name.
// An empty identifier behaves like Login.
func (c *Client) LoginAs(ctx context.Context, identifier, username, password string) error {
	if err := c.ensureAppCredentials(ctx); err != nil {
		return err
	}

	exchanger := authflow.ExchangerFunc(func(ctx context.Context) (*authflow.Grant, error) {
		return c.exchangeLogin(ctx, username, password)
	})
	pipeline := authflow.NewPipeline(c.db, ClientName, FlowPassword, c.AppID(),
		authflow.WithExchanger(exchanger))

	// The bypass marker skips any stored token: a login call always means
	// fresh authorization. Strip any marker the caller supplied so the
	// prefix is applied exactly once.
	identifier, _ = tokens.SplitBypass(identifier)
	cred, err := pipeline.Resolve(ctx, tokens.BypassMarker+identifier)
	if err != nil {
		return err
	}
	c.setUserToken(cred.Record.AccessToken, cred.Record.UserIdentifier)
	c.metrics.TokenOp(ctx, "add")
	c.logger.Info(ctx, "logged in",
		observe.F("user_identifier", cred.Record.UserIdentifier))
	return nil
}

// Resume restores a previous session from the token database. An empty
// userIdentifier resolves to the most recently used account for this app
// ID; the bypass marker ("~" prefix) is honored and yields
// authflow.ErrNoValidCredential since resuming never logs in anew.
func (c *Client) Resume(ctx context.Context, userIdentifier string) error {
	if err := c.ensureAppCredentials(ctx); err != nil {
		return err
	}

	pipeline := authflow.NewPipeline(c.db, ClientName, FlowPassword, c.AppID())
	cred, err := pipeline.Resolve(ctx, userIdentifier)
	if err != nil {
		return err
	}
	c.metrics.TokenOp(ctx, "get")

	c.setUserToken(cred.Record.AccessToken, cred.Record.UserIdentifier)
	if cred.Record.ClientSecret != "" {
		c.setAppSecret(cred.Record.ClientSecret)
	}
	c.logger.Info(ctx, "resumed session",
		observe.F("user_identifier", cred.Record.UserIdentifier),
		observe.F("source", string(cred.Source)))
	return nil
}

// Logout discards the in-memory user token. Stored records are untouched;
// use RemoveTokens to delete those.
func (c *Client) Logout() {
	c.setUserToken("", "")
}

// ensureAppCredentials makes sure an application ID is available, recovering
// it from the web player bundle when neither an option nor the environment
// supplied one.
func (c *Client) ensureAppCredentials(ctx context.Context) error {
	if c.AppID() != "" {
		return nil
	}
	creds, err := c.ResolveAppCredentials(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.appID = creds.AppID
	c.candidateSecrets = creds.CandidateSecrets
	c.mu.Unlock()
	return nil
}

// exchangeLogin is the fresh-authorization path behind Login.
func (c *Client) exchangeLogin(ctx context.Context, username, password string) (*authflow.Grant, error) {
	sum := md5.Sum([]byte(password))
	params := url.Values{}
	params.Set("username", username)
	params.Set("password", hex.EncodeToString(sum[:]))

	data, err := c.postQuery(ctx, "user/login", params)
	c.metrics.AuthExchange(ctx, err)
	if err != nil {
		return nil, err
	}

	var resp struct {
		User struct {
			ID int64 `json:"id"`
		} `json:"user"`
		UserAuthToken string `json:"user_auth_token"`
		Token         string `json:"token"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("qobuz: decoding login response: %w", err)
	}
	token := resp.UserAuthToken
	if token == "" {
		token = resp.Token
	}
	if token == "" {
		return nil, fmt.Errorf("qobuz: login response carried no user auth token")
	}
	identifier := strconv.FormatInt(resp.User.ID, 10)
	c.setUserToken(token, identifier)

	secret, err := c.resolveWorkingSecret(ctx)
	if err != nil {
		return nil, err
	}

	return &authflow.Grant{
		UserIdentifier: identifier,
		AccessToken:    token,
		ClientSecret:   secret,
		Extras:         map[string]any{"user_id": resp.User.ID},
	}, nil
}

// resolveWorkingSecret returns the app secret, probing the bundle candidates
// in order when no secret is known yet. Probing issues a signed playback
// request per candidate; the first accepted signature wins.
func (c *Client) resolveWorkingSecret(ctx context.Context) (string, error) {
	if secret := c.currentAppSecret(); secret != "" {
		return secret, nil
	}

	c.mu.RLock()
	candidates := append([]string(nil), c.candidateSecrets...)
	c.mu.RUnlock()

	secret, err := authflow.ProbeSecrets(ctx, candidates, authflow.ProberFunc(c.probeSecret))
	if err != nil {
		return "", err
	}
	c.setAppSecret(secret)
	return secret, nil
}

func (c *Client) probeSecret(ctx context.Context, secret string) error {
	params := url.Values{}
	params.Set("track_id", probeTrackID)
	params.Set("format_id", "5")

	ts := strconv.FormatInt(c.now().Unix(), 10)
	signed := url.Values{}
	for k, vs := range params {
		signed[k] = vs
	}
	signed.Set("request_ts", ts)
	signed.Set("request_sig", signRequest("track/getFileUrl", params, ts, secret))

	_, err := c.do(ctx, http.MethodGet, "track/getFileUrl", signed, nil)
	return err
}
