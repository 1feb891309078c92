package config

import "os"

// AppCredentials are application-level credentials (not user tokens)
// supplied through the environment.
type AppCredentials struct {
	AppID     string
	AppSecret string
}

// Complete reports whether both fields are populated.
func (c AppCredentials) Complete() bool {
	return c.AppID != "" && c.AppSecret != ""
}

// CredentialsFromEnv reads <PREFIX>_APP_ID and <PREFIX>_APP_SECRET. The
// second return reports whether both variables were present; partial pairs
// are treated as absent so a stray variable cannot half-configure a client.
func CredentialsFromEnv(prefix string) (AppCredentials, bool) {
	creds := AppCredentials{
		AppID:     os.Getenv(prefix + "_APP_ID"),
		AppSecret: os.Getenv(prefix + "_APP_SECRET"),
	}
	return creds, creds.Complete()
}
