package qobuz

import (
	"encoding/base64"
	"strings"
	"testing"
)

// buildBundle fabricates a web player bundle embedding the given app ID and
// secrets the same way the real bundle obfuscates them: each secret's base64
// is split across a timezone seed and that timezone's info/extras fragments,
// with 44 filler characters appended.
func buildBundle(appID string, secrets map[string]string) string {
	var sb strings.Builder
	sb.WriteString(`x={production:{api:{appId:"` + appID + `",appSecret:"unused"}}};`)

	for timezone, secret := range secrets {
		encoded := base64.StdEncoding.EncodeToString([]byte(secret))
		third := len(encoded) / 3
		seed, info, extras := encoded[:third], encoded[third:2*third], encoded[2*third:]
		filler := strings.Repeat("F", 44)

		sb.WriteString(`d.initialSeed("` + seed + `",window.utimezone.` + timezone + `);`)
		sb.WriteString(`name:"` + capitalize(timezone) + `",info:"` + info +
			`",extras:"` + extras + filler + `"},{offset:120;`)
	}
	return sb.String()
}

func TestParseBundle(t *testing.T) {
	bundle := buildBundle("123456789", map[string]string{
		"berlin": "berlin-secret-value-0001",
	})

	creds, err := parseBundle(bundle)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if creds.AppID != "123456789" {
		t.Errorf("AppID = %q", creds.AppID)
	}
	if len(creds.CandidateSecrets) != 1 || creds.CandidateSecrets[0] != "berlin-secret-value-0001" {
		t.Errorf("candidates = %v", creds.CandidateSecrets)
	}
}

func TestParseBundleMultipleTimezones(t *testing.T) {
	bundle := buildBundle("987654321", map[string]string{
		"berlin": "berlin-secret-value-0001",
		"london": "london-secret-value-0002",
	})

	creds, err := parseBundle(bundle)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(creds.CandidateSecrets) != 2 {
		t.Fatalf("candidates = %v, want 2", creds.CandidateSecrets)
	}
	found := map[string]bool{}
	for _, s := range creds.CandidateSecrets {
		found[s] = true
	}
	if !found["berlin-secret-value-0001"] || !found["london-secret-value-0002"] {
		t.Errorf("candidates = %v", creds.CandidateSecrets)
	}
}

func TestParseBundleSkipsSeedsWithoutBlocks(t *testing.T) {
	bundle := buildBundle("123456789", map[string]string{
		"berlin": "berlin-secret-value-0001",
	})
	// A seed whose timezone has no info/extras block must be skipped, not
	// break parsing.
	bundle += `d.initialSeed("orphanseed",window.utimezone.tokyo);`

	creds, err := parseBundle(bundle)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(creds.CandidateSecrets) != 1 {
		t.Errorf("candidates = %v, want only the complete one", creds.CandidateSecrets)
	}
}

func TestParseBundleNoAppID(t *testing.T) {
	if _, err := parseBundle("var x = 1;"); err == nil {
		t.Fatal("expected error for bundle without app id")
	}
}
