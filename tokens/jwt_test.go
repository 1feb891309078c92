package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestExpiryFromAccessToken(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)

	withExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	withoutExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	tests := []struct {
		name  string
		token string
		want  time.Time
		ok    bool
	}{
		{"jwt with exp", withExp, exp, true},
		{"jwt without exp", withoutExp, time.Time{}, false},
		{"opaque token", "not-a-jwt-at-all", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExpiryFromAccessToken(tt.token)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if tt.ok && !got.Equal(tt.want) {
				t.Fatalf("expiry = %v, want %v", got, tt.want)
			}
		})
	}
}
