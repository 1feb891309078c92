package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiryFromAccessToken extracts the expiration time from a JWT access
// token's exp claim without verifying the signature. Verification is the
// issuer's business; here the claim only schedules a refresh, so a forged
// value costs nothing beyond an early re-auth.
//
// The second return is false when the token is not a JWT or carries no exp
// claim.
func ExpiryFromAccessToken(accessToken string) (time.Time, bool) {
	if accessToken == "" {
		return time.Time{}, false
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
