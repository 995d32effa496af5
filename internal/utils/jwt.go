package utils // package utils provides helpers for token creation and hashing

import (
	"crypto/rand"   // secure random bytes for the fallback signing secret
	"encoding/hex"  // hex encoding for random secrets
	"time"          // expiry calculations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the serialized JWT string; Exp stores the UTC
// expiration time. Access tokens are short-lived and sent in the
// Authorization header when calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT bound to a username. It takes
// the signing secret, the username and a TTL in minutes, and returns an
// AccessToken containing the signed token and its expiration time. The JWT
// carries the standard subject (sub), expiration (exp) and issued-at (iat)
// claims; identity is the username, matching what the reservation handlers
// look up in the users table.
func NewAccessToken(secret, username string, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub": username,
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// RandomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data. It backs the per-process JWT secret
// used when JWT_SECRET is not configured.
func RandomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
