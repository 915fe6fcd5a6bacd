// Package token implements the client-side expiry pre-check for bearer
// tokens. Only the payload segment is decoded; signature verification stays
// with the server, which remains authoritative via 401/403 responses.
package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// ErrMalformed is returned when a token is not a three-segment structure
// with a decodable JSON payload.
var ErrMalformed = errors.New("malformed token")

// Claims holds the payload fields the client cares about.
type Claims struct {
	Subject   string `json:"sub,omitempty"`
	IssuedAt  int64  `json:"iat,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
}

// Decode extracts the claims from the middle segment of a bearer token
// without verifying its signature.
func Decode(tok string) (Claims, error) {
	var claims Claims

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		return claims, ErrMalformed
	}

	payload, err := base64URLDecode(parts[1])
	if err != nil {
		return claims, ErrMalformed
	}

	if err := json.Unmarshal(payload, &claims); err != nil {
		return claims, ErrMalformed
	}

	return claims, nil
}

// IsExpired reports whether the token has expired as of now. Malformed
// tokens and tokens without an exp claim are always expired.
func IsExpired(tok string, now time.Time) bool {
	claims, err := Decode(tok)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == 0 {
		return true
	}
	return now.UnixMilli() >= claims.ExpiresAt*1000
}

// base64URLDecode handles both padded and unpadded base64url payloads.
func base64URLDecode(s string) ([]byte, error) {
	if b, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.URLEncoding.DecodeString(s)
}
