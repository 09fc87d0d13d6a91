// Package auth contains the credential digest and session token helpers.
// Tokens are stateless: there is no refresh, rotation or server-side
// revocation, so a token stays usable until its expiry.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of a session token. The expiry window is
// part of the API contract, not configuration.
const TokenTTL = 24 * time.Hour

// ErrInvalidToken is returned for every verification failure: malformed
// token, wrong signing method, bad signature, expired, or unusable
// claims. Callers never learn which, and the HTTP boundary maps them all
// to the same 401.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken is a signed session token together with its expiry.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user. The claims are
// the subject (sub, the user id), issued-at (iat) and expiration (exp),
// with exp exactly TokenTTL after iat. The secret is whatever the caller
// was configured with; this package never reads it from the environment.
func NewAccessToken(secret string, userID uint64) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(TokenTTL)
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// VerifyAccessToken parses and validates a session token and returns the
// embedded user id. Signature and expiry are checked against the given
// secret and the current time; any failure collapses to ErrInvalidToken.
func VerifyAccessToken(secret, raw string) (uint64, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC; otherwise a
		// crafted "alg" header could bypass the signature check.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired()) // a token without exp would never expire
	if err != nil || !tok.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	// JSON numbers decode as float64; older clients may send the subject
	// as a numeric string.
	switch sub := claims["sub"].(type) {
	case float64:
		if sub > 0 {
			return uint64(sub), nil
		}
	case string:
		if id, err := strconv.ParseUint(sub, 10, 64); err == nil && id > 0 {
			return id, nil
		}
	}
	return 0, ErrInvalidToken
}
