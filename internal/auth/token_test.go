package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

// signToken builds a token with explicit claims so expiry boundaries can
// be tested without waiting.
func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func TestNewAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	id, err := VerifyAccessToken(testSecret, tok.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id != 42 {
		t.Fatalf("subject = %d, want 42", id)
	}
	ttl := time.Until(tok.Exp)
	if ttl > TokenTTL || ttl < TokenTTL-time.Minute {
		t.Fatalf("expiry %s not ~24h out", ttl)
	}
}

func TestVerifyExpiryWindow(t *testing.T) {
	now := time.Now().UTC()
	cases := []struct {
		name  string
		exp   time.Time
		valid bool
	}{
		{"just issued", now.Add(TokenTTL), true},
		{"one minute left", now.Add(time.Minute), true},
		{"just expired", now.Add(-time.Minute), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := signToken(t, testSecret, jwt.MapClaims{
				"sub": 7,
				"iat": tc.exp.Add(-TokenTTL).Unix(),
				"exp": tc.exp.Unix(),
			})
			_, err := VerifyAccessToken(testSecret, raw)
			if tc.valid && err != nil {
				t.Fatalf("want valid, got %v", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("want ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	raw := []byte(tok.Token)
	// Flip the last signature byte to a different base64url character.
	last := len(raw) - 1
	if raw[last] == 'A' {
		raw[last] = 'B'
	} else {
		raw[last] = 'A'
	}
	if _, err := VerifyAccessToken(testSecret, string(raw)); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("tampered token verified: %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := VerifyAccessToken("other-secret", tok.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsNonHMAC(t *testing.T) {
	// alg=none style tokens must not pass regardless of claims.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": 7,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := VerifyAccessToken(testSecret, unsigned); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("unsigned token verified: %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b", "a.b.c"} {
		if _, err := VerifyAccessToken(testSecret, raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: want ErrInvalidToken, got %v", raw, err)
		}
	}
}

func TestVerifyMissingExpiry(t *testing.T) {
	// A correctly signed token without an exp claim would never expire;
	// it must not verify.
	raw := signToken(t, testSecret, jwt.MapClaims{
		"sub": 7,
		"iat": time.Now().Unix(),
	})
	if _, err := VerifyAccessToken(testSecret, raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expiry-less token verified: %v", err)
	}
}

func TestVerifyMissingSubject(t *testing.T) {
	raw := signToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, err := VerifyAccessToken(testSecret, raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("subject-less token verified: %v", err)
	}
}
