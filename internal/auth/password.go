package auth

import (
	"crypto/sha256"
	"encoding/base64"
)

// HashPassword returns the base64-encoded SHA-256 digest of the plaintext.
// The transform is deterministic on purpose: verification recomputes the
// digest and compares stored strings, so there is no per-credential salt
// or work factor. See VerifyPassword.
func HashPassword(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// VerifyPassword reports whether the presented plaintext hashes to the
// stored digest.
func VerifyPassword(digest, plain string) bool {
	return HashPassword(plain) == digest
}
