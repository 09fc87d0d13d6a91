package auth

import (
	"encoding/base64"
	"testing"
)

func TestHashPasswordDeterministic(t *testing.T) {
	if HashPassword("secret1") != HashPassword("secret1") {
		t.Fatal("same plaintext must produce the same digest")
	}
}

func TestHashPasswordDistinct(t *testing.T) {
	corpus := []string{"secret1", "secret2", "Secret1", "secret1 ", "hunter22", "correct horse battery staple"}
	seen := map[string]string{}
	for _, p := range corpus {
		d := HashPassword(p)
		if prev, ok := seen[d]; ok {
			t.Fatalf("digest collision between %q and %q", prev, p)
		}
		seen[d] = p
	}
}

func TestHashPasswordEncoding(t *testing.T) {
	raw, err := base64.StdEncoding.DecodeString(HashPassword("secret1"))
	if err != nil {
		t.Fatalf("digest is not standard base64: %v", err)
	}
	if len(raw) != 32 {
		t.Fatalf("decoded digest length = %d, want 32", len(raw))
	}
}

func TestVerifyPassword(t *testing.T) {
	digest := HashPassword("secret1")
	if !VerifyPassword(digest, "secret1") {
		t.Fatal("correct password must verify")
	}
	if VerifyPassword(digest, "secret2") {
		t.Fatal("wrong password must not verify")
	}
}
