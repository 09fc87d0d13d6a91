package handler

import "testing"

func fields(errs []FieldError) map[string]bool {
	m := map[string]bool{}
	for _, e := range errs {
		m[e.Field] = true
	}
	return m
}

func TestValidateCredentialsOK(t *testing.T) {
	if errs := validateCredentials("a@x.com", "secret1", "Ann", true); errs != nil {
		t.Fatalf("valid input rejected: %v", errs)
	}
	// name not required at login
	if errs := validateCredentials("a@x.com", "secret1", "", false); errs != nil {
		t.Fatalf("valid login input rejected: %v", errs)
	}
}

func TestValidateCredentialsBadEmail(t *testing.T) {
	for _, email := range []string{"", "ann", "ann@", "@x.com", "a b@x.com", "a@x"} {
		errs := validateCredentials(email, "secret1", "Ann", true)
		if !fields(errs)["email"] {
			t.Fatalf("email %q accepted", email)
		}
	}
}

func TestValidateCredentialsShortPassword(t *testing.T) {
	errs := validateCredentials("a@x.com", "12345", "Ann", true)
	if !fields(errs)["password"] {
		t.Fatal("5-char password accepted")
	}
	if errs := validateCredentials("a@x.com", "123456", "Ann", true); fields(errs)["password"] {
		t.Fatal("6-char password rejected")
	}
}

func TestValidateCredentialsShortName(t *testing.T) {
	errs := validateCredentials("a@x.com", "secret1", "A", true)
	if !fields(errs)["name"] {
		t.Fatal("1-char name accepted")
	}
	if errs := validateCredentials("a@x.com", "secret1", " A ", true); !fields(errs)["name"] {
		t.Fatal("padded 1-char name accepted")
	}
}

func TestValidateCredentialsAccumulates(t *testing.T) {
	errs := validateCredentials("nope", "123", "A", true)
	got := fields(errs)
	for _, f := range []string{"email", "password", "name"} {
		if !got[f] {
			t.Fatalf("missing field error for %s in %v", f, errs)
		}
	}
}
