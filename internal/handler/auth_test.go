package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dashon1/creatorflow-studio/internal/auth"
	"github.com/dashon1/creatorflow-studio/internal/config"
	"github.com/dashon1/creatorflow-studio/internal/model"
	"github.com/dashon1/creatorflow-studio/internal/repository"
)

// stubUserStore satisfies UserStore from fixed rows, keyed by email.
type stubUserStore struct {
	byEmail   map[string]model.User
	createErr error
	nextID    uint64
}

func (s *stubUserStore) Create(_ context.Context, email, name, passwordHash string) (uint64, error) {
	if s.createErr != nil {
		return 0, s.createErr
	}
	if _, ok := s.byEmail[email]; ok {
		return 0, repository.ErrEmailExists
	}
	if s.byEmail == nil {
		s.byEmail = map[string]model.User{}
	}
	s.nextID++
	s.byEmail[email] = model.User{
		ID: s.nextID, Email: email, Name: name, PasswordHash: passwordHash,
		Role: model.RoleUser, Status: model.StatusActive,
	}
	return s.nextID, nil
}

func (s *stubUserStore) EmailTaken(_ context.Context, email string) (bool, error) {
	_, ok := s.byEmail[email]
	return ok, nil
}

func (s *stubUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (s *stubUserStore) GetAuthUser(_ context.Context, id uint64) (model.AuthUser, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return model.AuthUser{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}, nil
		}
	}
	return model.AuthUser{}, sql.ErrNoRows
}

// postAuthStore drives an auth endpoint handler with a JSON body against
// the given store.
func postAuthStore(t *testing.T, store UserStore, path, body string, call func(*AuthHandler, echo.Context) error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewAuthHandler(config.Config{JWTSecret: "test"}, store)
	if err := call(h, c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

// postAuth is postAuthStore for cases that fail validation before the
// store is consulted.
func postAuth(t *testing.T, path, body string, call func(*AuthHandler, echo.Context) error) *httptest.ResponseRecorder {
	t.Helper()
	return postAuthStore(t, nil, path, body, call)
}

func fieldErrors(t *testing.T, rec *httptest.ResponseRecorder) map[string]bool {
	t.Helper()
	var body struct {
		Error []FieldError `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return fields(body.Error)
}

func TestRegisterValidation(t *testing.T) {
	rec := postAuth(t, "/api/auth/register",
		`{"email":"not-an-email","password":"123","name":"A"}`,
		(*AuthHandler).Register)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	got := fieldErrors(t, rec)
	for _, f := range []string{"email", "password", "name"} {
		if !got[f] {
			t.Fatalf("missing %s error in %s", f, rec.Body.String())
		}
	}
}

func TestRegisterMalformedBody(t *testing.T) {
	rec := postAuth(t, "/api/auth/register", `{"email":`, (*AuthHandler).Register)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRegisterIssuesTokenAndUser(t *testing.T) {
	store := &stubUserStore{}
	rec := postAuthStore(t, store, "/api/auth/register",
		`{"email":"a@x.com","password":"secret1","name":"Ann"}`,
		(*AuthHandler).Register)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Token string         `json:"token"`
		User  model.AuthUser `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.User.Role != model.RoleUser {
		t.Fatalf("role = %q, want %q", body.User.Role, model.RoleUser)
	}
	if id, err := auth.VerifyAccessToken("test", body.Token); err != nil || id != body.User.ID {
		t.Fatalf("returned token does not verify for user %d: %v", body.User.ID, err)
	}
	// The stored digest must verify the plaintext back.
	u, err := store.GetByEmail(context.Background(), "a@x.com")
	if err != nil || !auth.VerifyPassword(u.PasswordHash, "secret1") {
		t.Fatalf("stored digest does not verify: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := &stubUserStore{}
	first := postAuthStore(t, store, "/api/auth/register",
		`{"email":"a@x.com","password":"secret1","name":"Ann"}`,
		(*AuthHandler).Register)
	if first.Code != http.StatusOK {
		t.Fatalf("first registration: status = %d, want 200", first.Code)
	}
	second := postAuthStore(t, store, "/api/auth/register",
		`{"email":"a@x.com","password":"secret2","name":"Ann2"}`,
		(*AuthHandler).Register)
	if second.Code != http.StatusBadRequest {
		t.Fatalf("second registration: status = %d, want 400", second.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(second.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "Email already registered" {
		t.Fatalf("message = %q", body.Error)
	}
}

func TestRegisterDuplicateEmailRace(t *testing.T) {
	// The existence check can race a concurrent insert; the unique-index
	// error from Create must map to the same 400.
	store := &stubUserStore{createErr: repository.ErrEmailExists}
	rec := postAuthStore(t, store, "/api/auth/register",
		`{"email":"a@x.com","password":"secret1","name":"Ann"}`,
		(*AuthHandler).Register)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Email already registered") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestLoginVerifiesCredentials(t *testing.T) {
	store := &stubUserStore{}
	if _, err := store.Create(context.Background(), "a@x.com", "Ann", auth.HashPassword("secret1")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	ok := postAuthStore(t, store, "/api/auth/login",
		`{"email":"a@x.com","password":"secret1"}`, (*AuthHandler).Login)
	if ok.Code != http.StatusOK {
		t.Fatalf("good login: status = %d: %s", ok.Code, ok.Body.String())
	}

	// Wrong password and unknown email are the same 401 to the client.
	for _, body := range []string{
		`{"email":"a@x.com","password":"wrong-1"}`,
		`{"email":"b@x.com","password":"secret1"}`,
	} {
		rec := postAuthStore(t, store, "/api/auth/login", body, (*AuthHandler).Login)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("body %s: status = %d, want 401", body, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Invalid credentials") {
			t.Fatalf("body %s: response = %s", body, rec.Body.String())
		}
	}
}

func TestLoginValidation(t *testing.T) {
	rec := postAuth(t, "/api/auth/login",
		`{"email":"a@x.com","password":"123"}`,
		(*AuthHandler).Login)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	got := fieldErrors(t, rec)
	if !got["password"] || got["name"] {
		t.Fatalf("unexpected fields in %s", rec.Body.String())
	}
}
