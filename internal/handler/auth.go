package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dashon1/creatorflow-studio/internal/auth"
	"github.com/dashon1/creatorflow-studio/internal/config"
	"github.com/dashon1/creatorflow-studio/internal/middleware"
	"github.com/dashon1/creatorflow-studio/internal/model"
	"github.com/dashon1/creatorflow-studio/internal/repository"
)

// UserStore is the slice of the user repository the auth endpoints need.
// *repository.UserRepo satisfies it; tests substitute stubs. It includes
// the resolver method so the same value feeds the authentication stage.
type UserStore interface {
	Create(ctx context.Context, email, name, passwordHash string) (uint64, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetAuthUser(ctx context.Context, id uint64) (model.AuthUser, error)
}

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, u UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type authResp struct {
	Token string         `json:"token"`
	User  model.AuthUser `json:"user"`
}

// Register creates a user with role "user" and returns a session token
// immediately, so registration doubles as the first login.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if errs := validateCredentials(req.Email, req.Password, req.Name, true); errs != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	taken, err := h.Users.EmailTaken(ctx, req.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Registration failed"})
	}
	if taken {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email already registered"})
	}

	uid, err := h.Users.Create(ctx, req.Email, req.Name, auth.HashPassword(req.Password))
	if err != nil {
		// The uniqueness check above races with concurrent registration;
		// the unique index has the final word.
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Registration failed"})
	}

	token, err := auth.NewAccessToken(h.Cfg.JWTSecret, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Registration failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		Token: token.Token,
		User:  model.AuthUser{ID: uid, Email: req.Email, Name: req.Name, Role: model.RoleUser},
	})
}

// Login verifies credentials and returns a fresh session token. Unknown
// email and wrong password are indistinguishable to the client.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if errs := validateCredentials(req.Email, req.Password, "", false); errs != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Login failed"})
	}
	if !auth.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}

	token, err := auth.NewAccessToken(h.Cfg.JWTSecret, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Login failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		Token: token.Token,
		User:  model.AuthUser{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role},
	})
}

// Me returns the identity the gate resolved for this request.
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}
