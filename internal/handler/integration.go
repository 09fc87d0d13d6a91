package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dashon1/creatorflow-studio/internal/middleware"
	"github.com/dashon1/creatorflow-studio/internal/repository"
)

// IntegrationHandler serves the per-user integration CRUD.
type IntegrationHandler struct {
	Integrations *repository.IntegrationRepo
}

func NewIntegrationHandler(r *repository.IntegrationRepo) *IntegrationHandler {
	return &IntegrationHandler{Integrations: r}
}

// List handles GET /api/integrations, scoped to the caller.
func (h *IntegrationHandler) List(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Integrations.ListByUser(ctx, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"integrations": items})
}

type createIntegrationReq struct {
	Provider  string          `json:"provider"`
	Name      string          `json:"name"`
	APIKey    string          `json:"apiKey"`
	APISecret string          `json:"apiSecret"`
	Config    json.RawMessage `json:"config"`
}

// Create handles POST /api/integrations.
func (h *IntegrationHandler) Create(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
	}
	var req createIntegrationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var errs []FieldError
	if strings.TrimSpace(req.Provider) == "" {
		errs = append(errs, FieldError{Field: "provider", Message: "provider is required"})
	}
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if errs != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errs})
	}

	cfg := "{}"
	if len(req.Config) > 0 {
		cfg = string(req.Config)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Integrations.Create(ctx, user.ID, req.Provider, req.Name, req.APIKey, req.APISecret, cfg)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create integration"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "message": "Integration created successfully"})
}

// Delete handles DELETE /api/integrations/:id. Ownership is enforced in
// the query; deleting a foreign or missing id quietly succeeds.
func (h *IntegrationHandler) Delete(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Integrations.Delete(ctx, id, user.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Integration deleted successfully"})
}
