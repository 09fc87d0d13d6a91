package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dashon1/creatorflow-studio/internal/model"
	"github.com/dashon1/creatorflow-studio/internal/repository"
)

// AdminHandler serves the user-management endpoints. Routes using it are
// registered behind both gate stages, so handlers can assume an admin
// identity.
type AdminHandler struct {
	Users *repository.UserRepo
}

func NewAdminHandler(u *repository.UserRepo) *AdminHandler {
	return &AdminHandler{Users: u}
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

type updateUserReq struct {
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

// UpdateUser handles PUT /api/admin/users/:id. Only role and status are
// mutable, both optional, both restricted to their enums. There is no
// delete: accounts are suspended, never removed.
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	var errs []FieldError
	if req.Role != nil && !model.ValidRole(*req.Role) {
		errs = append(errs, FieldError{Field: "role", Message: "role must be one of user, admin, super_admin"})
	}
	if req.Status != nil && !model.ValidStatus(*req.Status) {
		errs = append(errs, FieldError{Field: "status", Message: "status must be one of active, inactive, suspended"})
	}
	if errs != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errs})
	}
	if req.Role == nil && req.Status == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No updates provided"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdateRoleStatus(ctx, id, req.Role, req.Status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User updated successfully"})
}
