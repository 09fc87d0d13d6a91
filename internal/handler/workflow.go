package handler

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dashon1/creatorflow-studio/internal/middleware"
	"github.com/dashon1/creatorflow-studio/internal/queue"
	"github.com/dashon1/creatorflow-studio/internal/repository"
	queue_publisher "github.com/dashon1/creatorflow-studio/internal/service"
)

// WorkflowHandler serves workflow CRUD and the run trigger.
type WorkflowHandler struct {
	Workflows *repository.WorkflowRepo
	Runs      *repository.RunRepo
}

func NewWorkflowHandler(w *repository.WorkflowRepo, r *repository.RunRepo) *WorkflowHandler {
	return &WorkflowHandler{Workflows: w, Runs: r}
}

// List handles GET /api/workflows, scoped to the caller.
func (h *WorkflowHandler) List(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Workflows.ListByUser(ctx, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"workflows": items})
}

type createWorkflowReq struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Config      json.RawMessage `json:"config"`
}

// Create handles POST /api/workflows.
func (h *WorkflowHandler) Create(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
	}
	var req createWorkflowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var errs []FieldError
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(req.Type) == "" {
		errs = append(errs, FieldError{Field: "type", Message: "type is required"})
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

	id, err := h.Workflows.Create(ctx, user.ID, req.Name, req.Description, req.Type, cfg)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create workflow"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "message": "Workflow created successfully"})
}

// Run handles POST /api/workflows/:id/run. The request path records the
// run and enqueues it; completion happens in the background consumer. The
// posted body is passed through as the run input verbatim.
func (h *WorkflowHandler) Run(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
	}
	workflowID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	input := "{}"
	if body, err := io.ReadAll(c.Request().Body); err == nil && len(body) > 0 {
		if json.Valid(body) {
			input = string(body)
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	owned, err := h.Workflows.Owned(ctx, workflowID, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to run workflow"})
	}
	if !owned {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "workflow not found"})
	}

	started := time.Now().UTC()
	runID, err := h.Runs.Create(ctx, workflowID, user.ID, input)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to run workflow"})
	}
	if err := h.Workflows.MarkRun(ctx, workflowID); err != nil {
		log.Printf("workflow: mark run failed for workflow %d: %v", workflowID, err)
	}

	// A publish failure leaves the run in "running"; the client still gets
	// its run id and the stuck run is visible on the dashboard.
	if err := queue_publisher.PublishWorkflowRun(ctx, queue.WorkflowRunEvent{
		RunID:      runID,
		WorkflowID: workflowID,
		UserID:     user.ID,
		Input:      input,
		StartedAt:  started.Format(time.RFC3339),
	}); err != nil {
		log.Printf("workflow: enqueue run %d failed: %v", runID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"runId": runID, "message": "Workflow started"})
}
