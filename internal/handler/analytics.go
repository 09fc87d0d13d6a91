package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dashon1/creatorflow-studio/internal/cache"
	"github.com/dashon1/creatorflow-studio/internal/middleware"
	"github.com/dashon1/creatorflow-studio/internal/model"
	"github.com/dashon1/creatorflow-studio/internal/repository"
)

const recentRunsLimit = 10

// AnalyticsHandler serves event tracking and the dashboard aggregation.
type AnalyticsHandler struct {
	Analytics *repository.AnalyticsRepo
	Runs      *repository.RunRepo
	Stats     *cache.StatsCache
}

func NewAnalyticsHandler(a *repository.AnalyticsRepo, r *repository.RunRepo, s *cache.StatsCache) *AnalyticsHandler {
	return &AnalyticsHandler{Analytics: a, Runs: r, Stats: s}
}

type dashboardResp struct {
	Stats      model.DashboardStats `json:"stats"`
	RecentRuns []model.WorkflowRun  `json:"recentRuns"`
}

// Dashboard handles GET /api/analytics/dashboard. Admins see global
// counts and recent activity across tenants; everyone else sees their
// own. Payloads are cached briefly in Redis since the counting queries
// scan growing tables.
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cacheKey := fmt.Sprintf("user:%d", user.ID)
	if user.IsAdmin() {
		cacheKey = "admin"
	}
	var resp dashboardResp
	if h.Stats.Get(ctx, cacheKey, &resp) {
		return c.JSON(http.StatusOK, resp)
	}

	var err error
	if user.IsAdmin() {
		resp.Stats, err = h.Analytics.GlobalStats(ctx)
		if err == nil {
			resp.RecentRuns, err = h.Runs.Recent(ctx, 0, recentRunsLimit)
		}
	} else {
		resp.Stats, err = h.Analytics.UserStats(ctx, user.ID)
		if err == nil {
			resp.RecentRuns, err = h.Runs.Recent(ctx, user.ID, recentRunsLimit)
		}
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	h.Stats.Set(ctx, cacheKey, resp)
	return c.JSON(http.StatusOK, resp)
}

type trackReq struct {
	EventType string          `json:"eventType"`
	EventData json.RawMessage `json:"eventData"`
}

// Track handles POST /api/analytics/track: one durable row per event,
// plus a best-effort live counter in Redis.
func (h *AnalyticsHandler) Track(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
	}
	var req trackReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.EventType) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": []FieldError{
			{Field: "eventType", Message: "eventType is required"},
		}})
	}
	data := "{}"
	if len(req.EventData) > 0 {
		data = string(req.EventData)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ip := c.RealIP()
	agent := c.Request().Header.Get("User-Agent")
	if err := h.Analytics.InsertEvent(ctx, user.ID, req.EventType, data, ip, agent); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to track event"})
	}
	h.Stats.CountEvent(ctx, req.EventType)

	return c.JSON(http.StatusOK, echo.Map{"message": "Event tracked"})
}
