package handlers

import (
	"errors"
	"net/http"

	"pettouch/internal/common"
	"pettouch/internal/plans"
	"pettouch/internal/repositories"
	"pettouch/internal/services"

	"github.com/labstack/echo/v4"
)

// PlanHandlers handles plan catalog and plan change HTTP requests
type PlanHandlers struct {
	planService services.PlanService
	sessionSvc  services.SessionService
}

// NewPlanHandlers creates a new plan handlers instance
func NewPlanHandlers(planService services.PlanService, sessionSvc services.SessionService) *PlanHandlers {
	return &PlanHandlers{planService: planService, sessionSvc: sessionSvc}
}

// ListPlans handles GET /plans. The route is public; signed-in callers
// additionally get their current tier flagged.
func (h *PlanHandlers) ListPlans(c echo.Context) error {
	ctx := c.Request().Context()

	resp := map[string]interface{}{
		"plans": h.planService.Available(),
	}

	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		if session, err := h.sessionSvc.Resolve(ctx, userID); err == nil {
			resp["current_plan"] = session.Plan
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// ChangePlanRequest represents the plan change request payload
type ChangePlanRequest struct {
	Plan string `json:"plan" validate:"required"`
}

// ChangePlan handles POST /account/plan
func (h *PlanHandlers) ChangePlan(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req ChangePlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if !plans.Valid(req.Plan) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown plan")
	}

	session, err := h.planService.ChangePlan(ctx, userID, req.Plan)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to change plan")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":     session.Account,
		"plan":     session.Plan,
		"features": plans.Get(session.Plan).Features,
	})
}
