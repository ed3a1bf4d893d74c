package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pettouch/internal/common"
	"pettouch/internal/models"
	"pettouch/internal/plans"
	"pettouch/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func plansContext(authedUser *uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/plans", nil)
	if authedUser != nil {
		req = req.WithContext(common.WithUserID(req.Context(), *authedUser))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestListPlans_Anonymous(t *testing.T) {
	planSvc := new(mockPlanService)
	h := NewPlanHandlers(planSvc, new(mockSessionService))

	planSvc.On("Available").Return(plans.Catalog())

	c, rec := plansContext(nil)
	require.NoError(t, h.ListPlans(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "plans")
	assert.NotContains(t, body, "current_plan")
}

func TestListPlans_SignedInGetsCurrentPlan(t *testing.T) {
	planSvc := new(mockPlanService)
	sessionSvc := new(mockSessionService)
	h := NewPlanHandlers(planSvc, sessionSvc)

	userID := uuid.New()
	planSvc.On("Available").Return(plans.Catalog())
	sessionSvc.On("Resolve", mock.Anything, userID).Return(&services.Session{
		Account: &models.Profile{ID: userID, Plan: string(plans.TierComfort)},
		Plan:    plans.TierComfort,
	}, nil)

	c, rec := plansContext(&userID)
	require.NoError(t, h.ListPlans(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "comfort", body["current_plan"])
}
