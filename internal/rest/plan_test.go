package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bundleForge/business/planner"
	"bundleForge/domain"
)

type fakePlanService struct {
	outcome *planner.PlanOutcome
	planErr error
	getErr  error
	theme   string
	limit   int
}

func (f *fakePlanService) PlanCampaign(_ context.Context, theme string, productLimit int) (*planner.PlanOutcome, error) {
	f.theme = theme
	f.limit = productLimit
	return f.outcome, f.planErr
}

func (f *fakePlanService) GetPlan(_ context.Context, _ string) (json.RawMessage, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return json.RawMessage(`{"theme":"Fall Essentials"}`), nil
}

func planRequest(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreatePlanDefaults(t *testing.T) {
	svc := &fakePlanService{
		outcome: &planner.PlanOutcome{
			PlanID: "plan_1_abc",
			Plan: domain.CampaignPlan{
				Theme:   "Fall Essentials",
				Bundles: []domain.Bundle{{Name: "Cozy Morning"}},
			},
			Products: map[string]domain.CatalogItem{"sku-mug": {ID: "sku-mug"}},
		},
	}
	handler := NewPlanHandler(svc)

	c, rec := planRequest(t, `{}`)
	require.NoError(t, handler.CreatePlan(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Fall Essentials", svc.theme)
	assert.Equal(t, 40, svc.limit)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "plan_1_abc", body["planId"])

	meta := body["meta"].(map[string]interface{})
	assert.EqualValues(t, 1, meta["productsProcessed"])
	assert.EqualValues(t, 1, meta["bundlesGenerated"])
}

func TestCreatePlanEmptyCatalog(t *testing.T) {
	handler := NewPlanHandler(&fakePlanService{planErr: planner.ErrEmptyCatalog})

	c, rec := planRequest(t, `{"theme":"Fall"}`)
	require.NoError(t, handler.CreatePlan(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No products found in catalog")
}

func TestCreatePlanUpstreamFailure(t *testing.T) {
	handler := NewPlanHandler(&fakePlanService{planErr: errors.New("model unavailable")})

	c, rec := planRequest(t, `{"theme":"Fall"}`)
	require.NoError(t, handler.CreatePlan(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to generate campaign plan")
}

func TestGetPlanNotFound(t *testing.T) {
	handler := NewPlanHandler(&fakePlanService{getErr: fmt.Errorf("fetching stored plan: %w", domain.ErrPlanNotFound)})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/plan/:id")
	c.SetParamNames("id")
	c.SetParamValues("plan_missing")

	require.NoError(t, handler.GetPlan(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
