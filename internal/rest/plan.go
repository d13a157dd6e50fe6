package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bundleForge/business/planner"
	"bundleForge/domain"
	"bundleForge/pkg/logger"
	"bundleForge/pkg/metrics"
)

type PlanService interface {
	PlanCampaign(ctx context.Context, theme string, productLimit int) (*planner.PlanOutcome, error)
	GetPlan(ctx context.Context, id string) (json.RawMessage, error)
}

type PlanHandler struct {
	planService PlanService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewPlanHandler(planService PlanService) *PlanHandler {
	return &PlanHandler{
		planService: planService,
		validator:   validator.New(),
		timeout:     180 * time.Second,
	}
}

type PlanRequest struct {
	Theme        string `json:"theme"`
	ProductLimit int    `json:"productLimit" validate:"gte=0,lte=500"`
}

func (h *PlanHandler) CreatePlan(c echo.Context) error {
	start := time.Now()

	var req PlanRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind plan request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate plan request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if req.Theme == "" {
		req.Theme = "Fall Essentials"
	}
	if req.ProductLimit == 0 {
		req.ProductLimit = 40
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	outcome, err := h.planService.PlanCampaign(ctx, req.Theme, req.ProductLimit)
	if err != nil {
		if err == planner.ErrEmptyCatalog {
			return c.JSON(http.StatusNotFound, ErrorDetail{Error: "No products found in catalog"})
		}
		logger.Error("Failed to generate campaign plan", err)
		return c.JSON(http.StatusInternalServerError, ErrorDetail{
			Error:   "Failed to generate campaign plan",
			Details: err.Error(),
		})
	}

	metrics.PlanLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"planId":   outcome.PlanID,
		"plan":     outcome.Plan,
		"products": outcome.Products,
		"meta": map[string]interface{}{
			"productsProcessed": len(outcome.Products),
			"bundlesGenerated":  len(outcome.Plan.Bundles),
			"totalTime":         time.Since(start).Milliseconds(),
		},
	})
}

func (h *PlanHandler) GetPlan(c echo.Context) error {
	planID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	plan, err := h.planService.GetPlan(ctx, planID)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to fetch campaign plan", "planId", planID, err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"planId": planID,
		"plan":   plan,
	})
}

func (h *PlanHandler) Usage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": `POST to this endpoint with { "theme": "Your Campaign Theme" } to generate a plan`,
	})
}
