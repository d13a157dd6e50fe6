package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bundleForge/domain"
	"bundleForge/pkg/logger"
)

type BundlesService interface {
	CreateBundleProducts(ctx context.Context, bundleList []domain.Bundle, theme string) (*domain.BundleCreationResult, error)
}

type BundlesHandler struct {
	bundlesService BundlesService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewBundlesHandler(bundlesService BundlesService) *BundlesHandler {
	return &BundlesHandler{
		bundlesService: bundlesService,
		validator:      validator.New(),
		timeout:        120 * time.Second,
	}
}

type CreateBundlesRequest struct {
	Plan struct {
		Theme   string          `json:"theme"`
		Bundles []BundlePayload `json:"bundles" validate:"required,min=1,dive"`
	} `json:"plan" validate:"required"`
}

func (h *BundlesHandler) CreateBundles(c echo.Context) error {
	start := time.Now()

	var req CreateBundlesRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind create bundles request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorDetail{
			Error:   "Invalid plan: bundles array is required",
			Details: err.Error(),
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.bundlesService.CreateBundleProducts(ctx, toDomainBundles(req.Plan.Bundles), req.Plan.Theme)
	if err != nil {
		logger.Error("Failed to create bundle products", "theme", req.Plan.Theme, err)
		return c.JSON(http.StatusInternalServerError, ErrorDetail{
			Error:   "Failed to create bundle products",
			Details: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"bundleResult": result,
		"meta": map[string]interface{}{
			"theme":     req.Plan.Theme,
			"totalTime": time.Since(start).Milliseconds(),
		},
	})
}

func (h *BundlesHandler) Usage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": `POST to this endpoint with { "plan": { "theme": "...", "bundles": [...] } } to create bundle products in the catalog`,
	})
}
