package rest

import (
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bundleForge/business/pricing"
	"bundleForge/domain"
	"bundleForge/pkg/logger"
)

type PricingService interface {
	PreviewPriceChanges(bundleList []domain.Bundle, dryRun bool) *pricing.ApplyResult
}

type ApplyHandler struct {
	pricingService PricingService
	validator      *validator.Validate
}

func NewApplyHandler(pricingService PricingService) *ApplyHandler {
	return &ApplyHandler{
		pricingService: pricingService,
		validator:      validator.New(),
	}
}

type ApplyRequest struct {
	Plan struct {
		Bundles []BundlePayload `json:"bundles" validate:"required,min=1,dive"`
	} `json:"plan" validate:"required"`
	DryRun *bool `json:"dryRun"`
}

func (h *ApplyHandler) ApplyPriceChanges(c echo.Context) error {
	var req ApplyRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind apply request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorDetail{
			Error:   "Invalid request: bundles array is required",
			Details: err.Error(),
		})
	}

	dryRun := req.DryRun == nil || *req.DryRun
	result := h.pricingService.PreviewPriceChanges(toDomainBundles(req.Plan.Bundles), dryRun)

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

func (h *ApplyHandler) Usage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": `POST to this endpoint with { "plan": { "bundles": [...] }, "dryRun": true } to preview price changes`,
	})
}
