package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bundleForge/domain"
	"bundleForge/pkg/logger"
)

type DiscountsService interface {
	CreateDiscountsAndCodes(ctx context.Context, bundleList []domain.Bundle, theme string) *domain.DiscountCreationResult
}

type CheckoutService interface {
	Enabled() bool
	CreateBundleCheckouts(ctx context.Context, bundleList []domain.BundleDiscountResult, successURL, cancelURL string) []domain.CheckoutSessionResult
}

type DiscountsHandler struct {
	discountsService DiscountsService
	checkoutService  CheckoutService
	baseURL          string
	validator        *validator.Validate
	timeout          time.Duration
}

func NewDiscountsHandler(discountsService DiscountsService, checkoutService CheckoutService, baseURL string) *DiscountsHandler {
	return &DiscountsHandler{
		discountsService: discountsService,
		checkoutService:  checkoutService,
		baseURL:          strings.TrimSuffix(baseURL, "/"),
		validator:        validator.New(),
		timeout:          120 * time.Second,
	}
}

type CreateDiscountsRequest struct {
	Bundles                []BundlePayload `json:"bundles" validate:"required,min=1,dive"`
	CampaignTheme          string          `json:"campaignTheme"`
	CreateCheckoutSessions *bool           `json:"createCheckoutSessions"`
	SuccessURL             string          `json:"successUrl"`
	CancelURL              string          `json:"cancelUrl"`
}

func (h *DiscountsHandler) CreateDiscounts(c echo.Context) error {
	start := time.Now()

	var req CreateDiscountsRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind create discounts request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorDetail{
			Error:   "Invalid request: bundles array is required",
			Details: err.Error(),
		})
	}

	if req.CampaignTheme == "" {
		req.CampaignTheme = "Campaign"
	}
	if req.SuccessURL == "" {
		req.SuccessURL = "/checkout/success"
	}
	if req.CancelURL == "" {
		req.CancelURL = "/checkout/cancel"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result := h.discountsService.CreateDiscountsAndCodes(ctx, toDomainBundles(req.Bundles), req.CampaignTheme)

	wantCheckout := req.CreateCheckoutSessions == nil || *req.CreateCheckoutSessions
	var sessions []domain.CheckoutSessionResult
	if wantCheckout && h.checkoutService.Enabled() {
		sessions = h.checkoutService.CreateBundleCheckouts(
			ctx,
			result.BundleDiscounts,
			h.absoluteURL(req.SuccessURL),
			h.absoluteURL(req.CancelURL),
		)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":          true,
		"discountResult":   result,
		"checkoutSessions": sessions,
		"meta": map[string]interface{}{
			"theme":         req.CampaignTheme,
			"stripeEnabled": h.checkoutService.Enabled(),
			"totalTime":     time.Since(start).Milliseconds(),
		},
	})
}

func (h *DiscountsHandler) Usage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": `POST to this endpoint with { "bundles": [...], "campaignTheme": "..." } to create cart discounts, discount codes and checkout sessions`,
	})
}

func (h *DiscountsHandler) absoluteURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return h.baseURL + path
}
