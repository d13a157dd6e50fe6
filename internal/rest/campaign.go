package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bundleForge/domain"
	"bundleForge/pkg/logger"
)

type CampaignService interface {
	PolishBundles(ctx context.Context, brandVoice string, bundleList []domain.Bundle) []domain.Bundle
	PublishCampaign(ctx context.Context, theme string, bundleList []domain.Bundle, customHTML string) (*domain.Campaign, error)
}

type CampaignHandler struct {
	campaignService CampaignService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewCampaignHandler(campaignService CampaignService) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		validator:       validator.New(),
		timeout:         120 * time.Second,
	}
}

type CreateCampaignRequest struct {
	Plan struct {
		Theme                string          `json:"theme"`
		Bundles              []BundlePayload `json:"bundles" validate:"required,min=1,dive"`
		CustomHTML           string          `json:"customHtml"`
		BundleCreationResult json.RawMessage `json:"bundleCreationResult"`
	} `json:"plan" validate:"required"`
	BrandVoice string `json:"brandVoice"`
}

func (h *CampaignHandler) CreateCampaign(c echo.Context) error {
	var req CreateCampaignRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind create campaign request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorDetail{
			Error:   "Invalid request: bundles array is required",
			Details: err.Error(),
		})
	}

	if req.Plan.Theme == "" {
		req.Plan.Theme = "Bundle Campaign"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	bundleList := toDomainBundles(req.Plan.Bundles)
	if req.BrandVoice != "" {
		bundleList = h.campaignService.PolishBundles(ctx, req.BrandVoice, bundleList)
	}

	campaign, err := h.campaignService.PublishCampaign(ctx, req.Plan.Theme, bundleList, req.Plan.CustomHTML)
	if err != nil {
		logger.Error("Failed to create email campaign", "theme", req.Plan.Theme, err)
		return c.JSON(http.StatusInternalServerError, ErrorDetail{
			Error:   "Failed to create email campaign",
			Details: err.Error(),
			Suggestions: []string{
				"Verify the Klaviyo API key and list id are configured",
				"Check that every bundle has a name and email blurb",
				"Retry with customHtml to skip the email render step",
			},
		})
	}

	var warnings []string
	if campaign.IsMock() {
		warnings = append(warnings, "Klaviyo is not configured; a mock campaign record was returned instead of a real draft")
	}

	summary := map[string]interface{}{
		"theme":             req.Plan.Theme,
		"bundleCount":       len(bundleList),
		"campaignId":        campaign.ID,
		"status":            campaign.Status,
		"brandVoiceApplied": req.BrandVoice != "",
	}
	if created := createdProductCount(req.Plan.BundleCreationResult); created >= 0 {
		summary["productsCreated"] = created
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"campaign": campaign,
		"summary":  summary,
		"preview":  campaignPreview(campaign, bundleList),
		"warnings": warnings,
	})
}

// createdProductCount reads the successful-product count out of an upstream
// create-bundles result, when the caller forwarded one. Returns -1 when the
// payload is absent or unreadable.
func createdProductCount(raw json.RawMessage) int {
	if len(raw) == 0 {
		return -1
	}
	var result domain.BundleCreationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		logger.Warn("Ignoring unreadable bundleCreationResult payload", err)
		return -1
	}
	return result.Successful
}

func (h *CampaignHandler) Usage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": `POST to this endpoint with { "plan": { "theme": "...", "bundles": [...] }, "brandVoice": "..." } to create an email campaign`,
	})
}

func campaignPreview(campaign *domain.Campaign, bundleList []domain.Bundle) map[string]interface{} {
	names := make([]string, 0, len(bundleList))
	var totalValue int64
	var discountSum float64
	for _, b := range bundleList {
		names = append(names, b.Name)
		totalValue += b.TargetPrice
		discountSum += b.DiscountPercent
	}

	var averageDiscount float64
	if len(bundleList) > 0 {
		averageDiscount = discountSum / float64(len(bundleList))
	}

	return map[string]interface{}{
		"subject":         campaign.Subject,
		"bundleNames":     names,
		"totalValue":      fmt.Sprintf("$%.2f", float64(totalValue)/100),
		"averageDiscount": fmt.Sprintf("%.1f%%", averageDiscount),
	}
}
