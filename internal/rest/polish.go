package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bundleForge/domain"
	"bundleForge/internal/repository/polisher"
	"bundleForge/pkg/logger"
)

type PolisherGateway interface {
	Configured() bool
	PolishEmail(ctx context.Context, request polisher.PolishRequest) (*polisher.PolishResponse, error)
}

type PolishHandler struct {
	polisherGateway PolisherGateway
	validator       *validator.Validate
	timeout         time.Duration
}

func NewPolishHandler(polisherGateway PolisherGateway) *PolishHandler {
	return &PolishHandler{
		polisherGateway: polisherGateway,
		validator:       validator.New(),
		timeout:         90 * time.Second,
	}
}

type PolishEmailRequest struct {
	HTML                 string          `json:"html" validate:"required"`
	CampaignText         string          `json:"campaignText"`
	GenerateImage        bool            `json:"generateImage"`
	Bundles              []BundlePayload `json:"bundles"`
	BundleCreationResult json.RawMessage `json:"bundleCreationResult"`
}

func (h *PolishHandler) PolishEmail(c echo.Context) error {
	var req PolishEmailRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind polish email request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorDetail{
			Error:   "html is required",
			Details: err.Error(),
		})
	}

	if !h.polisherGateway.Configured() {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":       true,
			"optimizedHtml": req.HTML,
			"message":       "Polish service is not configured; returning original HTML",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	bundleList := toDomainBundles(req.Bundles)
	polished, err := h.polisherGateway.PolishEmail(ctx, polisher.PolishRequest{
		HTML:                 req.HTML,
		CampaignText:         req.CampaignText,
		GenerateImage:        req.GenerateImage,
		Bundles:              bundleList,
		BundleCreationResult: req.BundleCreationResult,
		BundleMetadata:       buildBundleMetadata(bundleList),
	})
	if err != nil {
		logger.Error("Polish service call failed", err)
		return c.JSON(http.StatusBadGateway, ErrorDetail{
			Error:   "Polish service call failed",
			Details: err.Error(),
			Suggestions: []string{
				"Verify the POLISHER_URL endpoint is reachable",
				"Retry without generateImage to reduce upstream load",
			},
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":       true,
		"optimizedHtml": polished.OptimizedHTML,
		"headerImage":   polished.HeaderImage,
		"message":       polished.Message,
	})
}

func (h *PolishHandler) Usage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": `POST to this endpoint with { "html": "...", "campaignText": "..." } to polish campaign email HTML`,
	})
}

func buildBundleMetadata(bundleList []domain.Bundle) []polisher.BundleMetadata {
	metadata := make([]polisher.BundleMetadata, 0, len(bundleList))
	for _, b := range bundleList {
		metadata = append(metadata, polisher.BundleMetadata{
			Name:     b.Name,
			SKUs:     b.SKUs,
			SKUCount: len(b.SKUs),
			Price:    b.TargetPrice,
			Discount: b.DiscountPercent,
			HasImage: b.BundleImageURL != "",
			ImageURL: b.BundleImageURL,
		})
	}
	return metadata
}
