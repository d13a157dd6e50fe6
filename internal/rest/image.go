package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bundleForge/business/planner"
	"bundleForge/pkg/logger"
)

type ImageService interface {
	GenerateImage(ctx context.Context, bundleName, theme string, productNames []string, style string) (*planner.GeneratedImage, error)
}

type ImageHandler struct {
	imageService ImageService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewImageHandler(imageService ImageService) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
		validator:    validator.New(),
		timeout:      120 * time.Second,
	}
}

type GenerateImageRequest struct {
	BundleName   string   `json:"bundleName" validate:"required"`
	Theme        string   `json:"theme"`
	ProductNames []string `json:"productNames"`
	Style        string   `json:"style"`
}

func (h *ImageHandler) GenerateBundleImage(c echo.Context) error {
	var req GenerateImageRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind generate image request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorDetail{
			Error:   "bundleName is required",
			Details: err.Error(),
		})
	}

	if req.Theme == "" {
		req.Theme = "Product Bundle"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	image, err := h.imageService.GenerateImage(ctx, req.BundleName, req.Theme, req.ProductNames, req.Style)
	if err != nil {
		logger.Error("Failed to generate bundle image", "bundleName", req.BundleName, err)
		return c.JSON(http.StatusInternalServerError, ErrorDetail{
			Error:   "Failed to generate bundle image",
			Details: err.Error(),
			Suggestions: []string{
				"Verify the OpenAI API key is configured",
				"Check the image generation quota for your account",
				"Retry with a shorter bundle name or style",
			},
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"bundleName": req.BundleName,
		"theme":      req.Theme,
		"imageUrl":   image.ImageURL,
		"localPath":  image.LocalPath,
		"prompt":     image.Prompt,
	})
}

func (h *ImageHandler) Usage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": `POST to this endpoint with { "bundleName": "...", "theme": "...", "productNames": [...] } to generate a bundle hero image`,
	})
}
