package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"bundleForge/domain"
	"bundleForge/pkg/logger"
	"bundleForge/pkg/metrics"
)

type CatalogRepository interface {
	GetCandidateProducts(ctx context.Context, limit int) ([]domain.CatalogItem, error)
	SaveCampaignPlan(ctx context.Context, id string, payload interface{}) error
	GetCampaignPlan(ctx context.Context, id string) (json.RawMessage, error)
}

type AIGateway interface {
	Configured() bool
	ChatJSON(ctx context.Context, system, user string, temperature float64) (string, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

type ImageStore interface {
	SaveFromURL(ctx context.Context, imageURL, bundleName, theme string) (string, error)
}

type PlannerService struct {
	catalogRepo CatalogRepository
	aiRepo      AIGateway
	images      ImageStore
}

func NewPlannerService(catalogRepo CatalogRepository, aiRepo AIGateway, images ImageStore) *PlannerService {
	return &PlannerService{
		catalogRepo: catalogRepo,
		aiRepo:      aiRepo,
		images:      images,
	}
}

var ErrEmptyCatalog = fmt.Errorf("no products found in catalog")

type PlanOutcome struct {
	PlanID   string
	Plan     domain.CampaignPlan
	Products map[string]domain.CatalogItem
}

// PlanCampaign runs steps 1-3 of the pipeline: fetch the catalog sample, ask
// the model for bundles, enhance each bundle with images, persist the plan.
func (s *PlannerService) PlanCampaign(ctx context.Context, theme string, productLimit int) (*PlanOutcome, error) {
	products, err := s.catalogRepo.GetCandidateProducts(ctx, productLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	if len(products) == 0 {
		return nil, ErrEmptyCatalog
	}

	logger.Info("Planning campaign", "theme", theme, "products", len(products))

	plan, err := s.planBundles(ctx, theme, products)
	if err != nil {
		return nil, err
	}

	planID := fmt.Sprintf("plan_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
	stored := domain.StoredCampaignPlan{
		CampaignPlan: *plan,
		CreatedAt:    time.Now().UTC(),
		ProductCount: len(products),
	}
	if err := s.catalogRepo.SaveCampaignPlan(ctx, planID, stored); err != nil {
		return nil, fmt.Errorf("failed to save campaign plan: %w", err)
	}

	productMap := make(map[string]domain.CatalogItem, len(products))
	for _, product := range products {
		productMap[product.ID] = product
	}

	metrics.PlanRequests.Inc()
	logger.Info("Campaign plan generated", "planId", planID, "bundles", len(plan.Bundles))

	return &PlanOutcome{PlanID: planID, Plan: *plan, Products: productMap}, nil
}

// planBundles is the single critical model call: any call or parse failure
// fails the whole plan, there is no partial result.
func (s *PlannerService) planBundles(ctx context.Context, theme string, catalogSample []domain.CatalogItem) (*domain.CampaignPlan, error) {
	content, err := s.aiRepo.ChatJSON(ctx, planSystemPrompt, buildPlanUserPrompt(theme, catalogSample), 0.7)
	if err != nil {
		return nil, fmt.Errorf("failed to generate campaign plan: %w", err)
	}

	var plan domain.CampaignPlan
	if err := json.Unmarshal([]byte(content), &plan); err != nil {
		return nil, fmt.Errorf("failed to parse campaign plan: %w", err)
	}

	for i := range plan.Bundles {
		bundle := &plan.Bundles[i]

		if strings.TrimSpace(bundle.Name) == "" {
			bundle.Name = fmt.Sprintf("%s Bundle %d", theme, i+1)
		} else {
			bundle.Name = strings.TrimSpace(bundle.Name)
		}
		if strings.TrimSpace(bundle.EmailBlurb) == "" {
			bundle.EmailBlurb = fmt.Sprintf("Discover amazing savings with this %s collection.", strings.ToLower(bundle.Name))
		}

		bundle.ChildProductImages = childProductImages(bundle.SKUs, catalogSample)
		bundle.BundleImageURL = s.generateBundleImage(ctx, theme, bundle.Name, bundle.ChildProductImages, catalogSample)
	}

	if plan.Theme == "" {
		plan.Theme = theme
	}
	if plan.OverallStrategy == "" {
		plan.OverallStrategy = "Generated bundle campaign strategy"
	}
	if plan.TargetAudience == "" {
		plan.TargetAudience = "General audience"
	}

	return &plan, nil
}

// childProductImages resolves each SKU's main image from the catalog sample,
// dropping SKUs without one.
func childProductImages(skus []string, catalogSample []domain.CatalogItem) []string {
	images := make([]string, 0, len(skus))
	for _, sku := range skus {
		for _, item := range catalogSample {
			if item.ID == sku && item.MainImage != "" {
				images = append(images, item.MainImage)
				break
			}
		}
	}
	return images
}

// generateBundleImage never fails the plan: every error path degrades to the
// first child image, then to a placeholder carrying the bundle name.
func (s *PlannerService) generateBundleImage(ctx context.Context, theme, bundleName string, childImages []string, catalogSample []domain.CatalogItem) string {
	fallback := PlaceholderImageURL(bundleName)
	if len(childImages) > 0 {
		fallback = childImages[0]
	}

	productNames := productNamesForImages(childImages, catalogSample)
	if len(productNames) == 0 {
		logger.Warn("No product names for image prompt, using fallback", "bundle", bundleName)
		metrics.ImageFallbacks.Inc()
		return fallback
	}

	prompt := BuildImagePrompt(defaultImageStyle, bundleName, theme, productNames)

	imageURL, err := s.aiRepo.GenerateImage(ctx, prompt)
	if err != nil {
		logger.Error("Image generation failed, using fallback", "bundle", bundleName, err)
		metrics.ImageFallbacks.Inc()
		return fallback
	}

	localPath, err := s.images.SaveFromURL(ctx, imageURL, bundleName, theme)
	if err != nil {
		logger.Error("Failed to save generated image, keeping remote url", "bundle", bundleName, err)
		return imageURL
	}

	return localPath
}

func productNamesForImages(childImages []string, catalogSample []domain.CatalogItem) []string {
	included := make(map[string]bool, len(childImages))
	for _, image := range childImages {
		included[image] = true
	}

	names := make([]string, 0, len(catalogSample))
	for _, item := range catalogSample {
		if item.MainImage != "" && included[item.MainImage] {
			names = append(names, item.Name)
		}
	}
	return names
}

// PlaceholderImageURL is the last-resort bundle image, a text placeholder
// encoding the bundle name.
func PlaceholderImageURL(bundleName string) string {
	return "https://via.placeholder.com/600x400/667eea/ffffff?text=" + url.QueryEscape(bundleName)
}

type GeneratedImage struct {
	ImageURL  string
	LocalPath string
	Prompt    string
}

// GenerateImage backs the standalone image endpoint: same prompt and
// persistence as planning, but failures surface to the caller.
func (s *PlannerService) GenerateImage(ctx context.Context, bundleName, theme string, productNames []string, style string) (*GeneratedImage, error) {
	if style == "" {
		style = defaultImageStyle
	}
	prompt := BuildImagePrompt(style, bundleName, theme, productNames)

	imageURL, err := s.aiRepo.GenerateImage(ctx, prompt)
	if err != nil {
		return nil, err
	}

	localPath, err := s.images.SaveFromURL(ctx, imageURL, bundleName, theme)
	if err != nil {
		logger.Error("Failed to save generated image, keeping remote url", "bundle", bundleName, err)
		localPath = imageURL
	}

	return &GeneratedImage{ImageURL: imageURL, LocalPath: localPath, Prompt: prompt}, nil
}

func (s *PlannerService) GetPlan(ctx context.Context, id string) (json.RawMessage, error) {
	return s.catalogRepo.GetCampaignPlan(ctx, id)
}
