package bundles

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"bundleForge/domain"
	"bundleForge/internal/repository/commercetools"
	"bundleForge/pkg/logger"
	"bundleForge/pkg/metrics"
)

type ProductRepository interface {
	EnsureBundleProductType(ctx context.Context) (domain.ProductTypeRef, error)
	EnsureStandardTaxCategory(ctx context.Context) (domain.TaxCategoryRef, error)
	CreateBundleProduct(ctx context.Context, draft commercetools.ProductDraft) (*domain.CreatedProduct, error)
}

type BundlesService struct {
	productRepo ProductRepository
	baseURL     string
}

func NewBundlesService(productRepo ProductRepository, baseURL string) *BundlesService {
	return &BundlesService{
		productRepo: productRepo,
		baseURL:     baseURL,
	}
}

// CreateBundleProducts ensures the product type and tax category exist, then
// creates one catalog product per bundle. A failure on one bundle is recorded
// and the loop continues; only the prerequisite steps can fail the batch.
func (s *BundlesService) CreateBundleProducts(ctx context.Context, bundleList []domain.Bundle, theme string) (*domain.BundleCreationResult, error) {
	productType, err := s.productRepo.EnsureBundleProductType(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure bundle product type: %w", err)
	}

	taxCategory, err := s.productRepo.EnsureStandardTaxCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure standard tax category: %w", err)
	}

	result := &domain.BundleCreationResult{
		TotalBundles: len(bundleList),
		Products:     make([]domain.BundleProductResult, 0, len(bundleList)),
		ProductType:  productType,
	}

	for _, bundle := range bundleList {
		created, err := s.createOne(ctx, bundle, productType, taxCategory, theme)
		if err != nil {
			logger.Error("Failed to create bundle product, skipping", "bundle", bundle.Name, err)
			metrics.BundleProductFailures.Inc()
			result.Failed++
			result.Products = append(result.Products, domain.BundleProductResult{
				Bundle: bundle,
				Err:    "Failed to create in catalog: " + err.Error(),
			})
			continue
		}

		result.Successful++
		result.Products = append(result.Products, domain.BundleProductResult{
			Bundle:  bundle,
			Product: created,
		})
	}

	logger.Info("Bundle products creation completed",
		"successful", result.Successful, "total", result.TotalBundles)

	return result, nil
}

func (s *BundlesService) createOne(ctx context.Context, bundle domain.Bundle, productType domain.ProductTypeRef, taxCategory domain.TaxCategoryRef, theme string) (*domain.CreatedProduct, error) {
	now := time.Now().UnixMilli()

	name := bundle.Name
	if name == "" {
		name = fmt.Sprintf("%s Bundle %d", theme, now)
	}
	description := bundle.EmailBlurb
	if description == "" {
		description = fmt.Sprintf("AI-generated bundle for %s campaign", theme)
	}

	sanitizedName := SanitizeText(name)
	sanitizedDescription := SanitizeText(description)
	slug := Slugify(name)
	if slug == "" {
		slug = fmt.Sprintf("bundle-%d", now)
	}

	images := s.collectImages(bundle, sanitizedName)

	price := int64(math.Round(float64(bundle.TargetPrice)))
	if price <= 0 {
		price = 1000
	}

	skus := make([]string, 0, len(bundle.SKUs))
	for _, sku := range bundle.SKUs {
		if sku != "" {
			skus = append(skus, sku)
		}
	}

	key := fmt.Sprintf("bundle-%d-%s", now, uuid.NewString()[:8])
	draft := commercetools.ProductDraft{
		Key:           key,
		ProductTypeID: productType.ID,
		TaxCategoryID: taxCategory.ID,
		Name:          sanitizedName,
		Description:   sanitizedDescription,
		Slug:          slug,
		MasterVariant: commercetools.VariantDraft{
			SKU:    key,
			Prices: []commercetools.PriceDraft{commercetools.NewPrice(price)},
			Images: images,
			Attributes: []commercetools.AttributeDraft{
				{Name: "bundleSkus", Value: skus},
				{Name: "discountPercent", Value: bundle.DiscountPercent},
				{Name: "campaignTheme", Value: SanitizeText(theme)},
				{Name: "aiGenerated", Value: true},
			},
		},
	}

	return s.productRepo.CreateBundleProduct(ctx, draft)
}

// collectImages converts the bundle hero image and child product images to
// validated absolute URLs. Invalid entries are dropped, never fatal.
func (s *BundlesService) collectImages(bundle domain.Bundle, bundleName string) []commercetools.ImageDraft {
	images := make([]commercetools.ImageDraft, 0, len(bundle.ChildProductImages)+1)

	if bundle.BundleImageURL != "" {
		if absolute, ok := AbsoluteImageURL(bundle.BundleImageURL, s.baseURL); ok {
			images = append(images, commercetools.ImageDraft{
				URL:        absolute,
				Label:      bundleName + " - Bundle Image",
				Dimensions: commercetools.ImageDimensions{W: 800, H: 600},
			})
		} else {
			logger.Warn("Skipping invalid bundle image url", "bundle", bundleName)
		}
	}

	for i, imageURL := range bundle.ChildProductImages {
		absolute, ok := AbsoluteImageURL(imageURL, s.baseURL)
		if !ok {
			logger.Warn("Skipping invalid child image url", "bundle", bundleName, "index", i)
			continue
		}
		images = append(images, commercetools.ImageDraft{
			URL:        absolute,
			Label:      fmt.Sprintf("%s - Product %d", bundleName, i+1),
			Dimensions: commercetools.ImageDimensions{W: 600, H: 400},
		})
	}

	return images
}
