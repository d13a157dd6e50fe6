package pricing

import (
	"math"

	"bundleForge/domain"
	"bundleForge/pkg/logger"
)

// PricingService previews the price changes a campaign plan implies. It is
// demo-only and never mutates the commerce backend.
type PricingService struct{}

func NewPricingService() *PricingService {
	return &PricingService{}
}

type PriceDraft struct {
	SKU             string  `json:"sku"`
	BundleName      string  `json:"bundleName"`
	CurrentPrice    string  `json:"currentPrice"`
	NewPrice        int64   `json:"newPrice"`
	DiscountPercent float64 `json:"discountPercent"`
	BundlePrice     int64   `json:"bundlePrice"`
}

type BundleDraft struct {
	Name     string   `json:"name"`
	SKUs     []string `json:"skus"`
	Price    int64    `json:"price"`
	Discount float64  `json:"discount"`
	Status   string   `json:"status"`
}

type ApplySummary struct {
	BundlesProcessed int `json:"bundlesProcessed"`
	PriceChanges     int `json:"priceChanges"`
	TotalBundles     int `json:"totalBundles"`
}

type ApplyResult struct {
	Status       string        `json:"status"`
	Summary      ApplySummary  `json:"summary"`
	PriceDrafts  []PriceDraft  `json:"priceDrafts"`
	BundleDrafts []BundleDraft `json:"bundleDrafts"`
	Warnings     []string      `json:"warnings"`
}

// PreviewPriceChanges computes per-SKU price drafts and bundle drafts for the
// plan. Prices are real lookups in a production system; here they are evenly
// split estimates only.
func (s *PricingService) PreviewPriceChanges(bundleList []domain.Bundle, dryRun bool) *ApplyResult {
	logger.Info("Previewing price changes", "bundles", len(bundleList), "dryRun", dryRun)

	result := &ApplyResult{
		Status: "dry_run_complete",
		Warnings: []string{
			"This is a demo implementation - no actual price changes were made",
			"In production, this would create price tiers and bundle products in the commerce backend",
		},
	}
	if !dryRun {
		result.Status = "changes_applied"
	}

	bundleStatus := "draft"
	if !dryRun {
		bundleStatus = "ready_to_apply"
	}

	for _, bundle := range bundleList {
		skuCount := len(bundle.SKUs)
		if skuCount == 0 {
			skuCount = 1
		}
		itemPrice := int64(math.Round(float64(bundle.TargetPrice) / float64(skuCount)))

		for _, sku := range bundle.SKUs {
			result.PriceDrafts = append(result.PriceDrafts, PriceDraft{
				SKU:             sku,
				BundleName:      bundle.Name,
				CurrentPrice:    "TBD",
				NewPrice:        itemPrice,
				DiscountPercent: bundle.DiscountPercent,
				BundlePrice:     bundle.TargetPrice,
			})
		}

		result.BundleDrafts = append(result.BundleDrafts, BundleDraft{
			Name:     bundle.Name,
			SKUs:     bundle.SKUs,
			Price:    bundle.TargetPrice,
			Discount: bundle.DiscountPercent,
			Status:   bundleStatus,
		})
	}

	result.Summary = ApplySummary{
		BundlesProcessed: len(bundleList),
		PriceChanges:     len(result.PriceDrafts),
		TotalBundles:     len(result.BundleDrafts),
	}

	return result
}
