package discounts

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"bundleForge/domain"
	"bundleForge/internal/repository/commercetools"
	"bundleForge/pkg/logger"
	"bundleForge/pkg/metrics"
)

type DiscountRepository interface {
	CreateCartDiscount(ctx context.Context, draft commercetools.CartDiscountDraft) (string, error)
	CreateDiscountCode(ctx context.Context, draft commercetools.DiscountCodeDraft) (string, error)
}

type DiscountsService struct {
	discountRepo    DiscountRepository
	checkoutBaseURL string
}

func NewDiscountsService(discountRepo DiscountRepository, checkoutBaseURL string) *DiscountsService {
	return &DiscountsService{
		discountRepo:    discountRepo,
		checkoutBaseURL: checkoutBaseURL,
	}
}

// CreateDiscountsAndCodes creates a conditional cart discount plus a bound
// discount code per bundle. Per-bundle failures are recorded and the loop
// continues.
func (s *DiscountsService) CreateDiscountsAndCodes(ctx context.Context, bundleList []domain.Bundle, theme string) *domain.DiscountCreationResult {
	result := &domain.DiscountCreationResult{
		TotalBundles:    len(bundleList),
		BundleDiscounts: make([]domain.BundleDiscountResult, 0, len(bundleList)),
	}

	for _, bundle := range bundleList {
		entry, err := s.createOne(ctx, bundle, theme)
		if err != nil {
			logger.Error("Failed to create discount for bundle", "bundle", bundle.Name, err)
			metrics.DiscountFailures.Inc()
			result.Failed++
			result.BundleDiscounts = append(result.BundleDiscounts, domain.BundleDiscountResult{
				Bundle: bundle,
				Err:    "Failed to create discount code: " + err.Error(),
			})
			continue
		}

		result.Successful++
		result.BundleDiscounts = append(result.BundleDiscounts, *entry)
	}

	logger.Info("Bundle discounts creation completed",
		"successful", result.Successful, "total", result.TotalBundles)

	return result
}

func (s *DiscountsService) createOne(ctx context.Context, bundle domain.Bundle, theme string) (*domain.BundleDiscountResult, error) {
	originalPrice := EstimateOriginalPrice(bundle.TargetPrice, bundle.DiscountPercent)
	now := time.Now()

	cartDiscountID, err := s.discountRepo.CreateCartDiscount(ctx, commercetools.CartDiscountDraft{
		Key:           fmt.Sprintf("bundle-discount-%d-%s", now.UnixMilli(), uuid.NewString()[:8]),
		Name:          bundle.Name + " Bundle Discount",
		Description:   fmt.Sprintf("Auto-discount for %s bundle in %s campaign", bundle.Name, theme),
		CentAmount:    originalPrice - bundle.TargetPrice,
		CartPredicate: BuildCartPredicate(bundle.SKUs),
		LineItemsPred: skuInPredicate(bundle.SKUs),
	})
	if err != nil {
		return nil, err
	}

	code := BuildDiscountCode(theme, bundle.Name, now)
	discountCodeID, err := s.discountRepo.CreateDiscountCode(ctx, commercetools.DiscountCodeDraft{
		Key:            fmt.Sprintf("bundle-code-%d-%s", now.UnixMilli(), uuid.NewString()[:8]),
		Name:           bundle.Name + " Bundle Code",
		Description:    fmt.Sprintf("Discount code for %s bundle", bundle.Name),
		Code:           code,
		CartDiscountID: cartDiscountID,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Bundle discount setup complete", "bundle", bundle.Name, "code", code)

	return &domain.BundleDiscountResult{
		Bundle:         bundle,
		OriginalPrice:  originalPrice,
		CartDiscountID: cartDiscountID,
		DiscountCodeID: discountCodeID,
		DiscountCode:   code,
		CheckoutURL:    BuildCheckoutURL(s.checkoutBaseURL, bundle.SKUs, code),
	}, nil
}

// EstimateOriginalPrice derives a pre-discount price from the target price
// and discount percent. It is an estimate, not a real price lookup.
func EstimateOriginalPrice(targetPrice int64, discountPercent float64) int64 {
	if discountPercent <= 0 || discountPercent >= 100 {
		return targetPrice
	}
	return int64(math.Round(float64(targetPrice) / (1 - discountPercent/100)))
}

// BuildCartPredicate requires every bundle SKU in the cart with an exact
// count match before the discount applies.
func BuildCartPredicate(skus []string) string {
	in := skuInPredicate(skus)
	return fmt.Sprintf("lineItems(%s) and lineItems(%s).count() = %d", in, in, len(skus))
}

func skuInPredicate(skus []string) string {
	quoted := make([]string, len(skus))
	for i, sku := range skus {
		quoted[i] = `"` + sku + `"`
	}
	return "sku in (" + strings.Join(quoted, ", ") + ")"
}

// BuildDiscountCode derives a human-readable code from the theme, bundle name
// and the last four digits of the current unix-millisecond timestamp.
func BuildDiscountCode(theme, bundleName string, now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	return strings.ToUpper(stripSpaces(theme)) + "-" + strings.ToUpper(stripSpaces(bundleName)) + "-" + millis[len(millis)-4:]
}

func stripSpaces(raw string) string {
	return strings.Join(strings.Fields(raw), "")
}

// BuildCheckoutURL links the storefront checkout with every SKU pre-added and
// the discount code applied.
func BuildCheckoutURL(base string, skus []string, code string) string {
	params := make([]string, 0, len(skus)+2)
	for _, sku := range skus {
		params = append(params, "sku="+url.QueryEscape(sku))
	}
	params = append(params, "discount="+url.QueryEscape(code), "bundle=true")
	return base + "?" + strings.Join(params, "&")
}
