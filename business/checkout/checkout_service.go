package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"bundleForge/domain"
	"bundleForge/internal/repository/stripe"
	"bundleForge/pkg/logger"
	"bundleForge/pkg/metrics"
)

type PaymentRepository interface {
	Configured() bool
	CreateCoupon(ctx context.Context, name string, percentOff float64, metadata map[string]string) (string, error)
	CreateCheckoutSession(ctx context.Context, params stripe.CheckoutSessionParams) (*domain.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string) (json.RawMessage, error)
}

type CheckoutService struct {
	paymentRepo PaymentRepository
}

func NewCheckoutService(paymentRepo PaymentRepository) *CheckoutService {
	return &CheckoutService{paymentRepo: paymentRepo}
}

func (s *CheckoutService) Enabled() bool {
	return s.paymentRepo.Configured()
}

// CreateBundleCheckouts creates one checkout session per bundle that carries
// a discount code. Bundles without a code, and per-bundle failures, become
// failure variants at the same position; nothing propagates past the batch.
func (s *CheckoutService) CreateBundleCheckouts(ctx context.Context, bundleList []domain.BundleDiscountResult, successURL, cancelURL string) []domain.CheckoutSessionResult {
	results := make([]domain.CheckoutSessionResult, 0, len(bundleList))

	for _, bundle := range bundleList {
		if bundle.DiscountCode == "" {
			logger.Warn("Skipping checkout for bundle without discount code", "bundle", bundle.Name)
			metrics.CheckoutFailures.Inc()
			results = append(results, domain.CheckoutSessionResult{
				Bundle: bundle,
				Err:    "No discount code available",
			})
			continue
		}

		session, err := s.createOne(ctx, bundle, successURL, cancelURL)
		if err != nil {
			logger.Error("Failed to create checkout session", "bundle", bundle.Name, err)
			metrics.CheckoutFailures.Inc()
			results = append(results, domain.CheckoutSessionResult{
				Bundle:       bundle,
				DiscountCode: bundle.DiscountCode,
				Err:          err.Error(),
			})
			continue
		}

		results = append(results, domain.CheckoutSessionResult{
			Session:      session,
			Bundle:       bundle,
			DiscountCode: bundle.DiscountCode,
		})
	}

	return results
}

func (s *CheckoutService) createOne(ctx context.Context, bundle domain.BundleDiscountResult, successURL, cancelURL string) (*domain.CheckoutSession, error) {
	if len(bundle.SKUs) == 0 {
		return nil, fmt.Errorf("bundle has no skus")
	}

	couponID, err := s.paymentRepo.CreateCoupon(ctx, bundle.Name+" Bundle Discount", bundle.DiscountPercent, map[string]string{
		"bundleName":   bundle.Name,
		"discountCode": bundle.DiscountCode,
	})
	if err != nil {
		return nil, err
	}

	// Even split of the target price across line items; the rounding
	// remainder is deliberately not reconciled against the target price.
	unitAmount := int64(math.Round(float64(bundle.TargetPrice) / float64(len(bundle.SKUs))))

	lineItems := make([]stripe.LineItem, 0, len(bundle.SKUs))
	for i, sku := range bundle.SKUs {
		lineItems = append(lineItems, stripe.LineItem{
			Name:        fmt.Sprintf("%s - Item %d", bundle.Name, i+1),
			Description: fmt.Sprintf("Part of %s bundle", bundle.Name),
			UnitAmount:  unitAmount,
			SKU:         sku,
			BundleName:  bundle.Name,
			CouponCode:  bundle.DiscountCode,
		})
	}

	return s.paymentRepo.CreateCheckoutSession(ctx, stripe.CheckoutSessionParams{
		LineItems:  lineItems,
		CouponID:   couponID,
		SuccessURL: successURL + "?session_id={CHECKOUT_SESSION_ID}&bundle_name=" + url.QueryEscape(bundle.Name) + "&discount_code=" + url.QueryEscape(bundle.DiscountCode),
		CancelURL:  cancelURL + "?bundle_name=" + url.QueryEscape(bundle.Name),
		Metadata: map[string]string{
			"bundleName":      bundle.Name,
			"discountCode":    bundle.DiscountCode,
			"skus":            strings.Join(bundle.SKUs, ","),
			"originalPrice":   strconv.FormatInt(bundle.OriginalPrice, 10),
			"targetPrice":     strconv.FormatInt(bundle.TargetPrice, 10),
			"discountPercent": strconv.FormatFloat(bundle.DiscountPercent, 'f', -1, 64),
		},
	})
}

// VerifySession retrieves a session with expanded line items for
// post-payment verification.
func (s *CheckoutService) VerifySession(ctx context.Context, id string) (json.RawMessage, error) {
	return s.paymentRepo.GetCheckoutSession(ctx, id)
}
