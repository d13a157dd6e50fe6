package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"bundleForge/domain"
	"bundleForge/internal/repository/stripe"
)

type fakePaymentRepo struct {
	configured    bool
	sessionParams []stripe.CheckoutSessionParams
	failSession   bool
}

func (f *fakePaymentRepo) Configured() bool { return f.configured }

func (f *fakePaymentRepo) CreateCoupon(_ context.Context, name string, _ float64, _ map[string]string) (string, error) {
	return "coupon-" + name, nil
}

func (f *fakePaymentRepo) CreateCheckoutSession(_ context.Context, params stripe.CheckoutSessionParams) (*domain.CheckoutSession, error) {
	if f.failSession {
		return nil, errors.New("stripe unavailable")
	}
	f.sessionParams = append(f.sessionParams, params)
	return &domain.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/pay/cs_test_1"}, nil
}

func (f *fakePaymentRepo) GetCheckoutSession(_ context.Context, id string) (json.RawMessage, error) {
	return json.RawMessage(`{"id":"` + id + `"}`), nil
}

func discountedBundle(name, code string, skus []string, targetPrice int64) domain.BundleDiscountResult {
	return domain.BundleDiscountResult{
		Bundle: domain.Bundle{
			Name:            name,
			SKUs:            skus,
			TargetPrice:     targetPrice,
			DiscountPercent: 20,
		},
		OriginalPrice: targetPrice + 2000,
		DiscountCode:  code,
	}
}

func TestCreateBundleCheckoutsKeepsPositions(t *testing.T) {
	repo := &fakePaymentRepo{configured: true}
	svc := NewCheckoutService(repo)

	bundleList := []domain.BundleDiscountResult{
		discountedBundle("No Code", "", []string{"A-1"}, 5000),
		discountedBundle("Cozy Morning", "FALL-COZYMORNING-1234", []string{"A-1", "A-2"}, 8000),
	}

	results := svc.CreateBundleCheckouts(context.Background(), bundleList, "https://shop.example/success", "https://shop.example/cancel")

	if len(results) != 2 {
		t.Fatalf("expected one result per input, got %d", len(results))
	}
	if !results[0].Failed() || results[0].Err != "No discount code available" {
		t.Errorf("first result = %+v, want no-code failure", results[0])
	}
	if results[0].Session != nil {
		t.Error("failed entry must not carry a session")
	}
	if results[1].Failed() {
		t.Fatalf("second result failed: %q", results[1].Err)
	}
	if results[1].Session == nil || results[1].Session.ID != "cs_test_1" {
		t.Errorf("second result session = %+v", results[1].Session)
	}
	if results[1].DiscountCode != "FALL-COZYMORNING-1234" {
		t.Errorf("discount code = %q", results[1].DiscountCode)
	}
}

func TestCreateBundleCheckoutsSplitsPriceEvenly(t *testing.T) {
	repo := &fakePaymentRepo{configured: true}
	svc := NewCheckoutService(repo)

	bundle := discountedBundle("Trio", "FALL-TRIO-1234", []string{"A", "B", "C"}, 10000)
	svc.CreateBundleCheckouts(context.Background(), []domain.BundleDiscountResult{bundle}, "https://s", "https://c")

	if len(repo.sessionParams) != 1 {
		t.Fatalf("sessions created = %d", len(repo.sessionParams))
	}

	params := repo.sessionParams[0]
	if len(params.LineItems) != 3 {
		t.Fatalf("line items = %d", len(params.LineItems))
	}
	for _, item := range params.LineItems {
		if item.UnitAmount != 3333 {
			t.Errorf("unit amount = %d, want 3333", item.UnitAmount)
		}
	}
	if params.Metadata["skus"] != "A,B,C" {
		t.Errorf("skus metadata = %q", params.Metadata["skus"])
	}
	if !strings.Contains(params.SuccessURL, "session_id={CHECKOUT_SESSION_ID}") {
		t.Errorf("success URL %q missing session placeholder", params.SuccessURL)
	}
}

func TestCreateBundleCheckoutsSessionFailure(t *testing.T) {
	repo := &fakePaymentRepo{configured: true, failSession: true}
	svc := NewCheckoutService(repo)

	bundle := discountedBundle("Cozy Morning", "FALL-COZYMORNING-1234", []string{"A-1"}, 5000)
	results := svc.CreateBundleCheckouts(context.Background(), []domain.BundleDiscountResult{bundle}, "https://s", "https://c")

	if len(results) != 1 || !results[0].Failed() {
		t.Fatalf("expected a single failure entry, got %+v", results)
	}
	if results[0].DiscountCode != "FALL-COZYMORNING-1234" {
		t.Error("failure entry should keep the discount code")
	}
}

func TestEnabledFollowsRepoConfiguration(t *testing.T) {
	if NewCheckoutService(&fakePaymentRepo{configured: false}).Enabled() {
		t.Error("Enabled() should be false without configuration")
	}
	if !NewCheckoutService(&fakePaymentRepo{configured: true}).Enabled() {
		t.Error("Enabled() should be true when configured")
	}
}
