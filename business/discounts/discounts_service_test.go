package discounts

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bundleForge/domain"
	"bundleForge/internal/repository/commercetools"
)

type fakeDiscountRepo struct {
	cartDrafts []commercetools.CartDiscountDraft
	codeDrafts []commercetools.DiscountCodeDraft
	failCartAt int
}

func (f *fakeDiscountRepo) CreateCartDiscount(_ context.Context, draft commercetools.CartDiscountDraft) (string, error) {
	if f.failCartAt > 0 && len(f.cartDrafts)+1 == f.failCartAt {
		f.cartDrafts = append(f.cartDrafts, draft)
		return "", errors.New("cart discount rejected")
	}
	f.cartDrafts = append(f.cartDrafts, draft)
	return "cart-discount-1", nil
}

func (f *fakeDiscountRepo) CreateDiscountCode(_ context.Context, draft commercetools.DiscountCodeDraft) (string, error) {
	f.codeDrafts = append(f.codeDrafts, draft)
	return "discount-code-1", nil
}

func TestEstimateOriginalPrice(t *testing.T) {
	tests := []struct {
		name            string
		targetPrice     int64
		discountPercent float64
		want            int64
	}{
		{"twenty percent off", 8000, 20, 10000},
		{"fifteen percent off", 8500, 15, 10000},
		{"zero percent keeps target", 5000, 0, 5000},
		{"negative percent keeps target", 5000, -10, 5000},
		{"hundred percent keeps target", 5000, 100, 5000},
		{"rounds to nearest cent", 999, 33, 1491},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateOriginalPrice(tt.targetPrice, tt.discountPercent)
			if got != tt.want {
				t.Errorf("EstimateOriginalPrice(%d, %v) = %d, want %d", tt.targetPrice, tt.discountPercent, got, tt.want)
			}
		})
	}
}

func TestBuildCartPredicate(t *testing.T) {
	got := BuildCartPredicate([]string{"SKU-A", "SKU-B"})
	want := `lineItems(sku in ("SKU-A", "SKU-B")) and lineItems(sku in ("SKU-A", "SKU-B")).count() = 2`
	if got != want {
		t.Errorf("BuildCartPredicate = %q, want %q", got, want)
	}
}

func TestBuildDiscountCode(t *testing.T) {
	now := time.UnixMilli(1730000001234)

	got := BuildDiscountCode("Fall Essentials", "Cozy Morning", now)
	if got != "FALLESSENTIALS-COZYMORNING-1234" {
		t.Errorf("BuildDiscountCode = %q", got)
	}
}

func TestBuildCheckoutURL(t *testing.T) {
	got := BuildCheckoutURL("https://shop.example/checkout", []string{"A-1", "B 2"}, "FALL-BUNDLE-1234")
	want := "https://shop.example/checkout?sku=A-1&sku=B+2&discount=FALL-BUNDLE-1234&bundle=true"
	if got != want {
		t.Errorf("BuildCheckoutURL = %q, want %q", got, want)
	}
}

func TestCreateDiscountsAndCodesContinuesOnFailure(t *testing.T) {
	repo := &fakeDiscountRepo{failCartAt: 1}
	svc := NewDiscountsService(repo, "https://shop.example/checkout")

	bundleList := []domain.Bundle{
		{Name: "Broken", SKUs: []string{"X-1"}, TargetPrice: 4000, DiscountPercent: 10},
		{Name: "Cozy Morning", SKUs: []string{"A-1", "A-2"}, TargetPrice: 8000, DiscountPercent: 20},
	}

	result := svc.CreateDiscountsAndCodes(context.Background(), bundleList, "Fall Essentials")

	if result.TotalBundles != 2 || result.Successful != 1 || result.Failed != 1 {
		t.Fatalf("counts = total %d / ok %d / failed %d", result.TotalBundles, result.Successful, result.Failed)
	}
	if result.Successful+result.Failed != result.TotalBundles {
		t.Fatal("successful + failed must equal total")
	}
	if len(result.BundleDiscounts) != 2 {
		t.Fatalf("expected one entry per input bundle, got %d", len(result.BundleDiscounts))
	}

	first := result.BundleDiscounts[0]
	if !first.Failed() {
		t.Error("first entry should carry the failure")
	}
	if !strings.HasPrefix(first.Err, "Failed to create discount code: ") {
		t.Errorf("unexpected error message %q", first.Err)
	}

	second := result.BundleDiscounts[1]
	if second.Failed() {
		t.Fatalf("second entry should succeed, got %q", second.Err)
	}
	if second.OriginalPrice != 10000 {
		t.Errorf("original price = %d, want 10000", second.OriginalPrice)
	}
	if second.DiscountCode == "" || second.CheckoutURL == "" {
		t.Error("successful entry must carry code and checkout URL")
	}
	if !strings.Contains(second.CheckoutURL, "discount="+second.DiscountCode) {
		t.Errorf("checkout URL %q does not reference code %q", second.CheckoutURL, second.DiscountCode)
	}
}

func TestCreateDiscountsAndCodesDraftContents(t *testing.T) {
	repo := &fakeDiscountRepo{}
	svc := NewDiscountsService(repo, "https://shop.example/checkout")

	bundle := domain.Bundle{Name: "Cozy Morning", SKUs: []string{"A-1", "A-2"}, TargetPrice: 8000, DiscountPercent: 20}
	svc.CreateDiscountsAndCodes(context.Background(), []domain.Bundle{bundle}, "Fall Essentials")

	if len(repo.cartDrafts) != 1 || len(repo.codeDrafts) != 1 {
		t.Fatalf("drafts = %d cart / %d code", len(repo.cartDrafts), len(repo.codeDrafts))
	}

	cart := repo.cartDrafts[0]
	if cart.CentAmount != 2000 {
		t.Errorf("discount amount = %d, want 2000", cart.CentAmount)
	}
	if !strings.Contains(cart.CartPredicate, `.count() = 2`) {
		t.Errorf("cart predicate %q missing count clause", cart.CartPredicate)
	}

	code := repo.codeDrafts[0]
	if code.CartDiscountID != "cart-discount-1" {
		t.Errorf("code draft references %q", code.CartDiscountID)
	}
	if !strings.HasPrefix(code.Code, "FALLESSENTIALS-COZYMORNING-") {
		t.Errorf("generated code %q", code.Code)
	}
}
