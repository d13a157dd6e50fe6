package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bundleForge/domain"
)

type fakeDiscountsService struct {
	theme string
}

func (f *fakeDiscountsService) CreateDiscountsAndCodes(_ context.Context, bundleList []domain.Bundle, theme string) *domain.DiscountCreationResult {
	f.theme = theme
	entries := make([]domain.BundleDiscountResult, 0, len(bundleList))
	for _, b := range bundleList {
		entries = append(entries, domain.BundleDiscountResult{Bundle: b, DiscountCode: "CODE-1234"})
	}
	return &domain.DiscountCreationResult{
		TotalBundles:    len(bundleList),
		Successful:      len(bundleList),
		BundleDiscounts: entries,
	}
}

type fakeCheckoutService struct {
	enabled    bool
	successURL string
	cancelURL  string
	called     bool
}

func (f *fakeCheckoutService) Enabled() bool { return f.enabled }

func (f *fakeCheckoutService) CreateBundleCheckouts(_ context.Context, bundleList []domain.BundleDiscountResult, successURL, cancelURL string) []domain.CheckoutSessionResult {
	f.called = true
	f.successURL = successURL
	f.cancelURL = cancelURL
	results := make([]domain.CheckoutSessionResult, 0, len(bundleList))
	for _, b := range bundleList {
		results = append(results, domain.CheckoutSessionResult{
			Session:      &domain.CheckoutSession{ID: "cs_1", URL: "https://stripe.example/cs_1"},
			Bundle:       b,
			DiscountCode: b.DiscountCode,
		})
	}
	return results
}

func discountsContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/create-discounts", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

const validBundleBody = `{"bundles":[{"name":"Cozy Morning","targetPrice":8000,"discountPercent":20,"skus":["A-1","A-2"]}],"campaignTheme":"Fall Essentials"}`

func TestCreateDiscountsWithCheckout(t *testing.T) {
	discountsSvc := &fakeDiscountsService{}
	checkoutSvc := &fakeCheckoutService{enabled: true}
	handler := NewDiscountsHandler(discountsSvc, checkoutSvc, "https://shop.example/")

	c, rec := discountsContext(t, validBundleBody)
	require.NoError(t, handler.CreateDiscounts(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Fall Essentials", discountsSvc.theme)
	assert.True(t, checkoutSvc.called)
	assert.Equal(t, "https://shop.example/checkout/success", checkoutSvc.successURL)
	assert.Equal(t, "https://shop.example/checkout/cancel", checkoutSvc.cancelURL)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, true, meta["stripeEnabled"])
	assert.NotNil(t, body["checkoutSessions"])
}

func TestCreateDiscountsCheckoutOptOut(t *testing.T) {
	checkoutSvc := &fakeCheckoutService{enabled: true}
	handler := NewDiscountsHandler(&fakeDiscountsService{}, checkoutSvc, "https://shop.example")

	body := strings.Replace(validBundleBody, `"campaignTheme"`, `"createCheckoutSessions":false,"campaignTheme"`, 1)
	c, rec := discountsContext(t, body)
	require.NoError(t, handler.CreateDiscounts(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, checkoutSvc.called)
}

func TestCreateDiscountsStripeDisabled(t *testing.T) {
	checkoutSvc := &fakeCheckoutService{enabled: false}
	handler := NewDiscountsHandler(&fakeDiscountsService{}, checkoutSvc, "https://shop.example")

	c, rec := discountsContext(t, validBundleBody)
	require.NoError(t, handler.CreateDiscounts(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, checkoutSvc.called)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, false, meta["stripeEnabled"])
}

func TestCreateDiscountsValidation(t *testing.T) {
	handler := NewDiscountsHandler(&fakeDiscountsService{}, &fakeCheckoutService{}, "https://shop.example")

	c, rec := discountsContext(t, `{"bundles":[]}`)
	require.NoError(t, handler.CreateDiscounts(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateDiscountsAbsoluteURLsPassThrough(t *testing.T) {
	checkoutSvc := &fakeCheckoutService{enabled: true}
	handler := NewDiscountsHandler(&fakeDiscountsService{}, checkoutSvc, "https://shop.example")

	body := strings.Replace(validBundleBody, `"campaignTheme"`, `"successUrl":"https://elsewhere.example/ok","campaignTheme"`, 1)
	c, _ := discountsContext(t, body)
	require.NoError(t, handler.CreateDiscounts(c))

	assert.Equal(t, "https://elsewhere.example/ok", checkoutSvc.successURL)
}
