package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bundleForge/domain"
)

type StripeConfig struct {
	SecretKey string
	APIURL    string
}

// StripeRepository talks to the payment provider's form-encoded REST API.
type StripeRepository struct {
	stripeConfig StripeConfig
	client       *http.Client
}

func NewStripeRepository(cfg StripeConfig) *StripeRepository {
	return &StripeRepository{
		stripeConfig: cfg,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
}

func (r *StripeRepository) Configured() bool {
	return r.stripeConfig.SecretKey != ""
}

func (r *StripeRepository) post(ctx context.Context, path string, form url.Values, out interface{}) error {
	endpoint := strings.TrimRight(r.stripeConfig.APIURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(r.stripeConfig.SecretKey, "")

	res, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("stripe returned %d: %s", res.StatusCode, string(body))
	}

	return json.Unmarshal(body, out)
}

type couponResponse struct {
	ID string `json:"id"`
}

// CreateCoupon creates a once-off percentage coupon capped at 1000
// redemptions, mirroring the bundle's discount percent.
func (r *StripeRepository) CreateCoupon(ctx context.Context, name string, percentOff float64, metadata map[string]string) (string, error) {
	form := url.Values{}
	form.Set("name", name)
	form.Set("percent_off", strconv.FormatFloat(percentOff, 'f', -1, 64))
	form.Set("duration", "once")
	form.Set("max_redemptions", "1000")
	for key, value := range metadata {
		form.Set("metadata["+key+"]", value)
	}

	var coupon couponResponse
	if err := r.post(ctx, "/v1/coupons", form, &coupon); err != nil {
		return "", err
	}

	return coupon.ID, nil
}

type LineItem struct {
	Name        string
	Description string
	UnitAmount  int64
	SKU         string
	BundleName  string
	CouponCode  string
}

type CheckoutSessionParams struct {
	LineItems  []LineItem
	CouponID   string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

var shippingCountries = []string{"US", "CA", "GB", "AU", "DE", "FR"}

type sessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateCheckoutSession creates a payment-mode session with one line item per
// SKU, the bundle coupon attached and promotion codes allowed.
func (r *StripeRepository) CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*domain.CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("allow_promotion_codes", "true")
	if params.CouponID != "" {
		form.Set("discounts[0][coupon]", params.CouponID)
	}

	for i, item := range params.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[quantity]", "1")
		form.Set(prefix+"[price_data][currency]", "usd")
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		form.Set(prefix+"[price_data][product_data][description]", item.Description)
		form.Set(prefix+"[price_data][product_data][metadata][sku]", item.SKU)
		form.Set(prefix+"[price_data][product_data][metadata][bundleName]", item.BundleName)
		form.Set(prefix+"[price_data][product_data][metadata][discountCode]", item.CouponCode)
	}

	for key, value := range params.Metadata {
		form.Set("metadata["+key+"]", value)
	}

	for i, country := range shippingCountries {
		form.Set(fmt.Sprintf("shipping_address_collection[allowed_countries][%d]", i), country)
	}

	var session sessionResponse
	if err := r.post(ctx, "/v1/checkout/sessions", form, &session); err != nil {
		return nil, err
	}

	return &domain.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

// GetCheckoutSession retrieves a session with line items and payment intent
// expanded, for post-payment verification.
func (r *StripeRepository) GetCheckoutSession(ctx context.Context, id string) (json.RawMessage, error) {
	endpoint := strings.TrimRight(r.stripeConfig.APIURL, "/") + "/v1/checkout/sessions/" + url.PathEscape(id) +
		"?expand[]=line_items&expand[]=payment_intent"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(r.stripeConfig.SecretKey, "")

	res, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("stripe returned %d: %s", res.StatusCode, string(body))
	}

	return json.RawMessage(body), nil
}
