package domain

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CheckoutSessionResult keeps one entry per input bundle. Bundles without a
// discount code, and bundles whose session creation failed, are failure
// variants at the same relative position rather than omissions.
type CheckoutSessionResult struct {
	Session      *CheckoutSession     `json:"session,omitempty"`
	Bundle       BundleDiscountResult `json:"bundle"`
	DiscountCode string               `json:"discountCode"`
	Err          string               `json:"error,omitempty"`
}

func (r CheckoutSessionResult) Failed() bool { return r.Err != "" }
