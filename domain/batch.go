package domain

// CreatedProduct holds the fields of a freshly created catalog product that
// downstream stages care about.
type CreatedProduct struct {
	ProductID  string   `json:"productId"`
	ProductKey string   `json:"productKey"`
	SKU        string   `json:"sku"`
	Slug       string   `json:"slug"`
	Images     []string `json:"productImages,omitempty"`
}

type ProductTypeRef struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

type TaxCategoryRef struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

// BundleProductResult is the per-bundle outcome of product creation: either
// the created product merged onto the originating bundle, or the bundle plus
// a failure reason. Exactly one of Product and Err is set.
type BundleProductResult struct {
	Bundle
	Product *CreatedProduct `json:"product,omitempty"`
	Err     string          `json:"error,omitempty"`
}

func (r BundleProductResult) Failed() bool { return r.Err != "" }

type BundleCreationResult struct {
	TotalBundles int                   `json:"totalBundles"`
	Successful   int                   `json:"successfulProducts"`
	Failed       int                   `json:"failedProducts"`
	Products     []BundleProductResult `json:"products"`
	ProductType  ProductTypeRef        `json:"productType"`
}

// BundleDiscountResult is a bundle augmented with its cart discount and
// discount code, or a failure reason when either creation failed.
type BundleDiscountResult struct {
	Bundle
	OriginalPrice  int64  `json:"originalPrice,omitempty"`
	CartDiscountID string `json:"cartDiscountId,omitempty"`
	DiscountCodeID string `json:"discountCodeId,omitempty"`
	DiscountCode   string `json:"discountCode,omitempty"`
	CheckoutURL    string `json:"checkoutUrl,omitempty"`
	Err            string `json:"error,omitempty"`
}

func (r BundleDiscountResult) Failed() bool { return r.Err != "" }

type DiscountCreationResult struct {
	TotalBundles    int                    `json:"totalBundles"`
	Successful      int                    `json:"successfulDiscounts"`
	Failed          int                    `json:"failedDiscounts"`
	BundleDiscounts []BundleDiscountResult `json:"bundleDiscounts"`
}
