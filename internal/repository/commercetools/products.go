package commercetools

import (
	"context"
	"net/http"

	"bundleForge/domain"
)

type ImageDraft struct {
	URL        string          `json:"url"`
	Label      string          `json:"label"`
	Dimensions ImageDimensions `json:"dimensions"`
}

type ImageDimensions struct {
	W int `json:"w"`
	H int `json:"h"`
}

type AttributeDraft struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

type PriceDraft struct {
	Value ctMoney `json:"value"`
}

type VariantDraft struct {
	SKU        string           `json:"sku"`
	Prices     []PriceDraft     `json:"prices"`
	Images     []ImageDraft     `json:"images,omitempty"`
	Attributes []AttributeDraft `json:"attributes"`
}

type typedReference struct {
	TypeID string `json:"typeId"`
	ID     string `json:"id"`
}

// ProductDraft is the create-product payload. Name, description and slug are
// localized under the same value for each supported locale.
type ProductDraft struct {
	Key           string
	ProductTypeID string
	TaxCategoryID string
	Name          string
	Description   string
	Slug          string
	MasterVariant VariantDraft
}

type productDraftWire struct {
	Key           string            `json:"key"`
	ProductType   typedReference    `json:"productType"`
	TaxCategory   typedReference    `json:"taxCategory"`
	Name          map[string]string `json:"name"`
	Description   map[string]string `json:"description"`
	Slug          map[string]string `json:"slug"`
	MasterVariant VariantDraft      `json:"masterVariant"`
}

func localized(value string) map[string]string {
	return map[string]string{
		"en":    value,
		"en-US": value,
		"en-GB": value,
	}
}

func NewPrice(centAmount int64) PriceDraft {
	return PriceDraft{Value: ctMoney{CurrencyCode: "USD", CentAmount: centAmount}}
}

// CreateBundleProduct submits the product draft and returns the created
// product's identifiers and image URLs.
func (r *CommercetoolsRepository) CreateBundleProduct(ctx context.Context, draft ProductDraft) (*domain.CreatedProduct, error) {
	wire := productDraftWire{
		Key:           draft.Key,
		ProductType:   typedReference{TypeID: "product-type", ID: draft.ProductTypeID},
		TaxCategory:   typedReference{TypeID: "tax-category", ID: draft.TaxCategoryID},
		Name:          localized(draft.Name),
		Description:   localized(draft.Description),
		Slug:          localized(draft.Slug),
		MasterVariant: draft.MasterVariant,
	}

	var created ctProduct
	if err := r.do(ctx, http.MethodPost, "/products", wire, &created); err != nil {
		return nil, err
	}

	current := created.MasterData.Current
	images := make([]string, 0, len(current.MasterVariant.Images))
	for _, image := range current.MasterVariant.Images {
		images = append(images, image.URL)
	}

	return &domain.CreatedProduct{
		ProductID:  created.ID,
		ProductKey: created.Key,
		SKU:        current.MasterVariant.SKU,
		Slug:       current.Slug["en"],
		Images:     images,
	}, nil
}
