package commercetools

import (
	"context"
	"net/http"

	"bundleForge/domain"
	"bundleForge/pkg/logger"
)

const (
	bundleProductTypeKey  = "ai-bundle-product-type"
	bundleProductTypeName = "AI Bundle Product"

	standardTaxCategoryKey  = "standard-tax-category"
	standardTaxCategoryName = "Standard Tax"
)

type productTypeAttribute struct {
	Name                string                 `json:"name"`
	Label               map[string]string      `json:"label"`
	Type                map[string]interface{} `json:"type"`
	AttributeConstraint string                 `json:"attributeConstraint"`
	InputHint           string                 `json:"inputHint,omitempty"`
	IsSearchable        bool                   `json:"isSearchable"`
	IsRequired          bool                   `json:"isRequired"`
}

type productTypeDraft struct {
	Key         string                 `json:"key"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Attributes  []productTypeAttribute `json:"attributes"`
}

type productType struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// EnsureBundleProductType looks the product type up by key and creates it on
// 404. A 409 on create means another caller won the race, so the lookup is
// retried instead of failing.
func (r *CommercetoolsRepository) EnsureBundleProductType(ctx context.Context) (domain.ProductTypeRef, error) {
	var existing productType
	err := r.do(ctx, http.MethodGet, "/product-types/key="+bundleProductTypeKey, nil, &existing)
	if err == nil {
		return domain.ProductTypeRef{ID: existing.ID, Key: existing.Key, Name: existing.Name}, nil
	}
	if !isNotFound(err) {
		return domain.ProductTypeRef{}, err
	}

	logger.Info("Creating bundle product type", "key", bundleProductTypeKey)

	draft := productTypeDraft{
		Key:         bundleProductTypeKey,
		Name:        bundleProductTypeName,
		Description: "Product type for AI-generated bundle products",
		Attributes: []productTypeAttribute{
			{
				Name:                "bundleSkus",
				Label:               map[string]string{"en": "Bundle SKUs"},
				Type:                map[string]interface{}{"name": "set", "elementType": map[string]interface{}{"name": "text"}},
				AttributeConstraint: "None",
				InputHint:           "MultiLine",
				IsSearchable:        true,
			},
			{
				Name:                "discountPercent",
				Label:               map[string]string{"en": "Discount Percentage"},
				Type:                map[string]interface{}{"name": "number"},
				AttributeConstraint: "None",
				InputHint:           "SingleLine",
				IsSearchable:        true,
			},
			{
				Name:                "campaignTheme",
				Label:               map[string]string{"en": "Campaign Theme"},
				Type:                map[string]interface{}{"name": "text"},
				AttributeConstraint: "None",
				InputHint:           "SingleLine",
				IsSearchable:        true,
			},
			{
				Name:                "aiGenerated",
				Label:               map[string]string{"en": "AI Generated"},
				Type:                map[string]interface{}{"name": "boolean"},
				AttributeConstraint: "None",
				IsSearchable:        true,
			},
		},
	}

	var created productType
	err = r.do(ctx, http.MethodPost, "/product-types", draft, &created)
	if err == nil {
		return domain.ProductTypeRef{ID: created.ID, Key: created.Key, Name: created.Name}, nil
	}
	if !isConflict(err) {
		return domain.ProductTypeRef{}, err
	}

	// Concurrent first caller created it between our lookup and create.
	if err := r.do(ctx, http.MethodGet, "/product-types/key="+bundleProductTypeKey, nil, &existing); err != nil {
		return domain.ProductTypeRef{}, err
	}
	return domain.ProductTypeRef{ID: existing.ID, Key: existing.Key, Name: existing.Name}, nil
}

type taxRate struct {
	Name            string  `json:"name"`
	Amount          float64 `json:"amount"`
	IncludedInPrice bool    `json:"includedInPrice"`
	Country         string  `json:"country"`
	State           string  `json:"state,omitempty"`
}

type taxCategoryDraft struct {
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Rates       []taxRate `json:"rates"`
}

type taxCategory struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

func (r *CommercetoolsRepository) EnsureStandardTaxCategory(ctx context.Context) (domain.TaxCategoryRef, error) {
	var existing taxCategory
	err := r.do(ctx, http.MethodGet, "/tax-categories/key="+standardTaxCategoryKey, nil, &existing)
	if err == nil {
		return domain.TaxCategoryRef{ID: existing.ID, Key: existing.Key}, nil
	}
	if !isNotFound(err) {
		return domain.TaxCategoryRef{}, err
	}

	logger.Info("Creating standard tax category", "key", standardTaxCategoryKey)

	draft := taxCategoryDraft{
		Key:         standardTaxCategoryKey,
		Name:        standardTaxCategoryName,
		Description: "Standard tax category for AI-generated bundle products",
		Rates: []taxRate{
			{
				Name:            "Standard Rate",
				Amount:          0.20,
				IncludedInPrice: false,
				Country:         "US",
				State:           "NY",
			},
		},
	}

	var created taxCategory
	err = r.do(ctx, http.MethodPost, "/tax-categories", draft, &created)
	if err == nil {
		return domain.TaxCategoryRef{ID: created.ID, Key: created.Key}, nil
	}
	if !isConflict(err) {
		return domain.TaxCategoryRef{}, err
	}

	if err := r.do(ctx, http.MethodGet, "/tax-categories/key="+standardTaxCategoryKey, nil, &existing); err != nil {
		return domain.TaxCategoryRef{}, err
	}
	return domain.TaxCategoryRef{ID: existing.ID, Key: existing.Key}, nil
}
