package commercetools

import (
	"context"
	"net/http"
)

type CartDiscountDraft struct {
	Key           string
	Name          string
	Description   string
	CentAmount    int64
	CartPredicate string
	LineItemsPred string
}

type cartDiscountWire struct {
	Key                  string              `json:"key"`
	Name                 map[string]string   `json:"name"`
	Description          map[string]string   `json:"description"`
	Value                cartDiscountValue   `json:"value"`
	CartPredicate        string              `json:"cartPredicate"`
	Target               cartDiscountTarget  `json:"target"`
	IsActive             bool                `json:"isActive"`
	RequiresDiscountCode bool                `json:"requiresDiscountCode"`
	SortOrder            string              `json:"sortOrder"`
}

type cartDiscountValue struct {
	Type  string    `json:"type"`
	Money []ctMoney `json:"money"`
}

type cartDiscountTarget struct {
	Type      string `json:"type"`
	Predicate string `json:"predicate"`
}

type createdResource struct {
	ID string `json:"id"`
}

// CreateCartDiscount creates an absolute-value discount, active only with a
// discount code, targeting the bundle's line items.
func (r *CommercetoolsRepository) CreateCartDiscount(ctx context.Context, draft CartDiscountDraft) (string, error) {
	wire := cartDiscountWire{
		Key:         draft.Key,
		Name:        map[string]string{"en": draft.Name},
		Description: map[string]string{"en": draft.Description},
		Value: cartDiscountValue{
			Type:  "absolute",
			Money: []ctMoney{{CurrencyCode: "USD", CentAmount: draft.CentAmount}},
		},
		CartPredicate: draft.CartPredicate,
		Target: cartDiscountTarget{
			Type:      "lineItems",
			Predicate: draft.LineItemsPred,
		},
		IsActive:             true,
		RequiresDiscountCode: true,
		SortOrder:            "0.9",
	}

	var created createdResource
	if err := r.do(ctx, http.MethodPost, "/cart-discounts", wire, &created); err != nil {
		return "", err
	}

	return created.ID, nil
}

type DiscountCodeDraft struct {
	Key            string
	Name           string
	Description    string
	Code           string
	CartDiscountID string
}

type discountCodeWire struct {
	Key                        string            `json:"key"`
	Name                       map[string]string `json:"name"`
	Description                map[string]string `json:"description"`
	Code                       string            `json:"code"`
	CartDiscounts              []typedReference  `json:"cartDiscounts"`
	IsActive                   bool              `json:"isActive"`
	MaxApplicationsPerCustomer int               `json:"maxApplicationsPerCustomer"`
	MaxApplications            int               `json:"maxApplications"`
}

func (r *CommercetoolsRepository) CreateDiscountCode(ctx context.Context, draft DiscountCodeDraft) (string, error) {
	wire := discountCodeWire{
		Key:         draft.Key,
		Name:        map[string]string{"en": draft.Name},
		Description: map[string]string{"en": draft.Description},
		Code:        draft.Code,
		CartDiscounts: []typedReference{
			{TypeID: "cart-discount", ID: draft.CartDiscountID},
		},
		IsActive:                   true,
		MaxApplicationsPerCustomer: 1,
		MaxApplications:            1000,
	}

	var created createdResource
	if err := r.do(ctx, http.MethodPost, "/discount-codes", wire, &created); err != nil {
		return "", err
	}

	return created.ID, nil
}
