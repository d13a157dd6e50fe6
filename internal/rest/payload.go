package rest

import "bundleForge/domain"

// BundlePayload is the wire shape of a bundle shared by the create-bundles,
// create-discounts, campaign and apply endpoints.
type BundlePayload struct {
	Name               string   `json:"name" validate:"required"`
	EmailBlurb         string   `json:"emailBlurb"`
	TargetPrice        int64    `json:"targetPrice" validate:"required,gt=0"`
	DiscountPercent    float64  `json:"discountPercent" validate:"gte=0,lte=100"`
	SKUs               []string `json:"skus" validate:"required,min=1"`
	Rationale          string   `json:"rationale"`
	HeroImageIdea      string   `json:"heroImageIdea"`
	BundleImageURL     string   `json:"bundleImageUrl"`
	ChildProductImages []string `json:"childProductImages"`
}

func (p BundlePayload) toDomain() domain.Bundle {
	return domain.Bundle{
		Name:               p.Name,
		Rationale:          p.Rationale,
		SKUs:               p.SKUs,
		TargetPrice:        p.TargetPrice,
		DiscountPercent:    p.DiscountPercent,
		EmailBlurb:         p.EmailBlurb,
		HeroImageIdea:      p.HeroImageIdea,
		BundleImageURL:     p.BundleImageURL,
		ChildProductImages: p.ChildProductImages,
	}
}

func toDomainBundles(payloads []BundlePayload) []domain.Bundle {
	bundles := make([]domain.Bundle, 0, len(payloads))
	for _, payload := range payloads {
		bundles = append(bundles, payload.toDomain())
	}
	return bundles
}
