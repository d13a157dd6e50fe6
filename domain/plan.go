package domain

import (
	"errors"
	"time"
)

// ErrPlanNotFound is returned when no stored campaign plan exists under the
// requested id.
var ErrPlanNotFound = errors.New("campaign plan not found")

// Bundle is one proposed grouping of catalog items. TargetPrice and
// DiscountPercent are plan-time estimates, not authoritative prices.
type Bundle struct {
	Name               string   `json:"name"`
	Rationale          string   `json:"rationale,omitempty"`
	SKUs               []string `json:"skus"`
	TargetPrice        int64    `json:"targetPrice"`
	DiscountPercent    float64  `json:"discountPercent"`
	EmailBlurb         string   `json:"emailBlurb"`
	HeroImageIdea      string   `json:"heroImageIdea,omitempty"`
	BundleImageURL     string   `json:"bundleImageUrl,omitempty"`
	ChildProductImages []string `json:"childProductImages,omitempty"`
}

type CampaignPlan struct {
	Theme           string   `json:"theme"`
	Bundles         []Bundle `json:"bundles"`
	OverallStrategy string   `json:"overallStrategy"`
	TargetAudience  string   `json:"targetAudience"`
}

// StoredCampaignPlan is the payload persisted under the plan id in the
// commerce backend's custom-object store.
type StoredCampaignPlan struct {
	CampaignPlan
	CreatedAt    time.Time `json:"createdAt"`
	ProductCount int       `json:"productCount"`
}
