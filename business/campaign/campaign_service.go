package campaign

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"bundleForge/domain"
	"bundleForge/internal/repository/klaviyo"
	"bundleForge/pkg/logger"
	"bundleForge/pkg/metrics"
)

type CopyPolisher interface {
	Configured() bool
	Chat(ctx context.Context, system, user string, temperature float64) (string, error)
}

type CampaignRepository interface {
	Configured() bool
	CreateTemplate(ctx context.Context, name, html string) (string, error)
	CreateCampaign(ctx context.Context, draft klaviyo.CampaignDraft) (string, error)
	ListID() string
}

type CampaignService struct {
	aiRepo      CopyPolisher
	klaviyoRepo CampaignRepository
}

func NewCampaignService(aiRepo CopyPolisher, klaviyoRepo CampaignRepository) *CampaignService {
	return &CampaignService{
		aiRepo:      aiRepo,
		klaviyoRepo: klaviyoRepo,
	}
}

// PolishCopy rewrites text in the given brand voice. Any failure returns the
// original text unchanged.
func (s *CampaignService) PolishCopy(ctx context.Context, brandVoice, text string) string {
	if !s.aiRepo.Configured() {
		return text
	}

	system := fmt.Sprintf("You are a copywriter. Polish the given text to match this brand voice: %s. Return only the polished text, no additional commentary.", brandVoice)
	polished, err := s.aiRepo.Chat(ctx, system, text, 0.5)
	if err != nil {
		logger.Error("Copy polishing failed, keeping original", err)
		return text
	}
	if polished == "" {
		return text
	}
	return polished
}

// PolishBundles polishes every bundle blurb concurrently. Each blurb falls
// back to its original independently.
func (s *CampaignService) PolishBundles(ctx context.Context, brandVoice string, bundleList []domain.Bundle) []domain.Bundle {
	polished := make([]domain.Bundle, len(bundleList))
	copy(polished, bundleList)

	var wg sync.WaitGroup
	for i := range polished {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			polished[i].EmailBlurb = s.PolishCopy(ctx, brandVoice, polished[i].EmailBlurb)
		}(i)
	}
	wg.Wait()

	return polished
}

// PublishCampaign creates a draft campaign from the bundle list. When the
// marketing platform is not configured, or its calls fail, a clearly tagged
// mock campaign keeps the pipeline demonstrable end to end.
func (s *CampaignService) PublishCampaign(ctx context.Context, theme string, bundleList []domain.Bundle, customHTML string) (*domain.Campaign, error) {
	name := fmt.Sprintf("%s Bundle Campaign", theme)
	subject := fmt.Sprintf("%s Bundles - Limited Time!", theme)

	html := customHTML
	if html == "" {
		rendered, err := RenderBundleEmail(theme, bundleList)
		if err != nil {
			return nil, fmt.Errorf("failed to render bundle email: %w", err)
		}
		html = rendered
	}

	if !s.klaviyoRepo.Configured() {
		logger.Warn("Marketing platform not configured, returning mock campaign")
		return s.mockCampaign(name, subject), nil
	}

	templateID, err := s.klaviyoRepo.CreateTemplate(ctx, name+" Template", html)
	if err != nil {
		logger.Error("Template creation failed, returning mock campaign", err)
		return s.mockCampaign(name, subject), nil
	}

	campaignID, err := s.klaviyoRepo.CreateCampaign(ctx, klaviyo.CampaignDraft{
		Name:        name,
		Subject:     subject,
		PreviewText: previewText(bundleList),
		TemplateID:  templateID,
	})
	if err != nil {
		logger.Error("Campaign creation failed, returning mock campaign", err)
		return s.mockCampaign(name, subject), nil
	}

	metrics.CampaignsPublished.WithLabelValues(domain.CampaignStatusDraft).Inc()
	logger.Info("Campaign created", "campaignId", campaignID)

	return &domain.Campaign{
		ID:         campaignID,
		Status:     domain.CampaignStatusDraft,
		Name:       name,
		Subject:    subject,
		ListID:     s.klaviyoRepo.ListID(),
		TemplateID: templateID,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

func (s *CampaignService) mockCampaign(name, subject string) *domain.Campaign {
	metrics.CampaignsPublished.WithLabelValues(domain.CampaignStatusMock).Inc()
	return &domain.Campaign{
		ID:        "mock_" + uuid.NewString()[:8],
		Status:    domain.CampaignStatusMock,
		Name:      name,
		Subject:   subject,
		CreatedAt: time.Now().UTC(),
	}
}

func previewText(bundleList []domain.Bundle) string {
	if len(bundleList) == 0 {
		return "Fresh bundles picked for you"
	}
	return bundleList[0].EmailBlurb
}
