package domain

import "time"

const (
	CampaignStatusDraft = "draft"
	// CampaignStatusMock marks a campaign that was not sent to the marketing
	// platform, so the pipeline stays demonstrable without credentials.
	CampaignStatusMock = "mock_created"
)

type Campaign struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	Name       string    `json:"name"`
	Subject    string    `json:"subject"`
	ListID     string    `json:"listId,omitempty"`
	TemplateID string    `json:"templateId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (c Campaign) IsMock() bool { return c.Status == CampaignStatusMock }
