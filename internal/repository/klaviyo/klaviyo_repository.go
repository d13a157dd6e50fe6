package klaviyo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const apiRevision = "2024-10-15"

type KlaviyoConfig struct {
	APIKey    string
	APIURL    string
	ListID    string
	FromEmail string
	FromName  string
}

// KlaviyoRepository creates draft campaigns in the email-marketing platform.
type KlaviyoRepository struct {
	klaviyoConfig KlaviyoConfig
	client        *http.Client
}

func NewKlaviyoRepository(cfg KlaviyoConfig) *KlaviyoRepository {
	return &KlaviyoRepository{
		klaviyoConfig: cfg,
		client:        &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether the platform integration can be used at all.
// Without it the campaign service falls back to a mock campaign.
func (r *KlaviyoRepository) Configured() bool {
	return r.klaviyoConfig.APIKey != "" && r.klaviyoConfig.ListID != ""
}

func (r *KlaviyoRepository) do(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal json payload: %w", err)
	}

	endpoint := strings.TrimRight(r.klaviyoConfig.APIURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Revision", apiRevision)
	req.Header.Add("Authorization", "Klaviyo-API-Key "+r.klaviyoConfig.APIKey)

	res, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("klaviyo returned %d: %s", res.StatusCode, string(resBody))
	}

	return json.Unmarshal(resBody, out)
}

type templatePayload struct {
	Data templateData `json:"data"`
}

type templateData struct {
	Type       string             `json:"type"`
	Attributes templateAttributes `json:"attributes"`
}

type templateAttributes struct {
	Name       string `json:"name"`
	EditorType string `json:"editor_type"`
	HTML       string `json:"html"`
}

type resourceResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (r *KlaviyoRepository) CreateTemplate(ctx context.Context, name, html string) (string, error) {
	payload := templatePayload{
		Data: templateData{
			Type: "template",
			Attributes: templateAttributes{
				Name:       name,
				EditorType: "CODE",
				HTML:       html,
			},
		},
	}

	var created resourceResponse
	if err := r.do(ctx, "/api/templates", payload, &created); err != nil {
		return "", err
	}

	return created.Data.ID, nil
}

type CampaignDraft struct {
	Name        string
	Subject     string
	PreviewText string
	TemplateID  string
}

type campaignPayload struct {
	Data campaignData `json:"data"`
}

type campaignData struct {
	Type       string             `json:"type"`
	Attributes campaignAttributes `json:"attributes"`
}

type campaignAttributes struct {
	Name             string            `json:"name"`
	Audiences        campaignAudiences `json:"audiences"`
	CampaignMessages campaignMessages  `json:"campaign-messages"`
}

type campaignAudiences struct {
	Included []string `json:"included"`
}

type campaignMessages struct {
	Data []campaignMessage `json:"data"`
}

type campaignMessage struct {
	Type       string            `json:"type"`
	Attributes messageAttributes `json:"attributes"`
}

type messageAttributes struct {
	Channel string         `json:"channel"`
	Label   string         `json:"label"`
	Content messageContent `json:"content"`
}

type messageContent struct {
	Subject     string `json:"subject"`
	PreviewText string `json:"preview_text"`
	FromEmail   string `json:"from_email"`
	FromLabel   string `json:"from_label"`
}

// CreateCampaign creates a draft email campaign targeting the configured
// list. The rendered template is attached separately via CreateTemplate.
func (r *KlaviyoRepository) CreateCampaign(ctx context.Context, draft CampaignDraft) (string, error) {
	payload := campaignPayload{
		Data: campaignData{
			Type: "campaign",
			Attributes: campaignAttributes{
				Name: draft.Name,
				Audiences: campaignAudiences{
					Included: []string{r.klaviyoConfig.ListID},
				},
				CampaignMessages: campaignMessages{
					Data: []campaignMessage{
						{
							Type: "campaign-message",
							Attributes: messageAttributes{
								Channel: "email",
								Label:   draft.Name,
								Content: messageContent{
									Subject:     draft.Subject,
									PreviewText: draft.PreviewText,
									FromEmail:   r.klaviyoConfig.FromEmail,
									FromLabel:   r.klaviyoConfig.FromName,
								},
							},
						},
					},
				},
			},
		},
	}

	var created resourceResponse
	if err := r.do(ctx, "/api/campaigns", payload, &created); err != nil {
		return "", err
	}

	return created.Data.ID, nil
}

func (r *KlaviyoRepository) ListID() string {
	return r.klaviyoConfig.ListID
}
