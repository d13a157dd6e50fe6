package commercetools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"bundleForge/domain"
)

type CommercetoolsConfig struct {
	ProjectKey   string
	ClientID     string
	ClientSecret string
	AuthURL      string
	APIURL       string
}

// CommercetoolsRepository talks to the commerce platform's REST API. The
// underlying client refreshes its client-credentials token automatically and
// is safe for reuse across requests.
type CommercetoolsRepository struct {
	cfg    CommercetoolsConfig
	client *http.Client
}

func NewCommercetoolsRepository(cfg CommercetoolsConfig) *CommercetoolsRepository {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     strings.TrimRight(cfg.AuthURL, "/") + "/oauth/token",
		Scopes:       []string{"manage_project:" + cfg.ProjectKey},
	}

	client := cc.Client(context.Background())
	client.Timeout = 30 * time.Second

	return &CommercetoolsRepository{
		cfg:    cfg,
		client: client,
	}
}

type apiError struct {
	StatusCode int
	Body       string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("commercetools returned %d: %s", e.StatusCode, e.Body)
}

func isNotFound(err error) bool {
	apiErr, ok := err.(*apiError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

func isConflict(err error) bool {
	apiErr, ok := err.(*apiError)
	return ok && apiErr.StatusCode == http.StatusConflict
}

func (r *CommercetoolsRepository) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal json payload: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	url := strings.TrimRight(r.cfg.APIURL, "/") + "/" + r.cfg.ProjectKey + path
	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")

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
		return &apiError{StatusCode: res.StatusCode, Body: string(resBody)}
	}

	if out != nil {
		if err := json.Unmarshal(resBody, out); err != nil {
			return fmt.Errorf("failed to decode commercetools response: %w", err)
		}
	}

	return nil
}

type ctImage struct {
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

type ctPrice struct {
	Value ctMoney `json:"value"`
}

type ctMoney struct {
	CurrencyCode string `json:"currencyCode"`
	CentAmount   int64  `json:"centAmount"`
}

type ctAvailability struct {
	AvailableQuantity *int `json:"availableQuantity"`
}

type ctVariant struct {
	SKU          string          `json:"sku"`
	Prices       []ctPrice       `json:"prices"`
	Images       []ctImage       `json:"images"`
	Availability *ctAvailability `json:"availability"`
}

type ctReference struct {
	ID string `json:"id"`
}

type ctProductData struct {
	Name          map[string]string `json:"name"`
	Slug          map[string]string `json:"slug"`
	Categories    []ctReference     `json:"categories"`
	MasterVariant ctVariant         `json:"masterVariant"`
}

type ctProduct struct {
	ID         string `json:"id"`
	Key        string `json:"key"`
	MasterData struct {
		Current ctProductData `json:"current"`
	} `json:"masterData"`
}

type ctProductPage struct {
	Results []ctProduct `json:"results"`
}

// GetCandidateProducts fetches up to limit products and flattens them into
// the shape the planner consumes.
func (r *CommercetoolsRepository) GetCandidateProducts(ctx context.Context, limit int) ([]domain.CatalogItem, error) {
	path := fmt.Sprintf("/products?limit=%d&expand=masterData.current.categories%%5B*%%5D", limit)

	var page ctProductPage
	if err := r.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}

	items := make([]domain.CatalogItem, 0, len(page.Results))
	for _, product := range page.Results {
		current := product.MasterData.Current

		name := current.Name["en"]
		if name == "" {
			name = product.Key
		}
		if name == "" {
			name = "Unnamed Product"
		}

		var price int64
		if len(current.MasterVariant.Prices) > 0 {
			price = current.MasterVariant.Prices[0].Value.CentAmount
		}

		stock := 100
		if current.MasterVariant.Availability != nil && current.MasterVariant.Availability.AvailableQuantity != nil {
			stock = *current.MasterVariant.Availability.AvailableQuantity
		}

		tags := make([]string, 0, len(current.Categories))
		for _, category := range current.Categories {
			tags = append(tags, category.ID)
		}

		images := make([]string, 0, len(current.MasterVariant.Images))
		for _, image := range current.MasterVariant.Images {
			images = append(images, image.URL)
		}

		item := domain.CatalogItem{
			ID:     product.ID,
			Name:   name,
			Price:  price,
			Stock:  stock,
			Tags:   tags,
			Images: images,
		}
		if len(images) > 0 {
			item.MainImage = images[0]
		}

		items = append(items, item)
	}

	return items, nil
}

const planContainer = "ai-campaigns"

type customObjectDraft struct {
	Container string      `json:"container"`
	Key       string      `json:"key"`
	Value     interface{} `json:"value"`
}

type customObject struct {
	Value json.RawMessage `json:"value"`
}

// SaveCampaignPlan persists the plan verbatim as a custom object keyed by the
// generated plan id.
func (r *CommercetoolsRepository) SaveCampaignPlan(ctx context.Context, id string, payload interface{}) error {
	draft := customObjectDraft{
		Container: planContainer,
		Key:       id,
		Value:     payload,
	}

	return r.do(ctx, http.MethodPost, "/custom-objects", draft, nil)
}

func (r *CommercetoolsRepository) GetCampaignPlan(ctx context.Context, id string) (json.RawMessage, error) {
	var object customObject
	err := r.do(ctx, http.MethodGet, "/custom-objects/"+planContainer+"/"+id, nil, &object)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}

	return object.Value, nil
}
