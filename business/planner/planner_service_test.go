package planner

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"bundleForge/domain"
)

type fakeCatalogRepo struct {
	products   []domain.CatalogItem
	savedID    string
	savedPlans map[string]interface{}
	fetchErr   error
}

func (f *fakeCatalogRepo) GetCandidateProducts(_ context.Context, _ int) ([]domain.CatalogItem, error) {
	return f.products, f.fetchErr
}

func (f *fakeCatalogRepo) SaveCampaignPlan(_ context.Context, id string, payload interface{}) error {
	if f.savedPlans == nil {
		f.savedPlans = make(map[string]interface{})
	}
	f.savedID = id
	f.savedPlans[id] = payload
	return nil
}

func (f *fakeCatalogRepo) GetCampaignPlan(_ context.Context, id string) (json.RawMessage, error) {
	if _, ok := f.savedPlans[id]; !ok {
		return nil, domain.ErrPlanNotFound
	}
	return json.RawMessage(`{}`), nil
}

type fakeAIGateway struct {
	chatResponse string
	chatErr      error
	imageURL     string
	imageErr     error
	imageCalls   int
}

func (f *fakeAIGateway) Configured() bool { return true }

func (f *fakeAIGateway) ChatJSON(_ context.Context, _, _ string, _ float64) (string, error) {
	return f.chatResponse, f.chatErr
}

func (f *fakeAIGateway) GenerateImage(_ context.Context, _ string) (string, error) {
	f.imageCalls++
	return f.imageURL, f.imageErr
}

type fakeImageStore struct {
	localPath string
	saveErr   error
}

func (f *fakeImageStore) SaveFromURL(_ context.Context, _, _, _ string) (string, error) {
	return f.localPath, f.saveErr
}

func sampleCatalog() []domain.CatalogItem {
	return []domain.CatalogItem{
		{ID: "sku-mug", Name: "Stoneware Mug", Price: 1800, MainImage: "https://cdn.example/mug.jpg"},
		{ID: "sku-throw", Name: "Wool Throw", Price: 6200, MainImage: "https://cdn.example/throw.jpg"},
		{ID: "sku-candle", Name: "Soy Candle", Price: 2400},
	}
}

func planJSON(bundles string) string {
	return `{"theme":"Fall Essentials","bundles":[` + bundles + `],"overallStrategy":"warm up","targetAudience":"home lovers"}`
}

func TestPlanCampaignEmptyCatalog(t *testing.T) {
	svc := NewPlannerService(&fakeCatalogRepo{}, &fakeAIGateway{}, &fakeImageStore{})

	_, err := svc.PlanCampaign(context.Background(), "Fall Essentials", 40)
	if err != ErrEmptyCatalog {
		t.Fatalf("err = %v, want ErrEmptyCatalog", err)
	}
}

func TestPlanCampaignParseFailureFailsWholePlan(t *testing.T) {
	repo := &fakeCatalogRepo{products: sampleCatalog()}
	ai := &fakeAIGateway{chatResponse: "not json at all"}
	svc := NewPlannerService(repo, ai, &fakeImageStore{})

	_, err := svc.PlanCampaign(context.Background(), "Fall Essentials", 40)
	if err == nil || !strings.Contains(err.Error(), "failed to parse campaign plan") {
		t.Fatalf("err = %v, want parse failure", err)
	}
	if repo.savedID != "" {
		t.Error("a failed plan must not be persisted")
	}
}

func TestPlanCampaignFillsDefaultsAndImages(t *testing.T) {
	repo := &fakeCatalogRepo{products: sampleCatalog()}
	ai := &fakeAIGateway{
		chatResponse: planJSON(`{"name":"  ","rationale":"pairs well","skus":["sku-mug","sku-throw","sku-candle"],"targetPrice":8000,"discountPercent":20,"emailBlurb":""}`),
		imageURL:     "https://images.example/generated.png",
	}
	store := &fakeImageStore{localPath: "/bundle-images/fall-essentials-bundle.jpg"}
	svc := NewPlannerService(repo, ai, store)

	outcome, err := svc.PlanCampaign(context.Background(), "Fall Essentials", 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(outcome.PlanID, "plan_") {
		t.Errorf("plan id = %q", outcome.PlanID)
	}
	if repo.savedID != outcome.PlanID {
		t.Errorf("saved id %q != returned id %q", repo.savedID, outcome.PlanID)
	}
	if len(outcome.Products) != 3 {
		t.Errorf("product map size = %d", len(outcome.Products))
	}

	bundle := outcome.Plan.Bundles[0]
	if bundle.Name != "Fall Essentials Bundle 1" {
		t.Errorf("defaulted name = %q", bundle.Name)
	}
	if bundle.EmailBlurb != "Discover amazing savings with this fall essentials bundle 1 collection." {
		t.Errorf("defaulted blurb = %q", bundle.EmailBlurb)
	}
	// sku-candle has no main image and contributes nothing
	if len(bundle.ChildProductImages) != 2 {
		t.Errorf("child images = %v", bundle.ChildProductImages)
	}
	if bundle.BundleImageURL != "/bundle-images/fall-essentials-bundle.jpg" {
		t.Errorf("bundle image = %q", bundle.BundleImageURL)
	}
}

func TestPlanCampaignImageFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		skus      string
		ai        *fakeAIGateway
		store     *fakeImageStore
		wantImage string
	}{
		{
			name:      "generation failure falls back to first child image",
			skus:      `["sku-mug","sku-throw"]`,
			ai:        &fakeAIGateway{imageErr: errors.New("quota exceeded")},
			store:     &fakeImageStore{},
			wantImage: "https://cdn.example/mug.jpg",
		},
		{
			name:      "no child images falls back to placeholder",
			skus:      `["sku-candle"]`,
			ai:        &fakeAIGateway{},
			store:     &fakeImageStore{},
			wantImage: "https://via.placeholder.com/600x400/667eea/ffffff?text=Cozy+Morning",
		},
		{
			name:      "save failure keeps remote url",
			skus:      `["sku-mug"]`,
			ai:        &fakeAIGateway{imageURL: "https://images.example/generated.png"},
			store:     &fakeImageStore{saveErr: errors.New("disk full")},
			wantImage: "https://images.example/generated.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.ai.chatResponse = planJSON(`{"name":"Cozy Morning","rationale":"r","skus":` + tt.skus + `,"targetPrice":8000,"discountPercent":20,"emailBlurb":"b"}`)
			repo := &fakeCatalogRepo{products: sampleCatalog()}
			svc := NewPlannerService(repo, tt.ai, tt.store)

			outcome, err := svc.PlanCampaign(context.Background(), "Fall Essentials", 40)
			if err != nil {
				t.Fatalf("image trouble must never fail the plan: %v", err)
			}
			if got := outcome.Plan.Bundles[0].BundleImageURL; got != tt.wantImage {
				t.Errorf("bundle image = %q, want %q", got, tt.wantImage)
			}
		})
	}
}

func TestGenerateImageSurfacesFailure(t *testing.T) {
	svc := NewPlannerService(&fakeCatalogRepo{}, &fakeAIGateway{imageErr: errors.New("quota exceeded")}, &fakeImageStore{})

	_, err := svc.GenerateImage(context.Background(), "Cozy Morning", "Fall", []string{"Stoneware Mug"}, "")
	if err == nil {
		t.Fatal("standalone image generation must surface failures")
	}
}

func TestGetPlanNotFound(t *testing.T) {
	svc := NewPlannerService(&fakeCatalogRepo{}, &fakeAIGateway{}, &fakeImageStore{})

	_, err := svc.GetPlan(context.Background(), "plan_missing")
	if !errors.Is(err, domain.ErrPlanNotFound) {
		t.Fatalf("err = %v, want ErrPlanNotFound", err)
	}
}
