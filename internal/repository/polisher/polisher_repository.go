package polisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bundleForge/domain"
)

type PolisherConfig struct {
	URL string
}

// PolisherRepository proxies email HTML to the external polish endpoint,
// which returns enhanced HTML and an optional header image.
type PolisherRepository struct {
	polisherConfig PolisherConfig
	client         *http.Client
}

func NewPolisherRepository(cfg PolisherConfig) *PolisherRepository {
	return &PolisherRepository{
		polisherConfig: cfg,
		client:         &http.Client{Timeout: 60 * time.Second},
	}
}

func (r *PolisherRepository) Configured() bool {
	return r.polisherConfig.URL != ""
}

type BundleMetadata struct {
	Name     string   `json:"name"`
	SKUs     []string `json:"skus"`
	SKUCount int      `json:"skuCount"`
	Price    int64    `json:"price"`
	Discount float64  `json:"discount"`
	HasImage bool     `json:"hasImage"`
	ImageURL string   `json:"imageUrl,omitempty"`
}

type PolishRequest struct {
	HTML                 string           `json:"html"`
	CampaignText         string           `json:"campaignText"`
	GenerateImage        bool             `json:"generateImage"`
	Bundles              []domain.Bundle  `json:"bundles"`
	BundleCreationResult json.RawMessage  `json:"bundleCreationResult,omitempty"`
	BundleMetadata       []BundleMetadata `json:"bundleMetadata"`
}

type PolishResponse struct {
	OptimizedHTML string `json:"optimizedHtml"`
	HeaderImage   string `json:"headerImage,omitempty"`
	Message       string `json:"message,omitempty"`
}

func (r *PolisherRepository) PolishEmail(ctx context.Context, request PolishRequest) (*PolishResponse, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.polisherConfig.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("polish service returned %d: %s", res.StatusCode, string(body))
	}

	var polished PolishResponse
	if err := json.Unmarshal(body, &polished); err != nil {
		return nil, fmt.Errorf("failed to decode polish response: %w", err)
	}

	return &polished, nil
}
