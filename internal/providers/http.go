package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/monxcode/GeoSense-Udaipur/internal/models"
)

// HTTPProvider fetches the dataset from a JSON endpoint, typically
// another GeoSense instance or a city data portal export.
type HTTPProvider struct {
	URL    string
	Client *http.Client
}

func (p *HTTPProvider) Name() string { return models.SourceHTTP }

func (p *HTTPProvider) Load(ctx context.Context) ([]models.RoadRecord, error) {
	if p.URL == "" {
		return nil, fmt.Errorf("source_url is not set")
	}
	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building dataset request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching dataset: unexpected status %s", resp.Status)
	}

	var roads []models.RoadRecord
	if err := json.NewDecoder(resp.Body).Decode(&roads); err != nil {
		return nil, fmt.Errorf("decoding dataset from %s: %w", p.URL, err)
	}
	return roads, nil
}
