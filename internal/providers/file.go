package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/monxcode/GeoSense-Udaipur/internal/models"
)

// FileProvider reads a JSON array of road records from disk. The file
// uses the same wire shape the HTTP API serves.
type FileProvider struct {
	Path string
}

func (p *FileProvider) Name() string { return models.SourceFile }

func (p *FileProvider) Load(ctx context.Context) ([]models.RoadRecord, error) {
	if p.Path == "" {
		return nil, fmt.Errorf("source_file is not set")
	}
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset file: %w", err)
	}
	var roads []models.RoadRecord
	if err := json.Unmarshal(data, &roads); err != nil {
		return nil, fmt.Errorf("parsing dataset file %s: %w", p.Path, err)
	}
	return roads, nil
}
