package repositories

import (
	"context"

	"github.com/monxcode/GeoSense-Udaipur/internal/models"
)

type RoadRepository interface {
	BulkCreate(ctx context.Context, roads []models.RoadRecord) error
	Create(ctx context.Context, road models.RoadRecord) error
	GetAll(ctx context.Context) ([]models.RoadRecord, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
