package repository

import (
	"context"

	"go-healthcare-portal/internal/domain/entity"
)

type HealthMetricRepository interface {
	Create(ctx context.Context, metric *entity.HealthMetric) error
	// Find returns matches ordered by recorded date, oldest first.
	Find(ctx context.Context, filter entity.HealthMetricFilter) ([]entity.HealthMetric, error)
}
