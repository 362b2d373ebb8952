package repository

import (
	"context"

	"go-healthcare-portal/internal/domain/entity"
	domainRepo "go-healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type healthMetricRepository struct {
	db *gorm.DB
}

func NewHealthMetricRepository(db *gorm.DB) domainRepo.HealthMetricRepository {
	return &healthMetricRepository{db: db}
}

func (r *healthMetricRepository) Create(ctx context.Context, metric *entity.HealthMetric) error {
	return r.db.WithContext(ctx).Create(metric).Error
}

func (r *healthMetricRepository) Find(ctx context.Context, filter entity.HealthMetricFilter) ([]entity.HealthMetric, error) {
	query := r.db.WithContext(ctx).Model(&entity.HealthMetric{})

	if filter.PatientID != uuid.Nil {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if len(filter.Types) > 0 {
		query = query.Where("type IN ?", filter.Types)
	}
	if !filter.From.IsZero() {
		query = query.Where("recorded_on >= ?", filter.From.Format(entity.DateLayout))
	}

	var metrics []entity.HealthMetric
	if err := query.Order("recorded_on ASC, created_at ASC").Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}
