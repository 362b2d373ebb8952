package memory

import (
	"context"
	"sort"
	"time"

	"go-healthcare-portal/internal/domain/entity"
	domainRepo "go-healthcare-portal/internal/domain/repository"
)

type healthMetricRepository struct {
	store *Store
}

func NewHealthMetricRepository(store *Store) domainRepo.HealthMetricRepository {
	return &healthMetricRepository{store: store}
}

func (r *healthMetricRepository) Create(ctx context.Context, metric *entity.HealthMetric) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if metric.CreatedAt.IsZero() {
		metric.CreatedAt = time.Now()
	}
	r.store.metrics = append(r.store.metrics, *metric)
	return nil
}

func (r *healthMetricRepository) Find(ctx context.Context, filter entity.HealthMetricFilter) ([]entity.HealthMetric, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]entity.HealthMetric, 0)
	for _, m := range r.store.metrics {
		if filter.Matches(&m) {
			list = append(list, m)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].RecordedOn.Equal(list[j].RecordedOn) {
			return list[i].RecordedOn.Before(list[j].RecordedOn)
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}
