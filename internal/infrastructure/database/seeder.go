package database

import (
	"context"
	"fmt"

	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/seed"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SeedIfEmpty loads the demo dataset into an empty database. A database that
// already has users is left untouched.
func SeedIfEmpty(ctx context.Context, db *gorm.DB, ds *seed.Dataset, log *logrus.Logger) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		log.Debugf("Skipping seed, %d users already present", count)
		return false, nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			name string
			rows interface{}
			n    int
		}{
			{"users", &ds.Users, len(ds.Users)},
			{"notification_preferences", &ds.Preferences, len(ds.Preferences)},
			{"appointments", &ds.Appointments, len(ds.Appointments)},
			{"messages", &ds.Messages, len(ds.Messages)},
			{"health_metrics", &ds.HealthMetrics, len(ds.HealthMetrics)},
			{"medications", &ds.Medications, len(ds.Medications)},
			{"notifications", &ds.Notifications, len(ds.Notifications)},
		}
		for _, step := range steps {
			if step.n == 0 {
				continue
			}
			if err := tx.Create(step.rows).Error; err != nil {
				return fmt.Errorf("seed %s: %w", step.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	log.Infof("Seeded demo data: %d users, %d appointments, %d health metrics",
		len(ds.Users), len(ds.Appointments), len(ds.HealthMetrics))
	return true, nil
}
