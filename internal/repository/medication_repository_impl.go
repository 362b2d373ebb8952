package repository

import (
	"context"
	"errors"
	"time"

	"go-healthcare-portal/internal/domain/entity"
	domainRepo "go-healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type medicationRepository struct {
	db *gorm.DB
}

func NewMedicationRepository(db *gorm.DB) domainRepo.MedicationRepository {
	return &medicationRepository{db: db}
}

func (r *medicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Medication, error) {
	var medication entity.Medication
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&medication).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &medication, nil
}

func (r *medicationRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Medication, error) {
	var medications []entity.Medication
	err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).Order("next_dose ASC").Find(&medications).Error
	if err != nil {
		return nil, err
	}
	return medications, nil
}

func (r *medicationRepository) FindDue(ctx context.Context, now time.Time) ([]entity.Medication, error) {
	var medications []entity.Medication
	err := r.db.WithContext(ctx).Where("next_dose <= ?", now).Order("next_dose ASC").Find(&medications).Error
	if err != nil {
		return nil, err
	}
	return medications, nil
}

func (r *medicationRepository) Update(ctx context.Context, medication *entity.Medication) error {
	return r.db.WithContext(ctx).Save(medication).Error
}

func (r *medicationRepository) MarkReminded(ctx context.Context, id uuid.UUID, dose, remindedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.Medication{}).
		Where("id = ? AND next_dose = ?", id, dose).
		Updates(map[string]interface{}{"taken": false, "last_reminded_at": remindedAt})
	return result.RowsAffected > 0, result.Error
}
