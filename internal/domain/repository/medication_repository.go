package repository

import (
	"context"
	"time"

	"go-healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
)

type MedicationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Medication, error)
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Medication, error)
	// FindDue returns medications whose next dose is at or before now.
	FindDue(ctx context.Context, now time.Time) ([]entity.Medication, error)
	Update(ctx context.Context, medication *entity.Medication) error
	// MarkReminded stamps the reminder and clears Taken only while the
	// stored next dose still equals dose. It reports whether a row changed.
	MarkReminded(ctx context.Context, id uuid.UUID, dose, remindedAt time.Time) (bool, error)
}
