package repository

import (
	"context"
	"time"

	"go-healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	Update(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	// Find returns matches ordered by date then time.
	Find(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error)
	// FindActiveBySlot returns the non-cancelled appointment holding the slot, if any.
	FindActiveBySlot(ctx context.Context, doctorID uuid.UUID, date time.Time, slot string) (*entity.Appointment, error)
}
