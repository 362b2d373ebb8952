package memory

import (
	"context"
	"time"

	"go-healthcare-portal/internal/domain/entity"
	domainRepo "go-healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
)

type appointmentRepository struct {
	store *Store
}

func NewAppointmentRepository(store *Store) domainRepo.AppointmentRepository {
	return &appointmentRepository{store: store}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.appointments[appointment.ID]; ok {
		return domainRepo.ErrDuplicateKey
	}
	now := time.Now()
	if appointment.CreatedAt.IsZero() {
		appointment.CreatedAt = now
	}
	appointment.UpdatedAt = now
	r.store.appointments[appointment.ID] = *appointment
	return nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	appointment.UpdatedAt = time.Now()
	r.store.appointments[appointment.ID] = *appointment
	return nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	a, ok := r.store.appointments[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *appointmentRepository) Find(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]entity.Appointment, 0)
	for _, a := range r.store.appointments {
		if filter.Matches(&a) {
			list = append(list, a)
		}
	}
	sortAppointments(list)
	return list, nil
}

func (r *appointmentRepository) FindActiveBySlot(ctx context.Context, doctorID uuid.UUID, date time.Time, slot string) (*entity.Appointment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	day := date.Format(entity.DateLayout)
	for _, a := range r.store.appointments {
		if a.DoctorID == doctorID && a.DateString() == day && a.Time == slot && !a.IsCancelled() {
			return &a, nil
		}
	}
	return nil, nil
}
