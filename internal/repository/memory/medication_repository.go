package memory

import (
	"context"
	"sort"
	"time"

	"go-healthcare-portal/internal/domain/entity"
	domainRepo "go-healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
)

type medicationRepository struct {
	store *Store
}

func NewMedicationRepository(store *Store) domainRepo.MedicationRepository {
	return &medicationRepository{store: store}
}

func (r *medicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Medication, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m, ok := r.store.medications[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *medicationRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Medication, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]entity.Medication, 0)
	for _, m := range r.store.medications {
		if m.PatientID == patientID {
			list = append(list, m)
		}
	}
	sortMedications(list)
	return list, nil
}

func (r *medicationRepository) FindDue(ctx context.Context, now time.Time) ([]entity.Medication, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]entity.Medication, 0)
	for _, m := range r.store.medications {
		if m.DoseDue(now) {
			list = append(list, m)
		}
	}
	sortMedications(list)
	return list, nil
}

func (r *medicationRepository) Update(ctx context.Context, medication *entity.Medication) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.medications[medication.ID] = *medication
	return nil
}

func (r *medicationRepository) MarkReminded(ctx context.Context, id uuid.UUID, dose, remindedAt time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	m, ok := r.store.medications[id]
	if !ok || !m.NextDose.Equal(dose) {
		return false, nil
	}
	m.Taken = false
	m.LastRemindedAt = &remindedAt
	r.store.medications[id] = m
	return true, nil
}

func sortMedications(list []entity.Medication) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].NextDose.Before(list[j].NextDose) })
}
