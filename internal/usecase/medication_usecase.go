package usecase

import (
	"context"
	"errors"

	"go-healthcare-portal/internal/converter"
	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/domain/repository"
	"go-healthcare-portal/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrMedicationNotFound = errors.New("medication not found")

type MedicationUsecase interface {
	List(ctx context.Context, actor entity.Actor) (*dto.MedicationListResponse, error)
	Due(ctx context.Context, actor entity.Actor) (*dto.MedicationListResponse, error)
	MarkTaken(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.MedicationResponse, error)
}

type medicationUsecase struct {
	log            *logrus.Logger
	medicationRepo repository.MedicationRepository
	auditService   service.AuditService
	now            Clock
}

func NewMedicationUsecase(log *logrus.Logger, medicationRepo repository.MedicationRepository, auditService service.AuditService) MedicationUsecase {
	return &medicationUsecase{
		log:            log,
		medicationRepo: medicationRepo,
		auditService:   auditService,
		now:            systemClock,
	}
}

func (u *medicationUsecase) List(ctx context.Context, actor entity.Actor) (*dto.MedicationListResponse, error) {
	medications, err := u.findForPatient(ctx, actor)
	if err != nil {
		return nil, err
	}

	return &dto.MedicationListResponse{
		Medications: converter.MedicationsToResponses(medications, u.now()),
		Total:       len(medications),
	}, nil
}

// Due lists the medications whose current dose is not taken yet.
func (u *medicationUsecase) Due(ctx context.Context, actor entity.Actor) (*dto.MedicationListResponse, error) {
	medications, err := u.findForPatient(ctx, actor)
	if err != nil {
		return nil, err
	}

	due := make([]entity.Medication, 0, len(medications))
	for _, m := range medications {
		if !m.Taken {
			due = append(due, m)
		}
	}

	return &dto.MedicationListResponse{
		Medications: converter.MedicationsToResponses(due, u.now()),
		Total:       len(due),
	}, nil
}

func (u *medicationUsecase) MarkTaken(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.MedicationResponse, error) {
	if !actor.IsPatient() {
		return nil, ErrPatientOnly
	}

	medication, err := u.medicationRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find medication: %+v", err)
		return nil, err
	}
	if medication == nil {
		return nil, ErrMedicationNotFound
	}
	if medication.PatientID != actor.ID {
		return nil, ErrForbidden
	}

	now := u.now()
	previousDose := medication.NextDose
	medication.MarkTaken(now)
	if err := u.medicationRepo.Update(ctx, medication); err != nil {
		u.log.Warnf("Failed to update medication: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, actor.ID, entity.AuditActionMedicationTaken, "medication", medication.ID.String(),
		map[string]interface{}{"next_dose": previousDose},
		map[string]interface{}{"next_dose": medication.NextDose, "taken": true},
	); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	res := converter.MedicationToResponse(medication, now)
	return &res, nil
}

func (u *medicationUsecase) findForPatient(ctx context.Context, actor entity.Actor) ([]entity.Medication, error) {
	if !actor.IsPatient() {
		return nil, ErrPatientOnly
	}

	medications, err := u.medicationRepo.FindByPatientID(ctx, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find medications: %+v", err)
		return nil, err
	}
	return medications, nil
}
