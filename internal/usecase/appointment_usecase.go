package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-healthcare-portal/internal/converter"
	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/domain/repository"
	"go-healthcare-portal/internal/service"
	"go-healthcare-portal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrDoctorNotFound         = errors.New("doctor not found")
	ErrForbidden              = errors.New("you do not have access to this resource")
	ErrPatientOnly            = errors.New("only patients can perform this action")
	ErrDoctorOnly             = errors.New("only doctors can perform this action")
	ErrInvalidSlot            = errors.New("time must be one of the standard slots")
	ErrDateInPast             = errors.New("appointment date must be today or later")
	ErrSlotTaken              = errors.New("the selected slot is already booked")
	ErrAppointmentNotActive   = errors.New("only scheduled appointments can be changed")
	ErrInvalidMonth           = errors.New("month must be between 1 and 12")
	ErrInvalidAppointmentType = errors.New("invalid appointment type")
)

type AppointmentUsecase interface {
	List(ctx context.Context, actor entity.Actor, query dto.AppointmentListQuery) (*dto.AppointmentListResponse, error)
	Get(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.AppointmentResponse, error)
	Calendar(ctx context.Context, actor entity.Actor, year, month int, doctorID *uuid.UUID) (*dto.CalendarResponse, error)
	Slots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotsResponse, error)
	Book(ctx context.Context, actor entity.Actor, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.AppointmentResponse, error)
	Complete(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	log              *logrus.Logger
	appointmentRepo  repository.AppointmentRepository
	userRepo         repository.UserRepository
	prefRepo         repository.NotificationPreferenceRepository
	notificationRepo repository.NotificationRepository
	slotGuard        *service.SlotGuard
	auditService     service.AuditService
	metrics          *metrics.Metrics
	now              Clock
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	prefRepo repository.NotificationPreferenceRepository,
	notificationRepo repository.NotificationRepository,
	slotGuard *service.SlotGuard,
	auditService service.AuditService,
	m *metrics.Metrics,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:              log,
		appointmentRepo:  appointmentRepo,
		userRepo:         userRepo,
		prefRepo:         prefRepo,
		notificationRepo: notificationRepo,
		slotGuard:        slotGuard,
		auditService:     auditService,
		metrics:          m,
		now:              systemClock,
	}
}

// ownerFilter scopes a query to the appointments the actor takes part in.
func ownerFilter(actor entity.Actor) entity.AppointmentFilter {
	if actor.IsDoctor() {
		return entity.AppointmentFilter{DoctorID: actor.ID}
	}
	return entity.AppointmentFilter{PatientID: actor.ID}
}

func (u *appointmentUsecase) List(ctx context.Context, actor entity.Actor, query dto.AppointmentListQuery) (*dto.AppointmentListResponse, error) {
	filter := ownerFilter(actor)
	filter.Status = entity.AppointmentStatus(query.Status)
	filter.Type = entity.AppointmentType(query.Type)

	appointments, err := u.appointmentRepo.Find(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	names, err := userNames(ctx, u.userRepo, appointmentParticipants(appointments)...)
	if err != nil {
		u.log.Warnf("Failed to resolve participant names: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments, names),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) Get(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.findParticipating(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return u.toResponse(ctx, appointment)
}

func (u *appointmentUsecase) Calendar(ctx context.Context, actor entity.Actor, year, month int, doctorID *uuid.UUID) (*dto.CalendarResponse, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	filter := ownerFilter(actor)
	if doctorID != nil {
		filter = entity.AppointmentFilter{DoctorID: *doctorID}
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	filter.DateFrom = first.Format(entity.DateLayout)
	filter.DateTo = first.AddDate(0, 1, -1).Format(entity.DateLayout)

	appointments, err := u.appointmentRepo.Find(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments for calendar: %+v", err)
		return nil, err
	}

	booked := make(map[string]bool, len(appointments))
	for i := range appointments {
		if !appointments[i].IsCancelled() {
			booked[appointments[i].DateString()] = true
		}
	}

	cal := entity.BuildCalendarMonth(year, time.Month(month), u.now(), booked)
	return converter.CalendarToResponse(cal), nil
}

func (u *appointmentUsecase) Slots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotsResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	if _, err := u.findDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.Find(ctx, entity.AppointmentFilter{
		DoctorID: doctorID,
		DateFrom: date,
		DateTo:   date,
	})
	if err != nil {
		u.log.Warnf("Failed to find appointments for slots: %+v", err)
		return nil, err
	}

	taken := make(map[string]bool, len(appointments))
	for i := range appointments {
		if !appointments[i].IsCancelled() {
			taken[appointments[i].Time] = true
		}
	}

	past := day.Before(entity.TruncateDay(u.now()))
	slots := make([]dto.SlotResponse, 0, len(entity.StandardSlots))
	for _, slot := range entity.StandardSlots {
		slots = append(slots, dto.SlotResponse{
			Time:      slot,
			Available: !past && !taken[slot],
		})
	}

	return &dto.SlotsResponse{
		DoctorID: doctorID,
		Date:     date,
		Slots:    slots,
	}, nil
}

func (u *appointmentUsecase) Book(ctx context.Context, actor entity.Actor, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if !actor.IsPatient() {
		return nil, ErrPatientOnly
	}

	appointmentType := entity.AppointmentTypeConsultation
	if req.Type != "" {
		appointmentType = entity.AppointmentType(req.Type)
		if !appointmentType.IsValid() {
			return nil, ErrInvalidAppointmentType
		}
	}

	if !entity.IsStandardSlot(req.Time) {
		return nil, ErrInvalidSlot
	}

	day, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if day.Before(entity.TruncateDay(u.now())) {
		return nil, ErrDateInPast
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, ErrDoctorNotFound
	}
	doctor, err := u.findDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	release, err := u.slotGuard.Acquire(ctx, service.SlotKey(doctor.ID, req.Date, req.Time))
	if err != nil {
		if errors.Is(err, service.ErrSlotBusy) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	defer release()

	existing, err := u.appointmentRepo.FindActiveBySlot(ctx, doctor.ID, day, req.Time)
	if err != nil {
		u.log.Warnf("Failed to check slot: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	appointment := &entity.Appointment{
		ID:        uuid.New(),
		PatientID: actor.ID,
		DoctorID:  doctor.ID,
		Date:      day,
		Time:      req.Time,
		Reason:    strings.TrimSpace(req.Reason),
		Status:    entity.AppointmentStatusScheduled,
		Type:      appointmentType,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.metrics.AppointmentBooked()

	if err := u.auditService.LogCreate(ctx, actor.ID, entity.AuditActionAppointmentBook, "appointment", appointment.ID.String(), map[string]interface{}{
		"doctor_id": doctor.ID,
		"date":      req.Date,
		"time":      req.Time,
		"type":      appointmentType,
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.notifyBooked(ctx, actor.ID, doctor, appointment)

	return u.toResponse(ctx, appointment)
}

// notifyBooked is best effort. The booking stands even if it fails.
func (u *appointmentUsecase) notifyBooked(ctx context.Context, patientID uuid.UUID, doctor *entity.User, appointment *entity.Appointment) {
	pref, err := u.prefRepo.FindByUserID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to load notification preferences: %+v", err)
		return
	}
	if pref == nil {
		pref = entity.DefaultNotificationPreference(patientID)
	}
	if !pref.Appointments {
		return
	}

	notification := &entity.Notification{
		ID:        uuid.New(),
		UserID:    patientID,
		Type:      entity.NotificationTypeAppointment,
		Title:     "Appointment Booked",
		Message:   fmt.Sprintf("Your appointment with %s is booked for %s at %s", doctor.Name, appointment.DateString(), appointment.Time),
		Timestamp: u.now(),
		Priority:  entity.PriorityMedium,
	}
	if err := u.notificationRepo.Create(ctx, notification); err != nil {
		u.log.Warnf("Failed to create booking notification: %+v", err)
	}
}

func (u *appointmentUsecase) Cancel(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.findParticipating(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !appointment.IsScheduled() {
		return nil, ErrAppointmentNotActive
	}

	oldStatus := appointment.Status
	appointment.Cancel()
	if err := u.appointmentRepo.Update(ctx, appointment); err != nil {
		u.log.Warnf("Failed to cancel appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, actor.ID, entity.AuditActionAppointmentCancel, "appointment", appointment.ID.String(),
		map[string]interface{}{"status": oldStatus},
		map[string]interface{}{"status": appointment.Status},
	); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return u.toResponse(ctx, appointment)
}

func (u *appointmentUsecase) Complete(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.AppointmentResponse, error) {
	if !actor.IsDoctor() {
		return nil, ErrDoctorOnly
	}

	appointment, err := u.findParticipating(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !appointment.IsScheduled() {
		return nil, ErrAppointmentNotActive
	}

	oldStatus := appointment.Status
	appointment.Complete()
	if err := u.appointmentRepo.Update(ctx, appointment); err != nil {
		u.log.Warnf("Failed to complete appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, actor.ID, entity.AuditActionAppointmentComplete, "appointment", appointment.ID.String(),
		map[string]interface{}{"status": oldStatus},
		map[string]interface{}{"status": appointment.Status},
	); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return u.toResponse(ctx, appointment)
}

func (u *appointmentUsecase) findParticipating(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.IsParticipant(actor.ID) {
		return nil, ErrForbidden
	}
	return appointment, nil
}

func (u *appointmentUsecase) findDoctor(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	doctor, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

func (u *appointmentUsecase) toResponse(ctx context.Context, appointment *entity.Appointment) (*dto.AppointmentResponse, error) {
	names, err := userNames(ctx, u.userRepo, appointment.PatientID, appointment.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to resolve participant names: %+v", err)
		return nil, err
	}
	res := converter.AppointmentToResponse(appointment, names)
	return &res, nil
}
