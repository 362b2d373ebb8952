package usecase

import (
	"context"

	"go-healthcare-portal/internal/converter"
	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

const (
	patientUpcomingLimit = 3
	doctorUpcomingLimit  = 5
)

type DashboardUsecase interface {
	Patient(ctx context.Context, actor entity.Actor) (*dto.PatientDashboardResponse, error)
	Doctor(ctx context.Context, actor entity.Actor) (*dto.DoctorDashboardResponse, error)
}

type dashboardUsecase struct {
	log              *logrus.Logger
	userRepo         repository.UserRepository
	appointmentRepo  repository.AppointmentRepository
	messageRepo      repository.MessageRepository
	notificationRepo repository.NotificationRepository
	medications      MedicationUsecase
	analytics        AnalyticsUsecase
	now              Clock
}

func NewDashboardUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
	messageRepo repository.MessageRepository,
	notificationRepo repository.NotificationRepository,
	medications MedicationUsecase,
	analytics AnalyticsUsecase,
) DashboardUsecase {
	return &dashboardUsecase{
		log:              log,
		userRepo:         userRepo,
		appointmentRepo:  appointmentRepo,
		messageRepo:      messageRepo,
		notificationRepo: notificationRepo,
		medications:      medications,
		analytics:        analytics,
		now:              systemClock,
	}
}

func (u *dashboardUsecase) Patient(ctx context.Context, actor entity.Actor) (*dto.PatientDashboardResponse, error) {
	if !actor.IsPatient() {
		return nil, ErrPatientOnly
	}

	today := u.now().Format(entity.DateLayout)
	res := &dto.PatientDashboardResponse{Role: string(entity.RolePatient)}
	var upcoming []entity.Appointment

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		user, err := u.userRepo.FindByID(ctx, actor.ID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
		res.Name = user.Name
		return nil
	})
	p.Go(func(ctx context.Context) error {
		list, err := u.appointmentRepo.Find(ctx, entity.AppointmentFilter{
			PatientID: actor.ID,
			Status:    entity.AppointmentStatusScheduled,
			DateFrom:  today,
		})
		if err != nil {
			return err
		}
		if len(list) > patientUpcomingLimit {
			list = list[:patientUpcomingLimit]
		}
		upcoming = list
		return nil
	})
	p.Go(func(ctx context.Context) error {
		due, err := u.medications.Due(ctx, actor)
		if err != nil {
			return err
		}
		res.DueMedications = due.Medications
		return nil
	})
	p.Go(func(ctx context.Context) error {
		count, err := u.notificationRepo.CountUnread(ctx, actor.ID)
		if err != nil {
			return err
		}
		res.UnreadNotifications = count
		return nil
	})
	p.Go(func(ctx context.Context) error {
		cards, err := u.analytics.Latest(ctx, actor)
		if err != nil {
			return err
		}
		res.LatestMetrics = cards
		return nil
	})
	if err := p.Wait(); err != nil {
		u.log.Warnf("Failed to build patient dashboard: %+v", err)
		return nil, err
	}

	names, err := userNames(ctx, u.userRepo, appointmentParticipants(upcoming)...)
	if err != nil {
		u.log.Warnf("Failed to resolve participant names: %+v", err)
		return nil, err
	}
	res.UpcomingAppointments = converter.AppointmentsToResponses(upcoming, names)

	return res, nil
}

// Doctor counts pending reviews as scheduled appointments whose date has passed.
func (u *dashboardUsecase) Doctor(ctx context.Context, actor entity.Actor) (*dto.DoctorDashboardResponse, error) {
	if !actor.IsDoctor() {
		return nil, ErrDoctorOnly
	}

	today := u.now().Format(entity.DateLayout)
	res := &dto.DoctorDashboardResponse{Role: string(entity.RoleDoctor)}
	var all []entity.Appointment

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		user, err := u.userRepo.FindByID(ctx, actor.ID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
		res.Name = user.Name
		return nil
	})
	p.Go(func(ctx context.Context) error {
		list, err := u.appointmentRepo.Find(ctx, entity.AppointmentFilter{DoctorID: actor.ID})
		if err != nil {
			return err
		}
		all = list
		return nil
	})
	p.Go(func(ctx context.Context) error {
		count, err := u.messageRepo.CountUnread(ctx, actor.ID)
		if err != nil {
			return err
		}
		res.UnreadMessages = count
		return nil
	})
	if err := p.Wait(); err != nil {
		u.log.Warnf("Failed to build doctor dashboard: %+v", err)
		return nil, err
	}

	patients := make(map[string]struct{})
	var todays, upcoming []entity.Appointment
	for _, a := range all {
		patients[a.PatientID.String()] = struct{}{}
		date := a.DateString()
		switch {
		case date == today && !a.IsCancelled():
			todays = append(todays, a)
		case a.IsScheduled() && date < today:
			res.PendingReviews++
		case a.IsScheduled() && date > today && len(upcoming) < doctorUpcomingLimit:
			upcoming = append(upcoming, a)
		}
	}
	res.TotalPatients = len(patients)

	names, err := userNames(ctx, u.userRepo, append(appointmentParticipants(todays), appointmentParticipants(upcoming)...)...)
	if err != nil {
		u.log.Warnf("Failed to resolve participant names: %+v", err)
		return nil, err
	}
	res.TodayAppointments = converter.AppointmentsToResponses(todays, names)
	res.UpcomingAppointments = converter.AppointmentsToResponses(upcoming, names)

	return res, nil
}
