package usecase

import (
	"context"
	"errors"
	"strings"

	"go-healthcare-portal/internal/converter"
	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/domain/repository"
	"go-healthcare-portal/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var ErrCurrentPasswordMismatch = errors.New("current password is incorrect")

const activityLimit = 50

type ProfileUsecase interface {
	Get(ctx context.Context, actor entity.Actor) (*dto.UserResponse, error)
	Update(ctx context.Context, actor entity.Actor, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	GetPreferences(ctx context.Context, actor entity.Actor) (*dto.PreferencesResponse, error)
	UpdatePreferences(ctx context.Context, actor entity.Actor, req *dto.UpdatePreferencesRequest) (*dto.PreferencesResponse, error)
	ChangePassword(ctx context.Context, actor entity.Actor, req *dto.ChangePasswordRequest) error
	Activity(ctx context.Context, actor entity.Actor) (*dto.AuditLogListResponse, error)
}

type profileUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	prefRepo     repository.NotificationPreferenceRepository
	auditRepo    repository.AuditLogRepository
	tokenStore   service.TokenStore
	auditService service.AuditService
	bcryptCost   int
}

func NewProfileUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	prefRepo repository.NotificationPreferenceRepository,
	auditRepo repository.AuditLogRepository,
	tokenStore service.TokenStore,
	auditService service.AuditService,
) ProfileUsecase {
	return &profileUsecase{
		log:          log,
		userRepo:     userRepo,
		prefRepo:     prefRepo,
		auditRepo:    auditRepo,
		tokenStore:   tokenStore,
		auditService: auditService,
		bcryptCost:   bcrypt.DefaultCost,
	}
}

func (u *profileUsecase) Get(ctx context.Context, actor entity.Actor) (*dto.UserResponse, error) {
	user, err := u.findUser(ctx, actor)
	if err != nil {
		return nil, err
	}
	return converter.UserToResponse(user), nil
}

// Update ignores the fields that do not belong to the caller's role.
func (u *profileUsecase) Update(ctx context.Context, actor entity.Actor, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := u.findUser(ctx, actor)
	if err != nil {
		return nil, err
	}
	before := converter.UserToResponse(user)

	email := normalizeEmail(req.Email)
	if email != user.Email {
		existing, err := u.userRepo.FindByEmail(ctx, email)
		if err != nil {
			u.log.Warnf("Failed to find user by email: %+v", err)
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, ErrEmailAlreadyExists
		}
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Email = email
	user.Phone = strings.TrimSpace(req.Phone)

	if user.IsPatient() {
		user.Address = strings.TrimSpace(req.Address)
		user.DateOfBirth = nil
		if req.DateOfBirth != "" {
			dob, err := parseDate(req.DateOfBirth)
			if err != nil {
				return nil, err
			}
			user.DateOfBirth = &dob
		}
	} else {
		user.Specialization = strings.TrimSpace(req.Specialization)
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	after := converter.UserToResponse(user)
	if err := u.auditService.LogUpdate(ctx, actor.ID, entity.AuditActionProfileUpdate, "user", user.ID.String(), before, after); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return after, nil
}

func (u *profileUsecase) GetPreferences(ctx context.Context, actor entity.Actor) (*dto.PreferencesResponse, error) {
	pref, err := u.prefRepo.FindByUserID(ctx, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find notification preferences: %+v", err)
		return nil, err
	}
	if pref == nil {
		pref = entity.DefaultNotificationPreference(actor.ID)
	}
	return converter.PreferenceToResponse(pref), nil
}

func (u *profileUsecase) UpdatePreferences(ctx context.Context, actor entity.Actor, req *dto.UpdatePreferencesRequest) (*dto.PreferencesResponse, error) {
	pref := &entity.NotificationPreference{
		UserID:       actor.ID,
		Appointments: *req.Appointments,
		Medication:   *req.Medication,
		Results:      *req.Results,
		Marketing:    *req.Marketing,
	}

	if err := u.prefRepo.Save(ctx, pref); err != nil {
		u.log.Warnf("Failed to save notification preferences: %+v", err)
		return nil, err
	}

	res := converter.PreferenceToResponse(pref)
	if err := u.auditService.Log(ctx, actor.ID, entity.AuditActionPreferenceUpdate, entity.JSON{
		"appointments": res.Appointments,
		"medication":   res.Medication,
		"results":      res.Results,
		"marketing":    res.Marketing,
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return res, nil
}

// ChangePassword signs the user out everywhere.
func (u *profileUsecase) ChangePassword(ctx context.Context, actor entity.Actor, req *dto.ChangePasswordRequest) error {
	user, err := u.findUser(ctx, actor)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrCurrentPasswordMismatch
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), u.bcryptCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	user.Password = string(hashedPassword)
	if err := u.userRepo.Update(ctx, user); err != nil {
		u.log.Warnf("Failed to update password: %+v", err)
		return err
	}

	if err := u.tokenStore.RevokeAll(ctx, user.ID); err != nil {
		u.log.Warnf("Failed to revoke tokens after password change: %+v", err)
		return err
	}

	if err := u.auditService.Log(ctx, actor.ID, entity.AuditActionPasswordChange, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}

func (u *profileUsecase) Activity(ctx context.Context, actor entity.Actor) (*dto.AuditLogListResponse, error) {
	logs, err := u.auditRepo.FindByUserID(ctx, actor.ID, activityLimit)
	if err != nil {
		u.log.Warnf("Failed to get audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}

func (u *profileUsecase) findUser(ctx context.Context, actor entity.Actor) (*entity.User, error) {
	user, err := u.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
