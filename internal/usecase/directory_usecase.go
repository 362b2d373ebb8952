package usecase

import (
	"context"

	"go-healthcare-portal/internal/converter"
	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type DirectoryUsecase interface {
	Doctors(ctx context.Context) (*dto.DoctorListResponse, error)
}

type directoryUsecase struct {
	log      *logrus.Logger
	userRepo repository.UserRepository
}

func NewDirectoryUsecase(log *logrus.Logger, userRepo repository.UserRepository) DirectoryUsecase {
	return &directoryUsecase{
		log:      log,
		userRepo: userRepo,
	}
}

func (u *directoryUsecase) Doctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.userRepo.FindByRole(ctx, entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}
