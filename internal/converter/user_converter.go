package converter

import (
	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           string(user.Role),
		Specialization: user.Specialization,
		Phone:          user.Phone,
		Address:        user.Address,
		Avatar:         user.Avatar,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}

	if user.DateOfBirth != nil {
		response.DateOfBirth = user.DateOfBirth.Format(entity.DateLayout)
	}

	return response
}

func DoctorToResponse(user *entity.User) dto.DoctorResponse {
	return dto.DoctorResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Specialization: user.Specialization,
		Phone:          user.Phone,
		Avatar:         user.Avatar,
	}
}

func DoctorsToResponses(users []entity.User) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(users))
	for i := range users {
		responses[i] = DoctorToResponse(&users[i])
	}
	return responses
}

func PreferenceToResponse(pref *entity.NotificationPreference) *dto.PreferencesResponse {
	return &dto.PreferencesResponse{
		Appointments: pref.Appointments,
		Medication:   pref.Medication,
		Results:      pref.Results,
		Marketing:    pref.Marketing,
	}
}
