package dto

// Request DTOs

type UpdateProfileRequest struct {
	Name           string `json:"name" validate:"required,notblank,max=255"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"omitempty,max=30"`
	DateOfBirth    string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Address        string `json:"address" validate:"omitempty,max=500"`
	Specialization string `json:"specialization" validate:"omitempty,max=100"`
}

type UpdatePreferencesRequest struct {
	Appointments *bool `json:"appointments" validate:"required"`
	Medication   *bool `json:"medication" validate:"required"`
	Results      *bool `json:"results" validate:"required"`
	Marketing    *bool `json:"marketing" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// Response DTOs

type PreferencesResponse struct {
	Appointments bool `json:"appointments"`
	Medication   bool `json:"medication"`
	Results      bool `json:"results"`
	Marketing    bool `json:"marketing"`
}
