package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is both the login identity and the profile of a patient or doctor.
type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Role           Role       `gorm:"type:varchar(20);not null;index" json:"role"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password       string     `gorm:"type:text;not null" json:"-"`
	Name           string     `gorm:"type:varchar(255);not null" json:"name"`
	Specialization string     `gorm:"type:varchar(100)" json:"specialization,omitempty"`
	DateOfBirth    *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Phone          string     `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Address        string     `gorm:"type:text" json:"address,omitempty"`
	Avatar         string     `gorm:"type:text" json:"avatar,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}

func (u *User) IsPatient() bool {
	return u.Role == RolePatient
}

// NotificationPreference holds the per-user toggles shown on the profile page.
type NotificationPreference struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Appointments bool      `gorm:"not null" json:"appointments"`
	Medication   bool      `gorm:"not null" json:"medication"`
	Results      bool      `gorm:"not null" json:"results"`
	Marketing    bool      `gorm:"not null" json:"marketing"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (NotificationPreference) TableName() string {
	return "notification_preferences"
}

// DefaultNotificationPreference enables appointment and medication reminders only.
func DefaultNotificationPreference(userID uuid.UUID) *NotificationPreference {
	return &NotificationPreference{
		UserID:       userID,
		Appointments: true,
		Medication:   true,
	}
}
