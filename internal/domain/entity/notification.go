package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeMedication  NotificationType = "medication"
	NotificationTypeAppointment NotificationType = "appointment"
	NotificationTypeAlert       NotificationType = "alert"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

type Notification struct {
	ID        uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      NotificationType     `gorm:"type:varchar(20);not null;index" json:"type"`
	Title     string               `gorm:"type:varchar(255);not null" json:"title"`
	Message   string               `gorm:"type:text;not null" json:"message"`
	Timestamp time.Time            `gorm:"not null;index" json:"timestamp"`
	Read      bool                 `gorm:"not null" json:"read"`
	Priority  NotificationPriority `gorm:"type:varchar(10);not null" json:"priority"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) MarkRead() {
	n.Read = true
}

// NotificationFilter mirrors the tabs of the notification list.
type NotificationFilter string

const (
	NotificationFilterAll         NotificationFilter = "all"
	NotificationFilterUnread      NotificationFilter = "unread"
	NotificationFilterMedication  NotificationFilter = "medication"
	NotificationFilterAppointment NotificationFilter = "appointment"
	NotificationFilterAlert       NotificationFilter = "alert"
)

func (f NotificationFilter) IsValid() bool {
	switch f {
	case NotificationFilterAll, NotificationFilterUnread, NotificationFilterMedication,
		NotificationFilterAppointment, NotificationFilterAlert:
		return true
	}
	return false
}

func (f NotificationFilter) Matches(n *Notification) bool {
	switch f {
	case "", NotificationFilterAll:
		return true
	case NotificationFilterUnread:
		return !n.Read
	default:
		return string(n.Type) == string(f)
	}
}
