package dto

import (
	"time"

	"github.com/google/uuid"
)

type NotificationListQuery struct {
	Filter string `validate:"omitempty,oneof=all unread medication appointment alert"`
	Page   int    `validate:"gte=1,lte=100000"`
	Limit  int    `validate:"gte=1,lte=100"`
}

type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	TimeAgo   string    `json:"time_ago"`
	Read      bool      `json:"read"`
	Priority  string    `json:"priority"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int64                  `json:"total"`
	UnreadCount   int64                  `json:"unread_count"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
