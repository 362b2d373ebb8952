package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required,uuid"`
	Content    string `json:"content" validate:"required,notblank,max=2000"`
}

// Response DTOs

type MessageResponse struct {
	ID         uuid.UUID `json:"id"`
	SenderID   uuid.UUID `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	Time       string    `json:"time"`
	DayLabel   string    `json:"day_label"`
	Read       bool      `json:"read"`
	Own        bool      `json:"own"`
}

type ContactResponse struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Role           string     `json:"role"`
	Specialization string     `json:"specialization,omitempty"`
	Avatar         string     `json:"avatar,omitempty"`
	UnreadCount    int        `json:"unread_count"`
	LastMessage    string     `json:"last_message,omitempty"`
	LastMessageAt  *time.Time `json:"last_message_at,omitempty"`
}

type ContactListResponse struct {
	Contacts []ContactResponse `json:"contacts"`
	Total    int               `json:"total"`
}

type ConversationResponse struct {
	Contact  ContactResponse   `json:"contact"`
	Messages []MessageResponse `json:"messages"`
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

// StreamEvent is one frame of the message WebSocket.
type StreamEvent struct {
	Type     string           `json:"type"`
	Message  *MessageResponse `json:"message,omitempty"`
	ReaderID *uuid.UUID       `json:"reader_id,omitempty"`
}
