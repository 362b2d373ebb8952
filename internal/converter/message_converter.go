package converter

import (
	"time"

	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
)

// DayLabel is the date separator shown above a group of chat messages.
func DayLabel(ts, now time.Time) string {
	day := entity.TruncateDay(ts)
	today := entity.TruncateDay(now)

	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return day.Format(entity.DateLayout)
	}
}

func MessageToResponse(m *entity.Message, viewerID uuid.UUID, senderName string, now time.Time) dto.MessageResponse {
	return dto.MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		SenderName: senderName,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		Timestamp:  m.Timestamp,
		Time:       m.Timestamp.UTC().Format(entity.TimeLayout),
		DayLabel:   DayLabel(m.Timestamp, now),
		Read:       m.Read,
		Own:        m.SenderID == viewerID,
	}
}

func MessagesToResponses(messages []entity.Message, viewerID uuid.UUID, names map[uuid.UUID]string, now time.Time) []dto.MessageResponse {
	responses := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		responses[i] = MessageToResponse(&messages[i], viewerID, names[messages[i].SenderID], now)
	}
	return responses
}

func ContactToResponse(user *entity.User, unread int, last *entity.Message) dto.ContactResponse {
	contact := dto.ContactResponse{
		ID:             user.ID,
		Name:           user.Name,
		Role:           string(user.Role),
		Specialization: user.Specialization,
		Avatar:         user.Avatar,
		UnreadCount:    unread,
	}
	if last != nil {
		ts := last.Timestamp
		contact.LastMessage = last.Content
		contact.LastMessageAt = &ts
	}
	return contact
}
