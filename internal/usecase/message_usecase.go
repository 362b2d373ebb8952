package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go-healthcare-portal/internal/converter"
	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/domain/repository"
	"go-healthcare-portal/internal/service"
	"go-healthcare-portal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrContactNotFound  = errors.New("contact not found")
	ErrInvalidRecipient = errors.New("messages can only be sent between a patient and a doctor")
	ErrEmptyMessage     = errors.New("message content is required")
)

type MessageUsecase interface {
	Contacts(ctx context.Context, actor entity.Actor) (*dto.ContactListResponse, error)
	Conversation(ctx context.Context, actor entity.Actor, otherID uuid.UUID) (*dto.ConversationResponse, error)
	Send(ctx context.Context, actor entity.Actor, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	MarkConversationRead(ctx context.Context, actor entity.Actor, otherID uuid.UUID) (*dto.MarkReadResponse, error)
	Subscribe(actor entity.Actor) *service.Subscription
	Unsubscribe(sub *service.Subscription)
	StreamEvent(ctx context.Context, viewerID uuid.UUID, event service.ChatEvent) dto.StreamEvent
}

type messageUsecase struct {
	log             *logrus.Logger
	messageRepo     repository.MessageRepository
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
	hub             *service.ChatHub
	autoReplier     *service.AutoReplier
	metrics         *metrics.Metrics
	now             Clock
}

func NewMessageUsecase(
	log *logrus.Logger,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
	hub *service.ChatHub,
	autoReplier *service.AutoReplier,
	m *metrics.Metrics,
) MessageUsecase {
	return &messageUsecase{
		log:             log,
		messageRepo:     messageRepo,
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		hub:             hub,
		autoReplier:     autoReplier,
		metrics:         m,
		now:             systemClock,
	}
}

// Contacts lists every doctor for a patient. A doctor sees the patients they
// share an appointment or a message with.
func (u *messageUsecase) Contacts(ctx context.Context, actor entity.Actor) (*dto.ContactListResponse, error) {
	messages, err := u.messageRepo.FindByParticipant(ctx, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find messages: %+v", err)
		return nil, err
	}

	unread := make(map[uuid.UUID]int)
	last := make(map[uuid.UUID]*entity.Message)
	for i := range messages {
		m := &messages[i]
		other := m.SenderID
		if other == actor.ID {
			other = m.ReceiverID
		}
		if m.ReceiverID == actor.ID && !m.Read {
			unread[other]++
		}
		if prev, ok := last[other]; !ok || !m.Timestamp.Before(prev.Timestamp) {
			last[other] = m
		}
	}

	var users []entity.User
	if actor.IsPatient() {
		users, err = u.userRepo.FindByRole(ctx, entity.RoleDoctor)
		if err != nil {
			u.log.Warnf("Failed to find doctors: %+v", err)
			return nil, err
		}
	} else {
		users, err = u.linkedPatients(ctx, actor.ID, last)
		if err != nil {
			return nil, err
		}
	}

	contacts := make([]dto.ContactResponse, 0, len(users))
	for i := range users {
		if users[i].Role != actor.Role.Counterpart() {
			continue
		}
		contacts = append(contacts, converter.ContactToResponse(&users[i], unread[users[i].ID], last[users[i].ID]))
	}

	return &dto.ContactListResponse{
		Contacts: contacts,
		Total:    len(contacts),
	}, nil
}

func (u *messageUsecase) linkedPatients(ctx context.Context, doctorID uuid.UUID, messaged map[uuid.UUID]*entity.Message) ([]entity.User, error) {
	appointments, err := u.appointmentRepo.Find(ctx, entity.AppointmentFilter{DoctorID: doctorID})
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(appointments)+len(messaged))
	for _, a := range appointments {
		ids = append(ids, a.PatientID)
	}
	for id := range messaged {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	users, err := u.userRepo.FindByIDs(ctx, dedupe(ids))
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (u *messageUsecase) Conversation(ctx context.Context, actor entity.Actor, otherID uuid.UUID) (*dto.ConversationResponse, error) {
	other, err := u.findCounterpart(ctx, actor, otherID)
	if err != nil {
		return nil, err
	}

	messages, err := u.messageRepo.FindConversation(ctx, actor.ID, other.ID)
	if err != nil {
		u.log.Warnf("Failed to find conversation: %+v", err)
		return nil, err
	}

	names, err := userNames(ctx, u.userRepo, actor.ID, other.ID)
	if err != nil {
		u.log.Warnf("Failed to resolve names: %+v", err)
		return nil, err
	}

	unread := 0
	var last *entity.Message
	for i := range messages {
		if messages[i].ReceiverID == actor.ID && !messages[i].Read {
			unread++
		}
		last = &messages[i]
	}

	return &dto.ConversationResponse{
		Contact:  converter.ContactToResponse(other, unread, last),
		Messages: converter.MessagesToResponses(messages, actor.ID, names, u.now()),
	}, nil
}

func (u *messageUsecase) Send(ctx context.Context, actor entity.Actor, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		return nil, ErrContactNotFound
	}
	receiver, err := u.findCounterpart(ctx, actor, receiverID)
	if err != nil {
		return nil, err
	}

	message := &entity.Message{
		ID:         uuid.New(),
		SenderID:   actor.ID,
		ReceiverID: receiver.ID,
		Content:    content,
		Timestamp:  u.now(),
	}
	if err := u.messageRepo.Create(ctx, message); err != nil {
		u.log.Warnf("Failed to create message: %+v", err)
		return nil, err
	}

	u.metrics.MessageSent()
	u.hub.PublishMessage(*message)
	u.autoReplier.Schedule(receiver.ID, actor.ID)

	names, err := userNames(ctx, u.userRepo, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to resolve names: %+v", err)
		return nil, err
	}

	res := converter.MessageToResponse(message, actor.ID, names[actor.ID], u.now())
	return &res, nil
}

func (u *messageUsecase) MarkConversationRead(ctx context.Context, actor entity.Actor, otherID uuid.UUID) (*dto.MarkReadResponse, error) {
	other, err := u.findCounterpart(ctx, actor, otherID)
	if err != nil {
		return nil, err
	}

	updated, err := u.messageRepo.MarkConversationRead(ctx, actor.ID, other.ID)
	if err != nil {
		u.log.Warnf("Failed to mark conversation read: %+v", err)
		return nil, err
	}

	if updated > 0 {
		u.hub.PublishRead(actor.ID, other.ID)
	}

	return &dto.MarkReadResponse{Updated: updated}, nil
}

func (u *messageUsecase) Subscribe(actor entity.Actor) *service.Subscription {
	return u.hub.Subscribe(actor.ID)
}

func (u *messageUsecase) Unsubscribe(sub *service.Subscription) {
	u.hub.Unsubscribe(sub)
}

// StreamEvent renders a hub event for one subscriber.
func (u *messageUsecase) StreamEvent(ctx context.Context, viewerID uuid.UUID, event service.ChatEvent) dto.StreamEvent {
	frame := dto.StreamEvent{Type: string(event.Type)}

	switch event.Type {
	case service.ChatEventMessage:
		senderName := ""
		if names, err := userNames(ctx, u.userRepo, event.Message.SenderID); err == nil {
			senderName = names[event.Message.SenderID]
		} else {
			u.log.Warnf("Failed to resolve sender name: %+v", err)
		}
		msg := converter.MessageToResponse(&event.Message, viewerID, senderName, u.now())
		frame.Message = &msg
	case service.ChatEventRead:
		readerID := event.ReaderID
		frame.ReaderID = &readerID
	}

	return frame
}

// findCounterpart loads other and checks it holds the opposite role.
func (u *messageUsecase) findCounterpart(ctx context.Context, actor entity.Actor, otherID uuid.UUID) (*entity.User, error) {
	other, err := u.userRepo.FindByID(ctx, otherID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if other == nil {
		return nil, ErrContactNotFound
	}
	if other.Role != actor.Role.Counterpart() {
		return nil, ErrInvalidRecipient
	}
	return other, nil
}
