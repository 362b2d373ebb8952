package handler

import (
	"net/http"
	"time"

	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/usecase"
	"go-healthcare-portal/pkg/metrics"
	"go-healthcare-portal/pkg/response"
	"go-healthcare-portal/pkg/validator"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = (streamPongWait * 9) / 10
)

type MessageHandler struct {
	messageUsecase usecase.MessageUsecase
	validator      *validator.CustomValidator
	upgrader       websocket.Upgrader
	metrics        *metrics.Metrics
	log            *logrus.Logger
}

func NewMessageHandler(
	messageUsecase usecase.MessageUsecase,
	validator *validator.CustomValidator,
	m *metrics.Metrics,
	log *logrus.Logger,
) *MessageHandler {
	return &MessageHandler{
		messageUsecase: messageUsecase,
		validator:      validator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origins are enforced by the CORS settings and the token.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		metrics: m,
		log:     log,
	}
}

func (h *MessageHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrContactNotFound:
		response.NotFound(w, "Contact not found")
	case usecase.ErrInvalidRecipient:
		response.BadRequest(w, "Messages can only be exchanged between a patient and a doctor")
	case usecase.ErrEmptyMessage:
		response.BadRequest(w, "Message content is required")
	default:
		response.InternalServerError(w, fallback)
	}
}

func (h *MessageHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	contacts, err := h.messageUsecase.Contacts(r.Context(), actor)
	if err != nil {
		h.writeError(w, err, "Failed to get contacts")
		return
	}

	response.Success(w, http.StatusOK, "Contacts retrieved successfully", contacts)
}

func (h *MessageHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}
	otherID, ok := pathUUID(w, r, "userId", "user ID")
	if !ok {
		return
	}

	conversation, err := h.messageUsecase.Conversation(r.Context(), actor, otherID)
	if err != nil {
		h.writeError(w, err, "Failed to get conversation")
		return
	}

	response.Success(w, http.StatusOK, "Conversation retrieved successfully", conversation)
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	message, err := h.messageUsecase.Send(r.Context(), actor, &req)
	if err != nil {
		h.writeError(w, err, "Failed to send message")
		return
	}

	response.Success(w, http.StatusCreated, "Message sent successfully", message)
}

func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}
	otherID, ok := pathUUID(w, r, "userId", "user ID")
	if !ok {
		return
	}

	result, err := h.messageUsecase.MarkConversationRead(r.Context(), actor, otherID)
	if err != nil {
		h.writeError(w, err, "Failed to mark conversation as read")
		return
	}

	response.Success(w, http.StatusOK, "Conversation marked as read", result)
}

// Stream upgrades to a WebSocket and pushes every message the user sends or
// receives, auto replies included, plus read receipts.
func (h *MessageHandler) Stream(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		h.log.Warnf("Failed to upgrade message stream: %+v", err)
		return
	}
	defer conn.Close()

	sub := h.messageUsecase.Subscribe(actor)
	defer h.messageUsecase.Unsubscribe(sub)

	h.metrics.StreamOpened()
	defer h.metrics.StreamClosed()

	// The client never sends anything we use; reading only detects close and
	// handles pongs.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(streamPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case event, ok := <-sub.Events():
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(streamWriteWait))
				return
			}
			frame := h.messageUsecase.StreamEvent(r.Context(), actor.ID, event)
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				return
			}
		}
	}
}
