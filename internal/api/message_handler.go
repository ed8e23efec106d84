package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/awright222/fitiva/internal/domain"
	"github.com/awright222/fitiva/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageHandler holds the message service dependency.
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// --- DTOs ---

type SendMessageRequest struct {
	RecipientID string `json:"recipientId" binding:"required"`
	Body        string `json:"body" binding:"required"`
}

type MessageResponse struct {
	ID          string     `json:"id"`
	SenderID    string     `json:"senderId"`
	RecipientID string     `json:"recipientId"`
	Body        string     `json:"body"`
	SentAt      time.Time  `json:"sentAt"`
	ReadAt      *time.Time `json:"readAt,omitempty"`
}

func MapMessageToResponse(m *domain.Message) MessageResponse {
	if m == nil {
		return MessageResponse{}
	}
	return MessageResponse{
		ID:          m.ID.Hex(),
		SenderID:    m.SenderID.Hex(),
		RecipientID: m.RecipientID.Hex(),
		Body:        m.Body,
		SentAt:      m.SentAt,
		ReadAt:      m.ReadAt,
	}
}

// --- Handler Methods ---

// SendMessage sends a direct message from the authenticated user.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	senderID, ok := getUserObjectID(c)
	if !ok {
		return
	}
	recipientID, err := primitive.ObjectIDFromHex(req.RecipientID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid recipient ID format.")
		return
	}

	msg, err := h.messageService.SendMessage(c.Request.Context(), senderID, recipientID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage),
			errors.Is(err, service.ErrMessageToSelf):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrRecipientNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to send message.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapMessageToResponse(msg))
}

// GetConversation returns the authenticated user's thread with another user,
// oldest first, and marks the inbound half of it read.
func (h *MessageHandler) GetConversation(c *gin.Context) {
	otherID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	userID, ok := getUserObjectID(c)
	if !ok {
		return
	}

	messages, err := h.messageService.GetConversation(c.Request.Context(), userID, otherID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve conversation.")
		return
	}

	// Reading the thread marks incoming messages read. A failure here is
	// logged by the repo layer and does not block the read.
	_ = h.messageService.MarkConversationRead(c.Request.Context(), userID, otherID)

	responses := make([]MessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = MapMessageToResponse(&m)
	}
	c.JSON(http.StatusOK, responses)
}
