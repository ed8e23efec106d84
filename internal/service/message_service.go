package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/awright222/fitiva/internal/domain"
	"github.com/awright222/fitiva/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrEmptyMessage      = errors.New("message body is empty")
	ErrMessageToSelf     = errors.New("cannot message yourself")
	ErrRecipientNotFound = errors.New("recipient not found")
)

type MessageService interface {
	SendMessage(ctx context.Context, senderID, recipientID primitive.ObjectID, body string) (*domain.Message, error)
	GetConversation(ctx context.Context, userID, otherID primitive.ObjectID) ([]domain.Message, error)
	// MarkConversationRead stamps every unread message from otherID to userID.
	MarkConversationRead(ctx context.Context, userID, otherID primitive.ObjectID) error
}

// messageService implements the MessageService interface.
type messageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

// NewMessageService creates a new instance of messageService.
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) MessageService {
	return &messageService{messageRepo: messageRepo, userRepo: userRepo}
}

func (s *messageService) SendMessage(ctx context.Context, senderID, recipientID primitive.ObjectID, body string) (*domain.Message, error) {
	if senderID == primitive.NilObjectID || recipientID == primitive.NilObjectID {
		return nil, errors.New("sender ID and recipient ID are required")
	}
	if senderID == recipientID {
		return nil, ErrMessageToSelf
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}

	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	msg := &domain.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		// ID, SentAt set by repository
	}
	msgID, err := s.messageRepo.Create(ctx, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = msgID
	return msg, nil
}

func (s *messageService) GetConversation(ctx context.Context, userID, otherID primitive.ObjectID) ([]domain.Message, error) {
	if userID == primitive.NilObjectID || otherID == primitive.NilObjectID {
		return nil, errors.New("both participant IDs are required")
	}
	return s.messageRepo.GetConversation(ctx, userID, otherID)
}

func (s *messageService) MarkConversationRead(ctx context.Context, userID, otherID primitive.ObjectID) error {
	if userID == primitive.NilObjectID || otherID == primitive.NilObjectID {
		return errors.New("both participant IDs are required")
	}
	return s.messageRepo.MarkConversationRead(ctx, userID, otherID, time.Now().UTC())
}
