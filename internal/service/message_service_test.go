package service

import (
	"context"
	"errors"
	"testing"

	"github.com/awright222/fitiva/internal/domain"
	"github.com/awright222/fitiva/internal/repository/memory"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newMessageFixture(t *testing.T) (primitive.ObjectID, primitive.ObjectID, MessageService) {
	t.Helper()
	userRepo := memory.NewUserRepository()

	trainerID, err := userRepo.Create(context.Background(), &domain.User{
		Name: "Coach", Email: "coach@example.com", PasswordHash: "x", Role: domain.RoleTrainer,
	})
	if err != nil {
		t.Fatalf("Create(trainer) error = %v", err)
	}
	clientID, err := userRepo.Create(context.Background(), &domain.User{
		Name: "Dana", Email: "dana@example.com", PasswordHash: "x", Role: domain.RoleClient,
	})
	if err != nil {
		t.Fatalf("Create(client) error = %v", err)
	}
	return trainerID, clientID, NewMessageService(memory.NewMessageRepository(), userRepo)
}

func TestSendMessageValidation(t *testing.T) {
	trainerID, clientID, svc := newMessageFixture(t)

	tests := []struct {
		name      string
		sender    primitive.ObjectID
		recipient primitive.ObjectID
		body      string
		wantErr   error
	}{
		{"to self", clientID, clientID, "hello me", ErrMessageToSelf},
		{"blank body", clientID, trainerID, "   \n\t", ErrEmptyMessage},
		{"unknown recipient", clientID, primitive.NewObjectID(), "hello?", ErrRecipientNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.SendMessage(context.Background(), tt.sender, tt.recipient, tt.body); !errors.Is(err, tt.wantErr) {
				t.Errorf("SendMessage() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSendMessageTrimsBody(t *testing.T) {
	trainerID, clientID, svc := newMessageFixture(t)

	msg, err := svc.SendMessage(context.Background(), clientID, trainerID, "  how was the session?  ")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if msg.Body != "how was the session?" {
		t.Errorf("Body = %q, want the trimmed text", msg.Body)
	}
	if msg.ReadAt != nil {
		t.Error("new message already marked read")
	}
}

func TestMarkConversationRead(t *testing.T) {
	trainerID, clientID, svc := newMessageFixture(t)
	ctx := context.Background()

	if _, err := svc.SendMessage(ctx, trainerID, clientID, "see you at 9"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if _, err := svc.SendMessage(ctx, clientID, trainerID, "on my way"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	// The client opens the thread: only the trainer's message to them is stamped.
	if err := svc.MarkConversationRead(ctx, clientID, trainerID); err != nil {
		t.Fatalf("MarkConversationRead() error = %v", err)
	}

	conv, err := svc.GetConversation(ctx, clientID, trainerID)
	if err != nil {
		t.Fatalf("GetConversation() error = %v", err)
	}
	if len(conv) != 2 {
		t.Fatalf("len(conversation) = %d, want 2", len(conv))
	}
	for _, m := range conv {
		switch m.RecipientID {
		case clientID:
			if m.ReadAt == nil {
				t.Error("message to the client still unread after MarkConversationRead")
			}
		case trainerID:
			if m.ReadAt != nil {
				t.Error("message to the trainer marked read by the client")
			}
		}
	}
}
