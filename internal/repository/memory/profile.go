package memory

import (
	"context"
	"sync"
	"time"

	"github.com/awright222/fitiva/internal/domain"
	"github.com/awright222/fitiva/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClientProfileRepository is an in-memory repository.ClientProfileRepository.
type ClientProfileRepository struct {
	mu       sync.RWMutex
	profiles map[primitive.ObjectID]domain.ClientProfile // keyed by clientId
}

func NewClientProfileRepository() *ClientProfileRepository {
	return &ClientProfileRepository{profiles: make(map[primitive.ObjectID]domain.ClientProfile)}
}

func (r *ClientProfileRepository) Upsert(ctx context.Context, profile *domain.ClientProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := r.profiles[profile.ClientID]; ok {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.ID = primitive.NewObjectID()
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	r.profiles[profile.ClientID] = *profile
	return nil
}

func (r *ClientProfileRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) (*domain.ClientProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[clientID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &profile, nil
}

// MessageRepository is an in-memory repository.MessageRepository.
type MessageRepository struct {
	mu       sync.RWMutex
	messages []domain.Message
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg.ID = primitive.NewObjectID()
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now().UTC()
	}
	r.messages = append(r.messages, *msg)
	return msg.ID, nil
}

func (r *MessageRepository) GetConversation(ctx context.Context, a, b primitive.ObjectID) ([]domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Message
	for _, m := range r.messages {
		if (m.SenderID == a && m.RecipientID == b) || (m.SenderID == b && m.RecipientID == a) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MessageRepository) MarkConversationRead(ctx context.Context, recipientID, senderID primitive.ObjectID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.messages {
		m := &r.messages[i]
		if m.RecipientID == recipientID && m.SenderID == senderID && m.ReadAt == nil {
			t := at
			m.ReadAt = &t
		}
	}
	return nil
}
