// Package memory provides map-backed implementations of the repository
// interfaces. They serialize access with a mutex and are used by service
// tests in place of MongoDB.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/awright222/fitiva/internal/domain"
	"github.com/awright222/fitiva/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionRepository is an in-memory repository.SessionRepository.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[primitive.ObjectID]domain.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[primitive.ObjectID]domain.Session)}
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now
	if session.Status == "" {
		session.Status = domain.SessionPending
	}
	r.sessions[session.ID] = *session
	return session.ID, nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &session, nil
}

func (r *SessionRepository) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Session
	for _, s := range r.sessions {
		if s.TrainerID == trainerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *SessionRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Session
	for _, s := range r.sessions {
		if s.ClientID == clientID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *SessionRepository) Update(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.ID]; !ok {
		return repository.ErrNotFound
	}
	session.UpdatedAt = time.Now().UTC()
	r.sessions[session.ID] = *session
	return nil
}

func (r *SessionRepository) ExistsActiveForSlot(ctx context.Context, slotID primitive.ObjectID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sessions {
		if s.SlotID == slotID && s.Status != domain.SessionCanceled {
			return true, nil
		}
	}
	return false, nil
}
