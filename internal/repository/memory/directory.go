package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/awright222/fitiva/internal/domain"
	"github.com/awright222/fitiva/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerProfileRepository is an in-memory repository.TrainerProfileRepository.
type TrainerProfileRepository struct {
	mu       sync.RWMutex
	profiles map[primitive.ObjectID]domain.TrainerProfile
}

func NewTrainerProfileRepository() *TrainerProfileRepository {
	return &TrainerProfileRepository{profiles: make(map[primitive.ObjectID]domain.TrainerProfile)}
}

func (r *TrainerProfileRepository) Upsert(ctx context.Context, profile *domain.TrainerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := r.profiles[profile.ID]; ok {
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	r.profiles[profile.ID] = *profile
	return nil
}

func (r *TrainerProfileRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainerProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &profile, nil
}

func (r *TrainerProfileRepository) List(ctx context.Context) ([]domain.TrainerProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.TrainerProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// TimeSlotRepository is an in-memory repository.TimeSlotRepository.
type TimeSlotRepository struct {
	mu    sync.RWMutex
	slots map[primitive.ObjectID]domain.TimeSlot
}

func NewTimeSlotRepository() *TimeSlotRepository {
	return &TimeSlotRepository{slots: make(map[primitive.ObjectID]domain.TimeSlot)}
}

func (r *TimeSlotRepository) Create(ctx context.Context, slot *domain.TimeSlot) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot.ID = primitive.NewObjectID()
	slot.CreatedAt = time.Now().UTC()
	r.slots[slot.ID] = *slot
	return slot.ID, nil
}

func (r *TimeSlotRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TimeSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slot, ok := r.slots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &slot, nil
}

func (r *TimeSlotRepository) GetByTrainerAndDate(ctx context.Context, trainerID primitive.ObjectID, date string) ([]domain.TimeSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.TimeSlot
	for _, s := range r.slots {
		if s.TrainerID == trainerID && s.Date == date {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (r *TimeSlotRepository) SetAvailable(ctx context.Context, id primitive.ObjectID, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[id]
	if !ok {
		return repository.ErrNotFound
	}
	slot.Available = available
	r.slots[id] = slot
	return nil
}

// UserRepository is an in-memory repository.UserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[primitive.ObjectID]domain.User)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.RepositoryError("user with this email already exists")
		}
	}
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *UserRepository) SetTrainerForClient(ctx context.Context, clientID, trainerID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[clientID]
	if !ok || user.Role != domain.RoleClient {
		return repository.ErrNotFound
	}
	user.TrainerID = &trainerID
	user.UpdatedAt = time.Now().UTC()
	r.users[clientID] = user
	return nil
}
