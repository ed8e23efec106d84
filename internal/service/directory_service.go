package service

import (
	"context"
	"errors"
	"time"

	"github.com/awright222/fitiva/internal/domain"
	"github.com/awright222/fitiva/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTrainerNotFound = errors.New("trainer not found")
	ErrInvalidTimeSlot = errors.New("invalid time slot")
	ErrClientNotFound  = errors.New("client not found")
)

type DirectoryService interface {
	// ListTrainers returns every directory entry, for the client browse screen.
	ListTrainers(ctx context.Context) ([]domain.TrainerProfile, error)
	GetTrainer(ctx context.Context, trainerID primitive.ObjectID) (*domain.TrainerProfile, error)
	UpsertTrainerProfile(ctx context.Context, profile *domain.TrainerProfile) (*domain.TrainerProfile, error)
	// GetAvailableSlots returns only the open slots for a trainer on a date.
	GetAvailableSlots(ctx context.Context, trainerID primitive.ObjectID, date string) ([]domain.TimeSlot, error)
	AddTimeSlot(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error)
	// AssignClientToTrainer records the coaching relationship on the client's
	// account. The trainer must have a published directory entry.
	AssignClientToTrainer(ctx context.Context, trainerID, clientID primitive.ObjectID) error
}

// directoryService implements the DirectoryService interface.
type directoryService struct {
	profileRepo repository.TrainerProfileRepository
	slotRepo    repository.TimeSlotRepository
	userRepo    repository.UserRepository
}

// NewDirectoryService creates a new instance of directoryService.
func NewDirectoryService(profileRepo repository.TrainerProfileRepository, slotRepo repository.TimeSlotRepository, userRepo repository.UserRepository) DirectoryService {
	return &directoryService{profileRepo: profileRepo, slotRepo: slotRepo, userRepo: userRepo}
}

func (s *directoryService) ListTrainers(ctx context.Context) ([]domain.TrainerProfile, error) {
	return s.profileRepo.List(ctx)
}

func (s *directoryService) GetTrainer(ctx context.Context, trainerID primitive.ObjectID) (*domain.TrainerProfile, error) {
	profile, err := s.profileRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *directoryService) UpsertTrainerProfile(ctx context.Context, profile *domain.TrainerProfile) (*domain.TrainerProfile, error) {
	if profile.ID == primitive.NilObjectID {
		return nil, errors.New("trainer ID is required")
	}
	if profile.Name == "" {
		return nil, errors.New("trainer name is required")
	}
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByID(ctx, profile.ID)
}

func (s *directoryService) GetAvailableSlots(ctx context.Context, trainerID primitive.ObjectID, date string) ([]domain.TimeSlot, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, errors.New("date must be in YYYY-MM-DD format")
	}

	slots, err := s.slotRepo.GetByTrainerAndDate(ctx, trainerID, date)
	if err != nil {
		return nil, err
	}
	available := make([]domain.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.Available {
			available = append(available, slot)
		}
	}
	return available, nil
}

func (s *directoryService) AddTimeSlot(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	if slot.TrainerID == primitive.NilObjectID {
		return nil, errors.New("trainer ID is required")
	}
	if _, err := slot.StartsAt(); err != nil {
		return nil, ErrInvalidTimeSlot
	}
	if slot.DurationMinutes() <= 0 {
		return nil, ErrInvalidTimeSlot
	}

	slot.Available = true
	slotID, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		return nil, err
	}
	slot.ID = slotID
	return slot, nil
}

func (s *directoryService) AssignClientToTrainer(ctx context.Context, trainerID, clientID primitive.ObjectID) error {
	if trainerID == primitive.NilObjectID || clientID == primitive.NilObjectID {
		return errors.New("trainer ID and client ID are required")
	}

	if _, err := s.profileRepo.GetByID(ctx, trainerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainerNotFound
		}
		return err
	}

	// The repository filters on the client role, so a missing user and a
	// non-client user both surface as not found.
	if err := s.userRepo.SetTrainerForClient(ctx, clientID, trainerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	return nil
}
