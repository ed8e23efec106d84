package service

import (
	"context"
	"errors"

	"github.com/awright222/fitiva/internal/domain"
	"github.com/awright222/fitiva/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrProfileNotFound = errors.New("client profile not found")

type ProfileService interface {
	// SaveProfile upserts the client's profile and stores the recalculated
	// completion percentage alongside it.
	SaveProfile(ctx context.Context, profile *domain.ClientProfile) (*domain.ClientProfile, error)
	GetProfile(ctx context.Context, clientID primitive.ObjectID) (*domain.ClientProfile, error)
	GetProfileCompletion(ctx context.Context, clientID primitive.ObjectID) (int, error)
}

// profileService implements the ProfileService interface.
type profileService struct {
	profileRepo repository.ClientProfileRepository
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(profileRepo repository.ClientProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) SaveProfile(ctx context.Context, profile *domain.ClientProfile) (*domain.ClientProfile, error) {
	if profile.ClientID == primitive.NilObjectID {
		return nil, errors.New("client ID is required")
	}

	profile.CompletionPercentage = profile.CalculateCompletion()
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByClientID(ctx, profile.ClientID)
}

func (s *profileService) GetProfile(ctx context.Context, clientID primitive.ObjectID) (*domain.ClientProfile, error) {
	profile, err := s.profileRepo.GetByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// GetProfileCompletion returns the live score. A client with no saved profile
// scores 0 rather than erroring; the onboarding screen relies on that.
func (s *profileService) GetProfileCompletion(ctx context.Context, clientID primitive.ObjectID) (int, error) {
	profile, err := s.profileRepo.GetByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return profile.CalculateCompletion(), nil
}
