package service

import (
	"context"
	"errors"

	"github.com/awright222/fitiva/internal/domain"
	"github.com/awright222/fitiva/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrMissingSelection      = errors.New("a trainer and a time slot must be selected")
	ErrInvalidSessionMode    = errors.New("invalid session mode")
	ErrVideoLinkRequired     = errors.New("video link is required for virtual sessions")
	ErrSlotNotFound          = errors.New("time slot not found")
	ErrSlotNotOwnedByTrainer = errors.New("time slot does not belong to the selected trainer")
	ErrSlotTaken             = errors.New("time slot is no longer available")
	ErrTerminalStatus        = errors.New("session is in a terminal status and cannot change")
	ErrInvalidTransition     = errors.New("invalid session status transition")
	ErrTransitionDenied      = errors.New("role is not allowed to perform this status change")
	ErrSessionAccessDenied   = errors.New("session does not belong to this user")
	ErrSessionNotEditable    = errors.New("only pending sessions can be edited")
	ErrNotSelfGuided         = errors.New("program assignment applies to self-guided sessions only")
)

// BookingRequest carries everything a client submits when requesting a session.
type BookingRequest struct {
	ClientID  primitive.ObjectID
	TrainerID primitive.ObjectID
	SlotID    primitive.ObjectID
	Mode      domain.SessionMode
	VideoLink string
	Notes     string
}

type SessionService interface {
	CreateSession(ctx context.Context, req BookingRequest) (*domain.Session, error)
	// UpdateSessionStatus applies one state-machine edge on behalf of an
	// actor. A missing session returns (nil, nil): the caller treats it as a
	// no-op, not a hard error.
	UpdateSessionStatus(ctx context.Context, actorID primitive.ObjectID, role domain.Role, sessionID primitive.ObjectID, newStatus domain.SessionStatus) (*domain.Session, error)
	GetSessionsByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Session, error)
	GetSessionsByClient(ctx context.Context, clientID primitive.ObjectID) ([]domain.Session, error)
	UpdateSessionDetails(ctx context.Context, clientID, sessionID primitive.ObjectID, slotID *primitive.ObjectID, videoLink, notes *string) (*domain.Session, error)
	AssignProgramToSession(ctx context.Context, trainerID, sessionID, programID primitive.ObjectID) (*domain.Session, error)
}

// sessionService implements the SessionService interface.
type sessionService struct {
	sessionRepo repository.SessionRepository
	slotRepo    repository.TimeSlotRepository
	programRepo repository.ProgramRepository
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(
	sessionRepo repository.SessionRepository,
	slotRepo repository.TimeSlotRepository,
	programRepo repository.ProgramRepository,
) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		slotRepo:    slotRepo,
		programRepo: programRepo,
	}
}

// CreateSession validates a booking request and creates the session in
// pending status. Validation failures create no partial state.
func (s *sessionService) CreateSession(ctx context.Context, req BookingRequest) (*domain.Session, error) {
	// 1. Required selections
	if req.ClientID == primitive.NilObjectID {
		return nil, errors.New("client ID is required")
	}
	if req.TrainerID == primitive.NilObjectID || req.SlotID == primitive.NilObjectID {
		return nil, ErrMissingSelection
	}

	// 2. Mode-specific rules
	if !domain.ValidMode(req.Mode) {
		return nil, ErrInvalidSessionMode
	}
	if req.Mode == domain.ModeVirtual && req.VideoLink == "" {
		return nil, ErrVideoLinkRequired
	}
	// Self-guided sessions proceed without a program; the trainer assigns
	// one later via AssignProgramToSession.

	// 3. Resolve the slot and reject double-booking
	slot, err := s.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	if slot.TrainerID != req.TrainerID {
		return nil, ErrSlotNotOwnedByTrainer
	}
	if !slot.Available {
		return nil, ErrSlotTaken
	}
	taken, err := s.sessionRepo.ExistsActiveForSlot(ctx, req.SlotID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	scheduledAt, err := slot.StartsAt()
	if err != nil {
		return nil, ErrSlotNotFound
	}

	// 4. Create the session
	session := &domain.Session{
		TrainerID:       req.TrainerID,
		ClientID:        req.ClientID,
		SlotID:          req.SlotID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: slot.DurationMinutes(),
		Status:          domain.SessionPending,
		Mode:            req.Mode,
		VideoLink:       req.VideoLink,
		Notes:           req.Notes,
		// ID, CreatedAt, UpdatedAt set by the repository
	}

	sessionID, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = sessionID

	// Mark the slot claimed so it drops out of availability listings.
	if err := s.slotRepo.SetAvailable(ctx, req.SlotID, false); err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateSessionStatus applies a status transition. Authorization lives here,
// next to the state-machine check, rather than spread over API handlers.
func (s *sessionService) UpdateSessionStatus(ctx context.Context, actorID primitive.ObjectID, role domain.Role, sessionID primitive.ObjectID, newStatus domain.SessionStatus) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil // No-op signal: nothing to update
		}
		return nil, err
	}

	if session.Status.IsTerminal() {
		return nil, ErrTerminalStatus
	}
	if !session.Status.CanTransition(newStatus) {
		return nil, ErrInvalidTransition
	}
	if !domain.RoleCanTransition(role, session.Status, newStatus) {
		return nil, ErrTransitionDenied
	}

	// Ownership: clients act on their own sessions, trainers on theirs.
	// Managers and admins act on any session.
	switch role {
	case domain.RoleClient:
		if session.ClientID != actorID {
			return nil, ErrSessionAccessDenied
		}
	case domain.RoleTrainer:
		if session.TrainerID != actorID {
			return nil, ErrSessionAccessDenied
		}
	}

	session.Status = newStatus
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	// A cancellation frees the slot for rebooking.
	if newStatus == domain.SessionCanceled {
		if err := s.slotRepo.SetAvailable(ctx, session.SlotID, true); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}
	return session, nil
}

// GetSessionsByTrainer retrieves every session for a trainer.
func (s *sessionService) GetSessionsByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Session, error) {
	if trainerID == primitive.NilObjectID {
		return nil, errors.New("trainer ID is required")
	}
	return s.sessionRepo.GetByTrainerID(ctx, trainerID)
}

// GetSessionsByClient retrieves every session for a client.
func (s *sessionService) GetSessionsByClient(ctx context.Context, clientID primitive.ObjectID) ([]domain.Session, error) {
	if clientID == primitive.NilObjectID {
		return nil, errors.New("client ID is required")
	}
	return s.sessionRepo.GetByClientID(ctx, clientID)
}

// UpdateSessionDetails lets the booking client edit a still-pending session:
// move it to another of the trainer's slots, or change the link/notes.
// Nil pointers leave the corresponding field untouched.
func (s *sessionService) UpdateSessionDetails(ctx context.Context, clientID, sessionID primitive.ObjectID, slotID *primitive.ObjectID, videoLink, notes *string) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if session.ClientID != clientID {
		return nil, ErrSessionAccessDenied
	}
	if session.Status != domain.SessionPending {
		return nil, ErrSessionNotEditable
	}

	if slotID != nil && *slotID != session.SlotID {
		slot, err := s.slotRepo.GetByID(ctx, *slotID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrSlotNotFound
			}
			return nil, err
		}
		if slot.TrainerID != session.TrainerID {
			return nil, ErrSlotNotOwnedByTrainer
		}
		if !slot.Available {
			return nil, ErrSlotTaken
		}
		taken, err := s.sessionRepo.ExistsActiveForSlot(ctx, *slotID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSlotTaken
		}
		scheduledAt, err := slot.StartsAt()
		if err != nil {
			return nil, ErrSlotNotFound
		}
		// Free the old slot and claim the new one.
		if err := s.slotRepo.SetAvailable(ctx, session.SlotID, true); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if err := s.slotRepo.SetAvailable(ctx, *slotID, false); err != nil {
			return nil, err
		}
		session.SlotID = *slotID
		session.ScheduledAt = scheduledAt
		session.DurationMinutes = slot.DurationMinutes()
	}
	if videoLink != nil {
		if session.Mode == domain.ModeVirtual && *videoLink == "" {
			return nil, ErrVideoLinkRequired
		}
		session.VideoLink = *videoLink
	}
	if notes != nil {
		session.Notes = *notes
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// AssignProgramToSession attaches one of the trainer's programs to a
// self-guided session that was booked without one.
func (s *sessionService) AssignProgramToSession(ctx context.Context, trainerID, sessionID, programID primitive.ObjectID) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if session.TrainerID != trainerID {
		return nil, ErrSessionAccessDenied
	}
	if session.Mode != domain.ModeSelfGuided {
		return nil, ErrNotSelfGuided
	}

	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if program.TrainerID != trainerID {
		return nil, ErrProgramAccessDenied
	}

	session.ProgramID = &programID
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
