package repository

import (
	"context"
	"time"

	"github.com/awright222/fitiva/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	SetTrainerForClient(ctx context.Context, clientID, trainerID primitive.ObjectID) error
}

// SessionRepository defines the interface for interacting with session data.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Session, error)
	GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Session, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.Session, error)
	// Update persists the session's mutable fields and stamps a fresh
	// UpdatedAt on the passed struct so callers can return it as-is.
	Update(ctx context.Context, session *domain.Session) error
	// ExistsActiveForSlot reports whether any non-canceled session already
	// claims the given time slot. Used to reject double-booking.
	ExistsActiveForSlot(ctx context.Context, slotID primitive.ObjectID) (bool, error)
}

// TrainerProfileRepository defines the interface for the trainer directory.
type TrainerProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.TrainerProfile) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainerProfile, error)
	List(ctx context.Context) ([]domain.TrainerProfile, error)
}

// TimeSlotRepository defines the interface for trainer availability slots.
type TimeSlotRepository interface {
	Create(ctx context.Context, slot *domain.TimeSlot) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TimeSlot, error)
	GetByTrainerAndDate(ctx context.Context, trainerID primitive.ObjectID, date string) ([]domain.TimeSlot, error)
	SetAvailable(ctx context.Context, id primitive.ObjectID, available bool) error
}

// ExerciseRepository defines the interface for the exercise library.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id primitive.ObjectID, trainerID primitive.ObjectID) error // Ensure trainer owns the exercise
}

// ProgramRepository defines the interface for program templates.
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error)
	GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Program, error)
}

// ClientProgramRepository defines the interface for assigned program instances.
type ClientProgramRepository interface {
	Create(ctx context.Context, cp *domain.ClientProgram) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ClientProgram, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.ClientProgram, error)
	// UpdateProgress persists current day and completion percentage.
	UpdateProgress(ctx context.Context, id primitive.ObjectID, currentDay, completionPercentage int) error
}

// ExerciseLogRepository defines the interface for exercise completion events.
// Append-only: logs are never updated or deleted.
type ExerciseLogRepository interface {
	Create(ctx context.Context, log *domain.ExerciseLog) (primitive.ObjectID, error)
	GetByClientProgramID(ctx context.Context, clientProgramID primitive.ObjectID) ([]domain.ExerciseLog, error)
	// CountForExerciseSince counts logs for one program-exercise at or after
	// the given instant. Drives the completed-today display check.
	CountForExerciseSince(ctx context.Context, clientProgramID, programExerciseID primitive.ObjectID, since time.Time) (int64, error)
}

// ClientProfileRepository defines the interface for client profile data.
type ClientProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.ClientProfile) error
	GetByClientID(ctx context.Context, clientID primitive.ObjectID) (*domain.ClientProfile, error)
}

// MessageRepository defines the interface for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) (primitive.ObjectID, error)
	GetConversation(ctx context.Context, a, b primitive.ObjectID) ([]domain.Message, error)
	MarkConversationRead(ctx context.Context, recipientID, senderID primitive.ObjectID, at time.Time) error
}
