package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/awright222/fitiva/internal/domain"
	"github.com/awright222/fitiva/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProgramNotFound        = errors.New("program not found")
	ErrProgramAccessDenied    = errors.New("access denied to this program")
	ErrClientProgramNotFound  = errors.New("client program not found")
	ErrUnknownProgramExercise = errors.New("program exercise does not belong to this program")
)

// ExerciseCompletionInput is what the client submits when logging a set.
type ExerciseCompletionInput struct {
	ProgramExerciseID primitive.ObjectID
	Sets              int
	Reps              int
	Notes             string
}

// ClientProgramDetails combines a client-program with its resolved template
// for day-by-day traversal in the client app.
type ClientProgramDetails struct {
	domain.ClientProgram
	Program *domain.Program `json:"program"`
}

type ProgramService interface {
	CreateProgram(ctx context.Context, program *domain.Program) (*domain.Program, error)
	GetProgramsByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Program, error)
	// AssignProgram instantiates a template for a client, starting at day 1.
	AssignProgram(ctx context.Context, trainerID, clientID, programID primitive.ObjectID) (*domain.ClientProgram, error)
	GetClientProgram(ctx context.Context, clientProgramID primitive.ObjectID) (*ClientProgramDetails, error)
	GetClientPrograms(ctx context.Context, clientID primitive.ObjectID) ([]domain.ClientProgram, error)
	// LogExerciseCompletion appends a log row and persists the recalculated
	// completion percentage onto the client-program.
	LogExerciseCompletion(ctx context.Context, clientProgramID primitive.ObjectID, input ExerciseCompletionInput) (*domain.ExerciseLog, int, error)
	IsExerciseCompletedToday(ctx context.Context, clientProgramID, programExerciseID primitive.ObjectID) (bool, error)
	CalculateProgramCompletion(ctx context.Context, clientProgramID primitive.ObjectID) (int, error)
	// AdvanceDay moves current_day forward, capped at the last program day.
	AdvanceDay(ctx context.Context, clientProgramID primitive.ObjectID) (*domain.ClientProgram, error)
}

// programService implements the ProgramService interface.
type programService struct {
	programRepo       repository.ProgramRepository
	clientProgramRepo repository.ClientProgramRepository
	logRepo           repository.ExerciseLogRepository
}

// NewProgramService creates a new instance of programService.
func NewProgramService(
	programRepo repository.ProgramRepository,
	clientProgramRepo repository.ClientProgramRepository,
	logRepo repository.ExerciseLogRepository,
) ProgramService {
	return &programService{
		programRepo:       programRepo,
		clientProgramRepo: clientProgramRepo,
		logRepo:           logRepo,
	}
}

// CreateProgram stores a new program template.
func (s *programService) CreateProgram(ctx context.Context, program *domain.Program) (*domain.Program, error) {
	if program.Name == "" || program.TrainerID == primitive.NilObjectID {
		return nil, errors.New("program name and trainer ID are required")
	}
	programID, err := s.programRepo.Create(ctx, program)
	if err != nil {
		return nil, err
	}
	return s.programRepo.GetByID(ctx, programID)
}

// GetProgramsByTrainer lists a trainer's templates.
func (s *programService) GetProgramsByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Program, error) {
	if trainerID == primitive.NilObjectID {
		return nil, errors.New("trainer ID is required")
	}
	return s.programRepo.GetByTrainerID(ctx, trainerID)
}

// AssignProgram creates a ClientProgram instance of one of the trainer's
// templates.
func (s *programService) AssignProgram(ctx context.Context, trainerID, clientID, programID primitive.ObjectID) (*domain.ClientProgram, error) {
	if trainerID == primitive.NilObjectID || clientID == primitive.NilObjectID || programID == primitive.NilObjectID {
		return nil, errors.New("trainer ID, client ID, and program ID are required")
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

	cp := &domain.ClientProgram{
		ClientID:   clientID,
		ProgramID:  programID,
		TrainerID:  trainerID,
		CurrentDay: 1,
	}
	cpID, err := s.clientProgramRepo.Create(ctx, cp)
	if err != nil {
		return nil, err
	}
	cp.ID = cpID
	return cp, nil
}

// GetClientProgram resolves a client-program together with its template.
func (s *programService) GetClientProgram(ctx context.Context, clientProgramID primitive.ObjectID) (*ClientProgramDetails, error) {
	cp, err := s.clientProgramRepo.GetByID(ctx, clientProgramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientProgramNotFound
		}
		return nil, err
	}

	program, err := s.programRepo.GetByID(ctx, cp.ProgramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}

	return &ClientProgramDetails{ClientProgram: *cp, Program: program}, nil
}

// GetClientPrograms lists all program instances assigned to a client.
func (s *programService) GetClientPrograms(ctx context.Context, clientID primitive.ObjectID) ([]domain.ClientProgram, error) {
	if clientID == primitive.NilObjectID {
		return nil, errors.New("client ID is required")
	}
	return s.clientProgramRepo.GetByClientID(ctx, clientID)
}

// LogExerciseCompletion writes one completion event and persists the updated
// completion percentage. The write path deliberately allows duplicate
// same-day logs; distinct-exercise counting keeps the percentage honest.
func (s *programService) LogExerciseCompletion(ctx context.Context, clientProgramID primitive.ObjectID, input ExerciseCompletionInput) (*domain.ExerciseLog, int, error) {
	if input.ProgramExerciseID == primitive.NilObjectID {
		return nil, 0, errors.New("program exercise ID is required")
	}

	cp, err := s.clientProgramRepo.GetByID(ctx, clientProgramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, 0, ErrClientProgramNotFound
		}
		return nil, 0, err
	}

	program, err := s.programRepo.GetByID(ctx, cp.ProgramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, 0, ErrProgramNotFound
		}
		return nil, 0, err
	}
	if !programContainsExercise(program, input.ProgramExerciseID) {
		return nil, 0, ErrUnknownProgramExercise
	}

	log := &domain.ExerciseLog{
		ClientProgramID:   clientProgramID,
		ProgramExerciseID: input.ProgramExerciseID,
		Sets:              input.Sets,
		Reps:              input.Reps,
		Notes:             input.Notes,
		// ID, CompletedAt set by the repository
	}
	logID, err := s.logRepo.Create(ctx, log)
	if err != nil {
		return nil, 0, err
	}
	log.ID = logID

	percentage, err := s.completionFor(ctx, program, clientProgramID)
	if err != nil {
		return nil, 0, err
	}
	if err := s.clientProgramRepo.UpdateProgress(ctx, clientProgramID, cp.CurrentDay, percentage); err != nil {
		return nil, 0, err
	}
	return log, percentage, nil
}

// IsExerciseCompletedToday reports whether the exercise has at least one log
// row today (UTC). Display-side check only; it does not gate writes.
func (s *programService) IsExerciseCompletedToday(ctx context.Context, clientProgramID, programExerciseID primitive.ObjectID) (bool, error) {
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	count, err := s.logRepo.CountForExerciseSince(ctx, clientProgramID, programExerciseID, startOfDay)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CalculateProgramCompletion returns the stored-semantics percentage:
// distinct logged program-exercises over total program exercises, 0-100,
// rounded half up. A program with no exercises yields 0.
func (s *programService) CalculateProgramCompletion(ctx context.Context, clientProgramID primitive.ObjectID) (int, error) {
	cp, err := s.clientProgramRepo.GetByID(ctx, clientProgramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrClientProgramNotFound
		}
		return 0, err
	}
	program, err := s.programRepo.GetByID(ctx, cp.ProgramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrProgramNotFound
		}
		return 0, err
	}
	return s.completionFor(ctx, program, clientProgramID)
}

func (s *programService) completionFor(ctx context.Context, program *domain.Program, clientProgramID primitive.ObjectID) (int, error) {
	total := program.TotalExercises()
	if total == 0 {
		return 0, nil
	}

	logs, err := s.logRepo.GetByClientProgramID(ctx, clientProgramID)
	if err != nil {
		return 0, err
	}
	distinct := make(map[primitive.ObjectID]struct{}, len(logs))
	for _, l := range logs {
		distinct[l.ProgramExerciseID] = struct{}{}
	}

	return int(math.Round(float64(len(distinct)) / float64(total) * 100)), nil
}

// AdvanceDay moves the client to the next program day.
func (s *programService) AdvanceDay(ctx context.Context, clientProgramID primitive.ObjectID) (*domain.ClientProgram, error) {
	cp, err := s.clientProgramRepo.GetByID(ctx, clientProgramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientProgramNotFound
		}
		return nil, err
	}
	program, err := s.programRepo.GetByID(ctx, cp.ProgramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}

	next := cp.CurrentDay + 1
	if next > len(program.Days) {
		next = len(program.Days) // Already on the last day
	}
	if next < 1 {
		next = 1
	}
	if err := s.clientProgramRepo.UpdateProgress(ctx, clientProgramID, next, cp.CompletionPercentage); err != nil {
		return nil, err
	}
	cp.CurrentDay = next
	return cp, nil
}

func programContainsExercise(program *domain.Program, programExerciseID primitive.ObjectID) bool {
	for _, day := range program.Days {
		for _, pe := range day.Exercises {
			if pe.ID == programExerciseID {
				return true
			}
		}
	}
	return false
}
