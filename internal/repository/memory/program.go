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

// ExerciseRepository is an in-memory repository.ExerciseRepository.
type ExerciseRepository struct {
	mu        sync.RWMutex
	exercises map[primitive.ObjectID]domain.Exercise
}

func NewExerciseRepository() *ExerciseRepository {
	return &ExerciseRepository{exercises: make(map[primitive.ObjectID]domain.Exercise)}
}

func (r *ExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now
	r.exercises[exercise.ID] = *exercise
	return exercise.ID, nil
}

func (r *ExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exercise, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &exercise, nil
}

func (r *ExerciseRepository) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Exercise
	for _, e := range r.exercises {
		if e.TrainerID == trainerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.exercises[exercise.ID]; !ok {
		return repository.ErrNotFound
	}
	exercise.UpdatedAt = time.Now().UTC()
	r.exercises[exercise.ID] = *exercise
	return nil
}

func (r *ExerciseRepository) Delete(ctx context.Context, id primitive.ObjectID, trainerID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	exercise, ok := r.exercises[id]
	if !ok || exercise.TrainerID != trainerID {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

// ProgramRepository is an in-memory repository.ProgramRepository.
type ProgramRepository struct {
	mu       sync.RWMutex
	programs map[primitive.ObjectID]domain.Program
}

func NewProgramRepository() *ProgramRepository {
	return &ProgramRepository{programs: make(map[primitive.ObjectID]domain.Program)}
}

func (r *ProgramRepository) Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	program.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	program.CreatedAt = now
	program.UpdatedAt = now
	for d := range program.Days {
		for e := range program.Days[d].Exercises {
			if program.Days[d].Exercises[e].ID == primitive.NilObjectID {
				program.Days[d].Exercises[e].ID = primitive.NewObjectID()
			}
		}
	}
	r.programs[program.ID] = *program
	return program.ID, nil
}

func (r *ProgramRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	program, ok := r.programs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &program, nil
}

func (r *ProgramRepository) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Program
	for _, p := range r.programs {
		if p.TrainerID == trainerID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ClientProgramRepository is an in-memory repository.ClientProgramRepository.
type ClientProgramRepository struct {
	mu       sync.RWMutex
	programs map[primitive.ObjectID]domain.ClientProgram
}

func NewClientProgramRepository() *ClientProgramRepository {
	return &ClientProgramRepository{programs: make(map[primitive.ObjectID]domain.ClientProgram)}
}

func (r *ClientProgramRepository) Create(ctx context.Context, cp *domain.ClientProgram) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	cp.AssignedAt = now
	cp.UpdatedAt = now
	if cp.CurrentDay == 0 {
		cp.CurrentDay = 1
	}
	r.programs[cp.ID] = *cp
	return cp.ID, nil
}

func (r *ClientProgramRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ClientProgram, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cp, ok := r.programs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &cp, nil
}

func (r *ClientProgramRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.ClientProgram, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.ClientProgram
	for _, cp := range r.programs {
		if cp.ClientID == clientID {
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *ClientProgramRepository) UpdateProgress(ctx context.Context, id primitive.ObjectID, currentDay, completionPercentage int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp, ok := r.programs[id]
	if !ok {
		return repository.ErrNotFound
	}
	cp.CurrentDay = currentDay
	cp.CompletionPercentage = completionPercentage
	cp.UpdatedAt = time.Now().UTC()
	r.programs[id] = cp
	return nil
}

// ExerciseLogRepository is an in-memory repository.ExerciseLogRepository.
type ExerciseLogRepository struct {
	mu   sync.RWMutex
	logs []domain.ExerciseLog
}

func NewExerciseLogRepository() *ExerciseLogRepository {
	return &ExerciseLogRepository{}
}

func (r *ExerciseLogRepository) Create(ctx context.Context, log *domain.ExerciseLog) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log.ID = primitive.NewObjectID()
	if log.CompletedAt.IsZero() {
		log.CompletedAt = time.Now().UTC()
	}
	r.logs = append(r.logs, *log)
	return log.ID, nil
}

func (r *ExerciseLogRepository) GetByClientProgramID(ctx context.Context, clientProgramID primitive.ObjectID) ([]domain.ExerciseLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.ExerciseLog
	for _, l := range r.logs {
		if l.ClientProgramID == clientProgramID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *ExerciseLogRepository) CountForExerciseSince(ctx context.Context, clientProgramID, programExerciseID primitive.ObjectID, since time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, l := range r.logs {
		if l.ClientProgramID == clientProgramID &&
			l.ProgramExerciseID == programExerciseID &&
			!l.CompletedAt.Before(since) {
			count++
		}
	}
	return count, nil
}
