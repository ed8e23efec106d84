package service

import (
	"context"
	"errors"
	"testing"

	"github.com/awright222/fitiva/internal/domain"
	"github.com/awright222/fitiva/internal/repository/memory"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type programFixture struct {
	svc      ProgramService
	programs *memory.ProgramRepository
	client   *memory.ClientProgramRepository
	logs     *memory.ExerciseLogRepository
}

func newProgramFixture() *programFixture {
	programs := memory.NewProgramRepository()
	client := memory.NewClientProgramRepository()
	logs := memory.NewExerciseLogRepository()
	return &programFixture{
		svc:      NewProgramService(programs, client, logs),
		programs: programs,
		client:   client,
		logs:     logs,
	}
}

// seedAssigned creates a trainer program with the given day layout and
// assigns it to a fresh client. Returns the client-program and the template.
func (f *programFixture) seedAssigned(t *testing.T, exercisesPerDay ...int) (*domain.ClientProgram, *domain.Program) {
	t.Helper()
	trainerID := primitive.NewObjectID()

	var days []domain.ProgramDay
	for i, n := range exercisesPerDay {
		day := domain.ProgramDay{DayNumber: i + 1}
		for seq := 1; seq <= n; seq++ {
			day.Exercises = append(day.Exercises, domain.ProgramExercise{
				ExerciseID: primitive.NewObjectID(),
				Sequence:   seq,
				Sets:       3,
				Reps:       "10",
			})
		}
		days = append(days, day)
	}

	created, err := f.svc.CreateProgram(context.Background(), &domain.Program{
		TrainerID: trainerID,
		Name:      "Test Block",
		Days:      days,
	})
	if err != nil {
		t.Fatalf("CreateProgram() error = %v", err)
	}

	cp, err := f.svc.AssignProgram(context.Background(), trainerID, primitive.NewObjectID(), created.ID)
	if err != nil {
		t.Fatalf("AssignProgram() error = %v", err)
	}
	return cp, created
}

func TestAssignProgramStartsAtDayOne(t *testing.T) {
	f := newProgramFixture()
	cp, _ := f.seedAssigned(t, 2, 2)

	if cp.CurrentDay != 1 {
		t.Errorf("CurrentDay = %d, want 1", cp.CurrentDay)
	}
	if cp.CompletionPercentage != 0 {
		t.Errorf("CompletionPercentage = %d, want 0", cp.CompletionPercentage)
	}
}

func TestAssignProgramOwnership(t *testing.T) {
	f := newProgramFixture()
	_, program := f.seedAssigned(t, 1)

	_, err := f.svc.AssignProgram(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), program.ID)
	if !errors.Is(err, ErrProgramAccessDenied) {
		t.Errorf("AssignProgram() error = %v, want %v", err, ErrProgramAccessDenied)
	}

	_, err = f.svc.AssignProgram(context.Background(), program.TrainerID, primitive.NewObjectID(), primitive.NewObjectID())
	if !errors.Is(err, ErrProgramNotFound) {
		t.Errorf("AssignProgram() error = %v, want %v", err, ErrProgramNotFound)
	}
}

func TestLogExerciseCompletionUpdatesPercentage(t *testing.T) {
	f := newProgramFixture()
	cp, program := f.seedAssigned(t, 2, 2) // 4 exercises total

	_, pct, err := f.svc.LogExerciseCompletion(context.Background(), cp.ID, ExerciseCompletionInput{
		ProgramExerciseID: program.Days[0].Exercises[0].ID,
		Sets:              3,
		Reps:              10,
	})
	if err != nil {
		t.Fatalf("LogExerciseCompletion() error = %v", err)
	}
	if pct != 25 {
		t.Errorf("percentage = %d, want 25", pct)
	}

	stored, err := f.client.GetByID(context.Background(), cp.ID)
	if err != nil {
		t.Fatalf("client program lookup: %v", err)
	}
	if stored.CompletionPercentage != 25 {
		t.Errorf("stored percentage = %d, want 25", stored.CompletionPercentage)
	}
}

func TestLogSameExerciseTwiceCountsOnce(t *testing.T) {
	f := newProgramFixture()
	cp, program := f.seedAssigned(t, 2) // 2 exercises total

	input := ExerciseCompletionInput{ProgramExerciseID: program.Days[0].Exercises[0].ID, Sets: 3, Reps: 8}
	if _, _, err := f.svc.LogExerciseCompletion(context.Background(), cp.ID, input); err != nil {
		t.Fatalf("first log: %v", err)
	}
	_, pct, err := f.svc.LogExerciseCompletion(context.Background(), cp.ID, input)
	if err != nil {
		t.Fatalf("second log: %v", err)
	}
	if pct != 50 {
		t.Errorf("percentage after duplicate log = %d, want 50", pct)
	}

	logs, _ := f.logs.GetByClientProgramID(context.Background(), cp.ID)
	if len(logs) != 2 {
		t.Errorf("log rows = %d, want 2 (writes are append-only)", len(logs))
	}
}

func TestCompletionNeverDecreases(t *testing.T) {
	f := newProgramFixture()
	cp, program := f.seedAssigned(t, 3) // 3 exercises total

	prev := 0
	for _, pe := range program.Days[0].Exercises {
		_, pct, err := f.svc.LogExerciseCompletion(context.Background(), cp.ID, ExerciseCompletionInput{ProgramExerciseID: pe.ID})
		if err != nil {
			t.Fatalf("LogExerciseCompletion() error = %v", err)
		}
		if pct < prev {
			t.Errorf("percentage decreased from %d to %d", prev, pct)
		}
		prev = pct
	}
	if prev != 100 {
		t.Errorf("final percentage = %d, want 100", prev)
	}
}

func TestCompletionRoundsHalfUp(t *testing.T) {
	f := newProgramFixture()
	cp, program := f.seedAssigned(t, 3) // 1 of 3 is 33.33 -> 33

	_, pct, err := f.svc.LogExerciseCompletion(context.Background(), cp.ID, ExerciseCompletionInput{
		ProgramExerciseID: program.Days[0].Exercises[0].ID,
	})
	if err != nil {
		t.Fatalf("LogExerciseCompletion() error = %v", err)
	}
	if pct != 33 {
		t.Errorf("percentage = %d, want 33", pct)
	}
}

func TestEmptyProgramCompletionIsZero(t *testing.T) {
	f := newProgramFixture()
	cp, _ := f.seedAssigned(t) // no days at all

	pct, err := f.svc.CalculateProgramCompletion(context.Background(), cp.ID)
	if err != nil {
		t.Fatalf("CalculateProgramCompletion() error = %v", err)
	}
	if pct != 0 {
		t.Errorf("percentage = %d, want 0", pct)
	}
}

func TestLogRejectsForeignExercise(t *testing.T) {
	f := newProgramFixture()
	cp, _ := f.seedAssigned(t, 1)

	_, _, err := f.svc.LogExerciseCompletion(context.Background(), cp.ID, ExerciseCompletionInput{
		ProgramExerciseID: primitive.NewObjectID(),
	})
	if !errors.Is(err, ErrUnknownProgramExercise) {
		t.Errorf("LogExerciseCompletion() error = %v, want %v", err, ErrUnknownProgramExercise)
	}
}

func TestIsExerciseCompletedToday(t *testing.T) {
	f := newProgramFixture()
	cp, program := f.seedAssigned(t, 2)
	first := program.Days[0].Exercises[0].ID
	second := program.Days[0].Exercises[1].ID

	if _, _, err := f.svc.LogExerciseCompletion(context.Background(), cp.ID, ExerciseCompletionInput{ProgramExerciseID: first}); err != nil {
		t.Fatalf("LogExerciseCompletion() error = %v", err)
	}

	done, err := f.svc.IsExerciseCompletedToday(context.Background(), cp.ID, first)
	if err != nil {
		t.Fatalf("IsExerciseCompletedToday() error = %v", err)
	}
	if !done {
		t.Error("logged exercise not reported as completed today")
	}

	done, err = f.svc.IsExerciseCompletedToday(context.Background(), cp.ID, second)
	if err != nil {
		t.Fatalf("IsExerciseCompletedToday() error = %v", err)
	}
	if done {
		t.Error("unlogged exercise reported as completed today")
	}
}

func TestAdvanceDayCapsAtLastDay(t *testing.T) {
	f := newProgramFixture()
	cp, _ := f.seedAssigned(t, 1, 1) // two days

	cp, err := f.svc.AdvanceDay(context.Background(), cp.ID)
	if err != nil {
		t.Fatalf("AdvanceDay() error = %v", err)
	}
	if cp.CurrentDay != 2 {
		t.Errorf("CurrentDay = %d, want 2", cp.CurrentDay)
	}

	cp, err = f.svc.AdvanceDay(context.Background(), cp.ID)
	if err != nil {
		t.Fatalf("AdvanceDay() error = %v", err)
	}
	if cp.CurrentDay != 2 {
		t.Errorf("CurrentDay after cap = %d, want 2", cp.CurrentDay)
	}
}

func TestGetClientProgramResolvesTemplate(t *testing.T) {
	f := newProgramFixture()
	cp, program := f.seedAssigned(t, 2, 1)

	details, err := f.svc.GetClientProgram(context.Background(), cp.ID)
	if err != nil {
		t.Fatalf("GetClientProgram() error = %v", err)
	}
	if details.Program == nil || details.Program.ID != program.ID {
		t.Fatalf("resolved program = %+v, want template %v", details.Program, program.ID)
	}
	if got := details.Program.TotalExercises(); got != 3 {
		t.Errorf("TotalExercises() = %d, want 3", got)
	}

	if _, err := f.svc.GetClientProgram(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrClientProgramNotFound) {
		t.Errorf("missing client program error = %v, want %v", err, ErrClientProgramNotFound)
	}
}
