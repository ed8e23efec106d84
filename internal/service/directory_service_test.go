package service

import (
	"context"
	"errors"
	"testing"

	"github.com/awright222/fitiva/internal/domain"
	"github.com/awright222/fitiva/internal/repository/memory"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newDirectoryFixture() (*memory.TrainerProfileRepository, *memory.TimeSlotRepository, *memory.UserRepository, DirectoryService) {
	profileRepo := memory.NewTrainerProfileRepository()
	slotRepo := memory.NewTimeSlotRepository()
	userRepo := memory.NewUserRepository()
	return profileRepo, slotRepo, userRepo, NewDirectoryService(profileRepo, slotRepo, userRepo)
}

func TestGetAvailableSlotsFiltersBooked(t *testing.T) {
	_, slotRepo, _, svc := newDirectoryFixture()
	trainerID := primitive.NewObjectID()

	open, err := svc.AddTimeSlot(context.Background(), &domain.TimeSlot{
		TrainerID: trainerID, Date: "2026-09-07", StartTime: "09:00", EndTime: "10:00",
	})
	if err != nil {
		t.Fatalf("AddTimeSlot() error = %v", err)
	}
	booked, err := svc.AddTimeSlot(context.Background(), &domain.TimeSlot{
		TrainerID: trainerID, Date: "2026-09-07", StartTime: "10:00", EndTime: "11:00",
	})
	if err != nil {
		t.Fatalf("AddTimeSlot() error = %v", err)
	}
	if err := slotRepo.SetAvailable(context.Background(), booked.ID, false); err != nil {
		t.Fatalf("SetAvailable() error = %v", err)
	}

	slots, err := svc.GetAvailableSlots(context.Background(), trainerID, "2026-09-07")
	if err != nil {
		t.Fatalf("GetAvailableSlots() error = %v", err)
	}
	if len(slots) != 1 || slots[0].ID != open.ID {
		t.Errorf("GetAvailableSlots() = %v, want only the open slot %v", slots, open.ID)
	}
}

func TestGetAvailableSlotsRejectsBadDate(t *testing.T) {
	_, _, _, svc := newDirectoryFixture()

	if _, err := svc.GetAvailableSlots(context.Background(), primitive.NewObjectID(), "07/09/2026"); err == nil {
		t.Error("GetAvailableSlots() accepted a malformed date")
	}
}

func TestAddTimeSlotValidation(t *testing.T) {
	trainerID := primitive.NewObjectID()
	tests := []struct {
		name string
		slot domain.TimeSlot
	}{
		{"malformed start time", domain.TimeSlot{TrainerID: trainerID, Date: "2026-09-07", StartTime: "9am", EndTime: "10:00"}},
		{"malformed date", domain.TimeSlot{TrainerID: trainerID, Date: "Sept 7", StartTime: "09:00", EndTime: "10:00"}},
		{"end before start", domain.TimeSlot{TrainerID: trainerID, Date: "2026-09-07", StartTime: "10:00", EndTime: "09:00"}},
		{"zero duration", domain.TimeSlot{TrainerID: trainerID, Date: "2026-09-07", StartTime: "10:00", EndTime: "10:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, svc := newDirectoryFixture()
			slot := tt.slot
			if _, err := svc.AddTimeSlot(context.Background(), &slot); !errors.Is(err, ErrInvalidTimeSlot) {
				t.Errorf("AddTimeSlot() error = %v, want %v", err, ErrInvalidTimeSlot)
			}
		})
	}
}

func TestAddTimeSlotStartsAvailable(t *testing.T) {
	_, _, _, svc := newDirectoryFixture()

	slot, err := svc.AddTimeSlot(context.Background(), &domain.TimeSlot{
		TrainerID: primitive.NewObjectID(), Date: "2026-09-07", StartTime: "09:00", EndTime: "10:00",
	})
	if err != nil {
		t.Fatalf("AddTimeSlot() error = %v", err)
	}
	if !slot.Available {
		t.Error("AddTimeSlot() created an unavailable slot")
	}
}

func TestAssignClientToTrainer(t *testing.T) {
	_, _, userRepo, svc := newDirectoryFixture()
	ctx := context.Background()

	trainer := &domain.User{Name: "Coach", Email: "coach@example.com", PasswordHash: "x", Role: domain.RoleTrainer}
	trainerID, err := userRepo.Create(ctx, trainer)
	if err != nil {
		t.Fatalf("Create(trainer) error = %v", err)
	}
	if _, err := svc.UpsertTrainerProfile(ctx, &domain.TrainerProfile{
		ID: trainerID, Name: "Coach", Specialty: "Strength", HourlyRate: 60,
	}); err != nil {
		t.Fatalf("UpsertTrainerProfile() error = %v", err)
	}

	client := &domain.User{Name: "Dana", Email: "dana@example.com", PasswordHash: "x", Role: domain.RoleClient}
	clientID, err := userRepo.Create(ctx, client)
	if err != nil {
		t.Fatalf("Create(client) error = %v", err)
	}

	if err := svc.AssignClientToTrainer(ctx, trainerID, clientID); err != nil {
		t.Fatalf("AssignClientToTrainer() error = %v", err)
	}

	linked, err := userRepo.GetByID(ctx, clientID)
	if err != nil {
		t.Fatalf("GetByID(client) error = %v", err)
	}
	if linked.TrainerID == nil || *linked.TrainerID != trainerID {
		t.Errorf("client TrainerID = %v, want %v", linked.TrainerID, trainerID)
	}
}

func TestAssignClientToTrainerRejections(t *testing.T) {
	_, _, userRepo, svc := newDirectoryFixture()
	ctx := context.Background()

	trainer := &domain.User{Name: "Coach", Email: "coach@example.com", PasswordHash: "x", Role: domain.RoleTrainer}
	trainerID, err := userRepo.Create(ctx, trainer)
	if err != nil {
		t.Fatalf("Create(trainer) error = %v", err)
	}

	client := &domain.User{Name: "Dana", Email: "dana@example.com", PasswordHash: "x", Role: domain.RoleClient}
	clientID, err := userRepo.Create(ctx, client)
	if err != nil {
		t.Fatalf("Create(client) error = %v", err)
	}

	// No directory entry published yet.
	if err := svc.AssignClientToTrainer(ctx, trainerID, clientID); !errors.Is(err, ErrTrainerNotFound) {
		t.Errorf("AssignClientToTrainer() error = %v, want %v", err, ErrTrainerNotFound)
	}

	if _, err := svc.UpsertTrainerProfile(ctx, &domain.TrainerProfile{
		ID: trainerID, Name: "Coach", Specialty: "Strength", HourlyRate: 60,
	}); err != nil {
		t.Fatalf("UpsertTrainerProfile() error = %v", err)
	}

	// Unknown client.
	if err := svc.AssignClientToTrainer(ctx, trainerID, primitive.NewObjectID()); !errors.Is(err, ErrClientNotFound) {
		t.Errorf("AssignClientToTrainer(unknown) error = %v, want %v", err, ErrClientNotFound)
	}

	// Another trainer cannot be claimed as a client.
	other := &domain.User{Name: "Rival", Email: "rival@example.com", PasswordHash: "x", Role: domain.RoleTrainer}
	otherID, err := userRepo.Create(ctx, other)
	if err != nil {
		t.Fatalf("Create(other) error = %v", err)
	}
	if err := svc.AssignClientToTrainer(ctx, trainerID, otherID); !errors.Is(err, ErrClientNotFound) {
		t.Errorf("AssignClientToTrainer(trainer) error = %v, want %v", err, ErrClientNotFound)
	}
}
