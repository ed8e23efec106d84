package service

import (
	"context"
	"errors"
	"testing"

	"github.com/awright222/fitiva/internal/domain"
	"github.com/awright222/fitiva/internal/repository/memory"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type sessionFixture struct {
	svc      SessionService
	sessions *memory.SessionRepository
	slots    *memory.TimeSlotRepository
	programs *memory.ProgramRepository
}

func newSessionFixture() *sessionFixture {
	sessions := memory.NewSessionRepository()
	slots := memory.NewTimeSlotRepository()
	programs := memory.NewProgramRepository()
	return &sessionFixture{
		svc:      NewSessionService(sessions, slots, programs),
		sessions: sessions,
		slots:    slots,
		programs: programs,
	}
}

func (f *sessionFixture) seedSlot(t *testing.T, trainerID primitive.ObjectID) primitive.ObjectID {
	t.Helper()
	slot := &domain.TimeSlot{
		TrainerID: trainerID,
		Date:      "2026-09-07",
		StartTime: "10:00",
		EndTime:   "11:00",
		Available: true,
	}
	id, err := f.slots.Create(context.Background(), slot)
	if err != nil {
		t.Fatalf("seed slot: %v", err)
	}
	return id
}

func TestCreateSessionStartsPending(t *testing.T) {
	f := newSessionFixture()
	trainerID := primitive.NewObjectID()
	clientID := primitive.NewObjectID()
	slotID := f.seedSlot(t, trainerID)

	session, err := f.svc.CreateSession(context.Background(), BookingRequest{
		ClientID:  clientID,
		TrainerID: trainerID,
		SlotID:    slotID,
		Mode:      domain.ModeInPerson,
	})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if session.Status != domain.SessionPending {
		t.Errorf("Status = %q, want %q", session.Status, domain.SessionPending)
	}
	if session.DurationMinutes != 60 {
		t.Errorf("DurationMinutes = %d, want 60", session.DurationMinutes)
	}

	slot, err := f.slots.GetByID(context.Background(), slotID)
	if err != nil {
		t.Fatalf("slot lookup: %v", err)
	}
	if slot.Available {
		t.Error("slot still available after booking")
	}
}

func TestCreateSessionValidation(t *testing.T) {
	trainerID := primitive.NewObjectID()
	clientID := primitive.NewObjectID()

	tests := []struct {
		name    string
		mutate  func(f *sessionFixture, req *BookingRequest)
		wantErr error
	}{
		{
			name:    "missing trainer",
			mutate:  func(f *sessionFixture, req *BookingRequest) { req.TrainerID = primitive.NilObjectID },
			wantErr: ErrMissingSelection,
		},
		{
			name:    "missing slot",
			mutate:  func(f *sessionFixture, req *BookingRequest) { req.SlotID = primitive.NilObjectID },
			wantErr: ErrMissingSelection,
		},
		{
			name:    "unknown mode",
			mutate:  func(f *sessionFixture, req *BookingRequest) { req.Mode = "hybrid" },
			wantErr: ErrInvalidSessionMode,
		},
		{
			name: "virtual without video link",
			mutate: func(f *sessionFixture, req *BookingRequest) {
				req.Mode = domain.ModeVirtual
				req.VideoLink = ""
			},
			wantErr: ErrVideoLinkRequired,
		},
		{
			name:    "slot does not exist",
			mutate:  func(f *sessionFixture, req *BookingRequest) { req.SlotID = primitive.NewObjectID() },
			wantErr: ErrSlotNotFound,
		},
		{
			name: "slot belongs to another trainer",
			mutate: func(f *sessionFixture, req *BookingRequest) {
				req.SlotID = f.seedSlot(t, primitive.NewObjectID())
			},
			wantErr: ErrSlotNotOwnedByTrainer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSessionFixture()
			req := BookingRequest{
				ClientID:  clientID,
				TrainerID: trainerID,
				SlotID:    f.seedSlot(t, trainerID),
				Mode:      domain.ModeInPerson,
			}
			tt.mutate(f, &req)

			_, err := f.svc.CreateSession(context.Background(), req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateSession() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateSessionRejectsDoubleBooking(t *testing.T) {
	f := newSessionFixture()
	trainerID := primitive.NewObjectID()
	slotID := f.seedSlot(t, trainerID)

	req := BookingRequest{
		ClientID:  primitive.NewObjectID(),
		TrainerID: trainerID,
		SlotID:    slotID,
		Mode:      domain.ModeInPerson,
	}
	if _, err := f.svc.CreateSession(context.Background(), req); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	req.ClientID = primitive.NewObjectID()
	if _, err := f.svc.CreateSession(context.Background(), req); !errors.Is(err, ErrSlotTaken) {
		t.Errorf("second booking error = %v, want %v", err, ErrSlotTaken)
	}
}

func TestUpdateSessionStatusLifecycle(t *testing.T) {
	f := newSessionFixture()
	trainerID := primitive.NewObjectID()
	clientID := primitive.NewObjectID()
	slotID := f.seedSlot(t, trainerID)

	session, err := f.svc.CreateSession(context.Background(), BookingRequest{
		ClientID:  clientID,
		TrainerID: trainerID,
		SlotID:    slotID,
		Mode:      domain.ModeInPerson,
	})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	// Trainer approves.
	updated, err := f.svc.UpdateSessionStatus(context.Background(), trainerID, domain.RoleTrainer, session.ID, domain.SessionScheduled)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if updated.Status != domain.SessionScheduled {
		t.Errorf("Status = %q, want %q", updated.Status, domain.SessionScheduled)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Errorf("UpdatedAt %v not after CreatedAt %v", updated.UpdatedAt, updated.CreatedAt)
	}

	// Trainer completes.
	updated, err = f.svc.UpdateSessionStatus(context.Background(), trainerID, domain.RoleTrainer, session.ID, domain.SessionCompleted)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if updated.Status != domain.SessionCompleted {
		t.Errorf("Status = %q, want %q", updated.Status, domain.SessionCompleted)
	}

	// Completed is terminal.
	_, err = f.svc.UpdateSessionStatus(context.Background(), trainerID, domain.RoleTrainer, session.ID, domain.SessionCanceled)
	if !errors.Is(err, ErrTerminalStatus) {
		t.Errorf("transition out of completed error = %v, want %v", err, ErrTerminalStatus)
	}
}

func TestUpdateSessionStatusAuthorization(t *testing.T) {
	f := newSessionFixture()
	trainerID := primitive.NewObjectID()
	clientID := primitive.NewObjectID()
	slotID := f.seedSlot(t, trainerID)

	session, err := f.svc.CreateSession(context.Background(), BookingRequest{
		ClientID:  clientID,
		TrainerID: trainerID,
		SlotID:    slotID,
		Mode:      domain.ModeInPerson,
	})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	// A client may not approve their own request.
	_, err = f.svc.UpdateSessionStatus(context.Background(), clientID, domain.RoleClient, session.ID, domain.SessionScheduled)
	if !errors.Is(err, ErrTransitionDenied) {
		t.Errorf("client approve error = %v, want %v", err, ErrTransitionDenied)
	}

	// A different client may not cancel someone else's session.
	_, err = f.svc.UpdateSessionStatus(context.Background(), primitive.NewObjectID(), domain.RoleClient, session.ID, domain.SessionCanceled)
	if !errors.Is(err, ErrSessionAccessDenied) {
		t.Errorf("other client cancel error = %v, want %v", err, ErrSessionAccessDenied)
	}

	// Pending cannot jump straight to completed.
	_, err = f.svc.UpdateSessionStatus(context.Background(), trainerID, domain.RoleTrainer, session.ID, domain.SessionCompleted)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("pending to completed error = %v, want %v", err, ErrInvalidTransition)
	}

	// A manager may drive any legal edge.
	if _, err := f.svc.UpdateSessionStatus(context.Background(), primitive.NewObjectID(), domain.RoleManager, session.ID, domain.SessionScheduled); err != nil {
		t.Errorf("manager approve error = %v", err)
	}
}

func TestUpdateSessionStatusMissingSessionIsNoOp(t *testing.T) {
	f := newSessionFixture()

	session, err := f.svc.UpdateSessionStatus(context.Background(), primitive.NewObjectID(), domain.RoleTrainer, primitive.NewObjectID(), domain.SessionScheduled)
	if err != nil {
		t.Fatalf("UpdateSessionStatus() error = %v", err)
	}
	if session != nil {
		t.Errorf("session = %+v, want nil", session)
	}
}

func TestCancelFreesSlot(t *testing.T) {
	f := newSessionFixture()
	trainerID := primitive.NewObjectID()
	clientID := primitive.NewObjectID()
	slotID := f.seedSlot(t, trainerID)

	session, err := f.svc.CreateSession(context.Background(), BookingRequest{
		ClientID:  clientID,
		TrainerID: trainerID,
		SlotID:    slotID,
		Mode:      domain.ModeInPerson,
	})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	if _, err := f.svc.UpdateSessionStatus(context.Background(), clientID, domain.RoleClient, session.ID, domain.SessionCanceled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	slot, err := f.slots.GetByID(context.Background(), slotID)
	if err != nil {
		t.Fatalf("slot lookup: %v", err)
	}
	if !slot.Available {
		t.Error("slot not freed after cancellation")
	}

	// The freed slot can be booked again.
	if _, err := f.svc.CreateSession(context.Background(), BookingRequest{
		ClientID:  primitive.NewObjectID(),
		TrainerID: trainerID,
		SlotID:    slotID,
		Mode:      domain.ModeInPerson,
	}); err != nil {
		t.Errorf("rebooking freed slot: %v", err)
	}
}

func TestUpdateSessionDetailsPendingOnly(t *testing.T) {
	f := newSessionFixture()
	trainerID := primitive.NewObjectID()
	clientID := primitive.NewObjectID()
	slotID := f.seedSlot(t, trainerID)

	session, err := f.svc.CreateSession(context.Background(), BookingRequest{
		ClientID:  clientID,
		TrainerID: trainerID,
		SlotID:    slotID,
		Mode:      domain.ModeInPerson,
	})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	notes := "bring resistance bands"
	updated, err := f.svc.UpdateSessionDetails(context.Background(), clientID, session.ID, nil, nil, &notes)
	if err != nil {
		t.Fatalf("UpdateSessionDetails() error = %v", err)
	}
	if updated.Notes != notes {
		t.Errorf("Notes = %q, want %q", updated.Notes, notes)
	}
	// The returned record carries the stamp the repository wrote.
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Errorf("UpdatedAt = %v not after CreatedAt = %v", updated.UpdatedAt, updated.CreatedAt)
	}

	if _, err := f.svc.UpdateSessionStatus(context.Background(), trainerID, domain.RoleTrainer, session.ID, domain.SessionScheduled); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := f.svc.UpdateSessionDetails(context.Background(), clientID, session.ID, nil, nil, &notes); !errors.Is(err, ErrSessionNotEditable) {
		t.Errorf("edit scheduled session error = %v, want %v", err, ErrSessionNotEditable)
	}
}

func TestUpdateSessionDetailsSlotSwap(t *testing.T) {
	f := newSessionFixture()
	trainerID := primitive.NewObjectID()
	clientID := primitive.NewObjectID()
	oldSlot := f.seedSlot(t, trainerID)
	newSlot := f.seedSlot(t, trainerID)

	session, err := f.svc.CreateSession(context.Background(), BookingRequest{
		ClientID:  clientID,
		TrainerID: trainerID,
		SlotID:    oldSlot,
		Mode:      domain.ModeInPerson,
	})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	updated, err := f.svc.UpdateSessionDetails(context.Background(), clientID, session.ID, &newSlot, nil, nil)
	if err != nil {
		t.Fatalf("UpdateSessionDetails() error = %v", err)
	}
	if updated.SlotID != newSlot {
		t.Errorf("SlotID = %v, want %v", updated.SlotID, newSlot)
	}

	freed, _ := f.slots.GetByID(context.Background(), oldSlot)
	if !freed.Available {
		t.Error("old slot not freed after swap")
	}
	claimed, _ := f.slots.GetByID(context.Background(), newSlot)
	if claimed.Available {
		t.Error("new slot still available after swap")
	}
}

func TestAssignProgramToSession(t *testing.T) {
	f := newSessionFixture()
	trainerID := primitive.NewObjectID()
	clientID := primitive.NewObjectID()
	slotID := f.seedSlot(t, trainerID)

	programID, err := f.programs.Create(context.Background(), &domain.Program{
		TrainerID: trainerID,
		Name:      "Mobility Basics",
		Days:      []domain.ProgramDay{{DayNumber: 1}},
	})
	if err != nil {
		t.Fatalf("seed program: %v", err)
	}

	session, err := f.svc.CreateSession(context.Background(), BookingRequest{
		ClientID:  clientID,
		TrainerID: trainerID,
		SlotID:    slotID,
		Mode:      domain.ModeSelfGuided,
	})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if session.ProgramID != nil {
		t.Fatalf("ProgramID = %v, want nil before assignment", session.ProgramID)
	}

	updated, err := f.svc.AssignProgramToSession(context.Background(), trainerID, session.ID, programID)
	if err != nil {
		t.Fatalf("AssignProgramToSession() error = %v", err)
	}
	if updated.ProgramID == nil || *updated.ProgramID != programID {
		t.Errorf("ProgramID = %v, want %v", updated.ProgramID, programID)
	}

	// Another trainer's program is rejected.
	otherProgram, _ := f.programs.Create(context.Background(), &domain.Program{
		TrainerID: primitive.NewObjectID(),
		Name:      "Not Yours",
	})
	if _, err := f.svc.AssignProgramToSession(context.Background(), trainerID, session.ID, otherProgram); !errors.Is(err, ErrProgramAccessDenied) {
		t.Errorf("foreign program error = %v, want %v", err, ErrProgramAccessDenied)
	}
}

func TestAssignProgramRequiresSelfGuided(t *testing.T) {
	f := newSessionFixture()
	trainerID := primitive.NewObjectID()
	slotID := f.seedSlot(t, trainerID)

	programID, _ := f.programs.Create(context.Background(), &domain.Program{TrainerID: trainerID, Name: "Plan"})

	session, err := f.svc.CreateSession(context.Background(), BookingRequest{
		ClientID:  primitive.NewObjectID(),
		TrainerID: trainerID,
		SlotID:    slotID,
		Mode:      domain.ModeInPerson,
	})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	if _, err := f.svc.AssignProgramToSession(context.Background(), trainerID, session.ID, programID); !errors.Is(err, ErrNotSelfGuided) {
		t.Errorf("AssignProgramToSession() error = %v, want %v", err, ErrNotSelfGuided)
	}
}
