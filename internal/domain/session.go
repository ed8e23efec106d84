package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionStatus type for the session lifecycle
type SessionStatus string

const (
	SessionPending   SessionStatus = "pending"   // Client requested, awaiting trainer approval
	SessionScheduled SessionStatus = "scheduled" // Trainer approved
	SessionCompleted SessionStatus = "completed" // Terminal, set by trainer
	SessionCanceled  SessionStatus = "canceled"  // Terminal
)

// SessionMode is the delivery channel for a session.
type SessionMode string

const (
	ModeInPerson   SessionMode = "in_person"
	ModeVirtual    SessionMode = "virtual"     // Requires a video link
	ModeSelfGuided SessionMode = "self_guided" // Client performs an assigned program unsupervised
)

// ValidMode reports whether m is one of the known session modes.
func ValidMode(m SessionMode) bool {
	switch m {
	case ModeInPerson, ModeVirtual, ModeSelfGuided:
		return true
	}
	return false
}

// Session is a scheduled or completed training interaction between a trainer
// and a client.
type Session struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TrainerID       primitive.ObjectID  `bson:"trainerId" json:"trainerId"`
	ClientID        primitive.ObjectID  `bson:"clientId" json:"clientId"`
	SlotID          primitive.ObjectID  `bson:"slotId" json:"slotId"` // The time slot this booking claimed
	ScheduledAt     time.Time           `bson:"scheduledAt" json:"scheduledAt"`
	DurationMinutes int                 `bson:"durationMinutes" json:"durationMinutes"`
	Status          SessionStatus       `bson:"status" json:"status"`
	Mode            SessionMode         `bson:"mode" json:"mode"`
	VideoLink       string              `bson:"videoLink,omitempty" json:"videoLink,omitempty"` // Required when Mode == ModeVirtual
	ProgramID       *primitive.ObjectID `bson:"programId,omitempty" json:"programId,omitempty"` // Nil on self_guided sessions until the trainer assigns one
	Notes           string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionCompleted || s == SessionCanceled
}

// sessionTransitions is the full edge set of the status state machine:
// pending -> {scheduled, canceled}; scheduled -> {completed, canceled}.
var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionPending:   {SessionScheduled, SessionCanceled},
	SessionScheduled: {SessionCompleted, SessionCanceled},
}

// CanTransition reports whether the state machine permits moving from s to next,
// regardless of who is asking.
func (s SessionStatus) CanTransition(next SessionStatus) bool {
	for _, allowed := range sessionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// RoleCanTransition is the single authorization point for status changes:
// clients may only cancel, trainers approve/decline/complete, and
// organization staff may drive any legal edge. Ownership (the session actually
// belonging to the acting client or trainer) is checked by the service layer.
func RoleCanTransition(role Role, current, next SessionStatus) bool {
	if !current.CanTransition(next) {
		return false
	}
	switch role {
	case RoleClient:
		return next == SessionCanceled
	case RoleTrainer, RoleManager, RoleAdmin:
		return true
	}
	return false
}
