package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClientProgram is an instance of a Program assigned to a specific client,
// tracking where they are in it and how much of it they have completed.
type ClientProgram struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID             primitive.ObjectID `bson:"clientId" json:"clientId"`
	ProgramID            primitive.ObjectID `bson:"programId" json:"programId"`
	TrainerID            primitive.ObjectID `bson:"trainerId" json:"trainerId"`                       // Denormalized for trainer queries
	CurrentDay           int                `bson:"currentDay" json:"currentDay"`                     // 1-based
	CompletionPercentage int                `bson:"completionPercentage" json:"completionPercentage"` // Persisted after each log, not recomputed on read
	AssignedAt           time.Time          `bson:"assignedAt" json:"assignedAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ExerciseLog records one completion event for a program-exercise within a
// client-program. Append-only: performing the same exercise twice in a day
// writes two rows, and completion counting deduplicates by ProgramExerciseID.
type ExerciseLog struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientProgramID   primitive.ObjectID `bson:"clientProgramId" json:"clientProgramId"`
	ProgramExerciseID primitive.ObjectID `bson:"programExerciseId" json:"programExerciseId"`
	Sets              int                `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps              int                `bson:"reps,omitempty" json:"reps,omitempty"`
	Notes             string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CompletedAt       time.Time          `bson:"completedAt" json:"completedAt"`
}
