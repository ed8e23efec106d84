package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Program is a multi-day workout template built by a trainer. Days and their
// exercises are embedded: a program is always read and written as a whole.
type Program struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID   primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	Name        string             `bson:"name" json:"name"` // e.g., "8-Week Hypertrophy"
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Days        []ProgramDay       `bson:"days" json:"days"` // Ordered by DayNumber
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProgramDay is one ordered day within a program.
type ProgramDay struct {
	DayNumber int               `bson:"dayNumber" json:"dayNumber"`             // 1-based
	Title     string            `bson:"title,omitempty" json:"title,omitempty"` // e.g., "Upper Body"
	Exercises []ProgramExercise `bson:"exercises" json:"exercises"`             // Ordered by Sequence
}

// ProgramExercise places an exercise definition into a program day with its
// prescription. Its ID is what exercise logs reference.
type ProgramExercise struct {
	ID         primitive.ObjectID `bson:"id" json:"id"`
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"` // Link to the Exercise definition
	Sequence   int                `bson:"sequence" json:"sequence"`
	Sets       int                `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps       string             `bson:"reps,omitempty" json:"reps,omitempty"` // Free-form, e.g., "8-12"
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// TotalExercises counts every program-exercise across all days.
func (p *Program) TotalExercises() int {
	total := 0
	for _, day := range p.Days {
		total += len(day.Exercises)
	}
	return total
}
