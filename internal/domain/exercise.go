package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise represents a single exercise definition in the library.
type Exercise struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID    primitive.ObjectID `bson:"trainerId" json:"trainerId"` // Trainer who created/owns this exercise
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	MuscleGroups []string           `bson:"muscleGroups,omitempty" json:"muscleGroups,omitempty"` // e.g., "chest", "hamstrings"
	Equipment    []string           `bson:"equipment,omitempty" json:"equipment,omitempty"`       // e.g., "dumbbells", "none"
	Difficulty   string             `bson:"difficulty,omitempty" json:"difficulty,omitempty"`     // e.g., "beginner", "intermediate", "advanced"

	// Demonstration video. The object key points into S3-compatible storage;
	// clients view it through a presigned URL, never directly.
	VideoObjectKey string `bson:"videoObjectKey,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
