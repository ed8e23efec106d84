package domain

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClientProfile is the per-client attribute bag gathered during onboarding.
type ClientProfile struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID      primitive.ObjectID `bson:"clientId" json:"clientId"`
	Age           int                `bson:"age,omitempty" json:"age,omitempty"`
	HeightCm      int                `bson:"heightCm,omitempty" json:"heightCm,omitempty"`
	WeightKg      float64            `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	Gender        string             `bson:"gender,omitempty" json:"gender,omitempty"`
	Location      string             `bson:"location,omitempty" json:"location,omitempty"`
	Goals         []string           `bson:"goals,omitempty" json:"goals,omitempty"`
	TrainingStyle string             `bson:"trainingStyle,omitempty" json:"trainingStyle,omitempty"` // e.g., "virtual", "in_person"
	Frequency     int                `bson:"frequency,omitempty" json:"frequency,omitempty"`         // Sessions per week
	ActivityLevel string             `bson:"activityLevel,omitempty" json:"activityLevel,omitempty"` // e.g., "sedentary", "active"
	Equipment     []string           `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Motivation    int                `bson:"motivation,omitempty" json:"motivation,omitempty"` // 1-10, not part of completion scoring
	Discoverable  bool               `bson:"discoverable" json:"discoverable"`                 // Visible to trainers browsing for clients

	CompletionPercentage int       `bson:"completionPercentage" json:"completionPercentage"` // Stored on save
	CreatedAt            time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time `bson:"updatedAt" json:"updatedAt"`
}

// profileFieldCount is the number of tracked onboarding fields.
const profileFieldCount = 10

// CalculateCompletion counts the non-empty tracked fields (age, height,
// weight, gender, location, goals, training style, frequency, activity level,
// equipment) and returns the filled ratio as 0-100, rounded half up.
// Pure; safe to call on a partial profile.
func (p *ClientProfile) CalculateCompletion() int {
	filled := 0
	if p.Age > 0 {
		filled++
	}
	if p.HeightCm > 0 {
		filled++
	}
	if p.WeightKg > 0 {
		filled++
	}
	if p.Gender != "" {
		filled++
	}
	if p.Location != "" {
		filled++
	}
	if len(p.Goals) > 0 {
		filled++
	}
	if p.TrainingStyle != "" {
		filled++
	}
	if p.Frequency > 0 {
		filled++
	}
	if p.ActivityLevel != "" {
		filled++
	}
	if len(p.Equipment) > 0 {
		filled++
	}
	return int(math.Round(float64(filled) / profileFieldCount * 100))
}
