package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerProfile is the directory entry clients browse when booking.
// Reference data in this scope; keyed by the trainer's user ID.
type TrainerProfile struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"` // Same as the trainer's user ID
	Name       string             `bson:"name" json:"name"`
	Specialty  string             `bson:"specialty" json:"specialty"` // e.g., "Strength", "Mobility", "Rehab"
	HourlyRate float64            `bson:"hourlyRate" json:"hourlyRate"`
	Rating     float64            `bson:"rating,omitempty" json:"rating,omitempty"` // 0 when unrated
	Bio        string             `bson:"bio,omitempty" json:"bio,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TimeSlot represents one opening in a trainer's calendar.
type TimeSlot struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	Date      string             `bson:"date" json:"date"`           // "2006-01-02"
	StartTime string             `bson:"startTime" json:"startTime"` // "15:04", local to the trainer
	EndTime   string             `bson:"endTime" json:"endTime"`
	Available bool               `bson:"available" json:"available"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// StartsAt resolves the slot's date and start time to a UTC instant.
func (t *TimeSlot) StartsAt() (time.Time, error) {
	return time.Parse("2006-01-02 15:04", t.Date+" "+t.StartTime)
}

// DurationMinutes returns the slot length, or 0 if the times do not parse.
func (t *TimeSlot) DurationMinutes() int {
	start, err := time.Parse("15:04", t.StartTime)
	if err != nil {
		return 0
	}
	end, err := time.Parse("15:04", t.EndTime)
	if err != nil {
		return 0
	}
	return int(end.Sub(start).Minutes())
}
