package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/awright222/fitiva/internal/domain"
	"github.com/awright222/fitiva/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const timeSlotCollectionName = "time_slots"

// mongoTimeSlotRepository implements repository.TimeSlotRepository
type mongoTimeSlotRepository struct {
	collection *mongo.Collection
}

// NewMongoTimeSlotRepository creates a time slot repository backed by MongoDB.
func NewMongoTimeSlotRepository(db *mongo.Database) repository.TimeSlotRepository {
	return &mongoTimeSlotRepository{
		collection: db.Collection(timeSlotCollectionName),
	}
}

// Create inserts a new availability slot.
func (r *mongoTimeSlotRepository) Create(ctx context.Context, slot *domain.TimeSlot) (primitive.ObjectID, error) {
	if slot.TrainerID == primitive.NilObjectID || slot.Date == "" || slot.StartTime == "" || slot.EndTime == "" {
		return primitive.NilObjectID, errors.New("time slot requires trainerId, date, startTime, and endTime")
	}

	slot.ID = primitive.NewObjectID()
	slot.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, slot)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted slot ID")
	}
	return insertedID, nil
}

// GetByID retrieves one slot.
func (r *mongoTimeSlotRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TimeSlot, error) {
	var slot domain.TimeSlot
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &slot, nil
}

// GetByTrainerAndDate retrieves a trainer's slots for one calendar date,
// ordered by start time.
func (r *mongoTimeSlotRepository) GetByTrainerAndDate(ctx context.Context, trainerID primitive.ObjectID, date string) ([]domain.TimeSlot, error) {
	var slots []domain.TimeSlot
	filter := bson.M{"trainerId": trainerID, "date": date}
	findOptions := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

// SetAvailable flips a slot's availability flag.
func (r *mongoTimeSlotRepository) SetAvailable(ctx context.Context, id primitive.ObjectID, available bool) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"available": available}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTimeSlotIndexes creates necessary indexes for the time_slots collection.
func EnsureTimeSlotIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}, {Key: "date", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "available", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
