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

const trainerProfileCollectionName = "trainer_profiles"

// mongoTrainerProfileRepository implements repository.TrainerProfileRepository
type mongoTrainerProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainerProfileRepository creates a trainer directory repository backed by MongoDB.
func NewMongoTrainerProfileRepository(db *mongo.Database) repository.TrainerProfileRepository {
	return &mongoTrainerProfileRepository{
		collection: db.Collection(trainerProfileCollectionName),
	}
}

// Upsert writes the directory entry for a trainer, keyed by their user ID.
func (r *mongoTrainerProfileRepository) Upsert(ctx context.Context, profile *domain.TrainerProfile) error {
	if profile.ID == primitive.NilObjectID {
		return errors.New("trainer profile requires the trainer's user ID")
	}

	now := time.Now().UTC()
	profile.UpdatedAt = now

	filter := bson.M{"_id": profile.ID}
	update := bson.M{
		"$set": bson.M{
			"name":       profile.Name,
			"specialty":  profile.Specialty,
			"hourlyRate": profile.HourlyRate,
			"rating":     profile.Rating,
			"bio":        profile.Bio,
			"updatedAt":  profile.UpdatedAt,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetByID retrieves one directory entry.
func (r *mongoTrainerProfileRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainerProfile, error) {
	var profile domain.TrainerProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// List returns the full directory, alphabetical by name.
func (r *mongoTrainerProfileRepository) List(ctx context.Context) ([]domain.TrainerProfile, error) {
	var profiles []domain.TrainerProfile
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}
