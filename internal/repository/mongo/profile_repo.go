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

const clientProfileCollectionName = "client_profiles"

// mongoClientProfileRepository implements repository.ClientProfileRepository
type mongoClientProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoClientProfileRepository creates a client profile repository backed by MongoDB.
func NewMongoClientProfileRepository(db *mongo.Database) repository.ClientProfileRepository {
	return &mongoClientProfileRepository{
		collection: db.Collection(clientProfileCollectionName),
	}
}

// Upsert writes the profile keyed by clientId, creating it on first save.
func (r *mongoClientProfileRepository) Upsert(ctx context.Context, profile *domain.ClientProfile) error {
	if profile.ClientID == primitive.NilObjectID {
		return errors.New("client profile requires clientId")
	}

	now := time.Now().UTC()
	profile.UpdatedAt = now

	filter := bson.M{"clientId": profile.ClientID}
	update := bson.M{
		"$set": bson.M{
			"age":                  profile.Age,
			"heightCm":             profile.HeightCm,
			"weightKg":             profile.WeightKg,
			"gender":               profile.Gender,
			"location":             profile.Location,
			"goals":                profile.Goals,
			"trainingStyle":        profile.TrainingStyle,
			"frequency":            profile.Frequency,
			"activityLevel":        profile.ActivityLevel,
			"equipment":            profile.Equipment,
			"motivation":           profile.Motivation,
			"discoverable":         profile.Discoverable,
			"completionPercentage": profile.CompletionPercentage,
			"updatedAt":            profile.UpdatedAt,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetByClientID retrieves a client's profile.
func (r *mongoClientProfileRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) (*domain.ClientProfile, error) {
	var profile domain.ClientProfile
	err := r.collection.FindOne(ctx, bson.M{"clientId": clientID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// EnsureClientProfileIndexes creates necessary indexes for the client_profiles collection.
func EnsureClientProfileIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "discoverable", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
