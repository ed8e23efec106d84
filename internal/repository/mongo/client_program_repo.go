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

const clientProgramCollectionName = "client_programs"

// mongoClientProgramRepository implements repository.ClientProgramRepository
type mongoClientProgramRepository struct {
	collection *mongo.Collection
}

// NewMongoClientProgramRepository creates a client-program repository backed by MongoDB.
func NewMongoClientProgramRepository(db *mongo.Database) repository.ClientProgramRepository {
	return &mongoClientProgramRepository{
		collection: db.Collection(clientProgramCollectionName),
	}
}

// Create inserts a new client-program instance starting on day 1 at 0%.
func (r *mongoClientProgramRepository) Create(ctx context.Context, cp *domain.ClientProgram) (primitive.ObjectID, error) {
	if cp.ClientID == primitive.NilObjectID || cp.ProgramID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("client program requires clientId and programId")
	}

	cp.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	cp.AssignedAt = now
	cp.UpdatedAt = now
	if cp.CurrentDay == 0 {
		cp.CurrentDay = 1
	}

	result, err := r.collection.InsertOne(ctx, cp)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted client program ID")
	}
	return insertedID, nil
}

// GetByID retrieves one client-program.
func (r *mongoClientProgramRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ClientProgram, error) {
	var cp domain.ClientProgram
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &cp, nil
}

// GetByClientID retrieves all program instances assigned to a client.
func (r *mongoClientProgramRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.ClientProgram, error) {
	var cps []domain.ClientProgram
	filter := bson.M{"clientId": clientID}
	findOptions := options.Find().SetSort(bson.D{{Key: "assignedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &cps); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return cps, nil
}

// UpdateProgress persists current day and completion percentage.
func (r *mongoClientProgramRepository) UpdateProgress(ctx context.Context, id primitive.ObjectID, currentDay, completionPercentage int) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"currentDay":           currentDay,
			"completionPercentage": completionPercentage,
			"updatedAt":            time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureClientProgramIndexes creates necessary indexes for the client_programs collection.
func EnsureClientProgramIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "assignedAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
