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

const exerciseLogCollectionName = "exercise_logs"

// mongoExerciseLogRepository implements repository.ExerciseLogRepository
type mongoExerciseLogRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseLogRepository creates an exercise log repository backed by MongoDB.
func NewMongoExerciseLogRepository(db *mongo.Database) repository.ExerciseLogRepository {
	return &mongoExerciseLogRepository{
		collection: db.Collection(exerciseLogCollectionName),
	}
}

// Create inserts one completion event. There is deliberately no duplicate
// guard here: logs are an append-only history.
func (r *mongoExerciseLogRepository) Create(ctx context.Context, log *domain.ExerciseLog) (primitive.ObjectID, error) {
	if log.ClientProgramID == primitive.NilObjectID || log.ProgramExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("exercise log requires clientProgramId and programExerciseId")
	}

	log.ID = primitive.NewObjectID()
	if log.CompletedAt.IsZero() {
		log.CompletedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted log ID")
	}
	return insertedID, nil
}

// GetByClientProgramID retrieves every log row for a client-program,
// oldest first.
func (r *mongoExerciseLogRepository) GetByClientProgramID(ctx context.Context, clientProgramID primitive.ObjectID) ([]domain.ExerciseLog, error) {
	var logs []domain.ExerciseLog
	filter := bson.M{"clientProgramId": clientProgramID}
	findOptions := options.Find().SetSort(bson.D{{Key: "completedAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// CountForExerciseSince counts completion events for one program-exercise at
// or after the given instant.
func (r *mongoExerciseLogRepository) CountForExerciseSince(ctx context.Context, clientProgramID, programExerciseID primitive.ObjectID, since time.Time) (int64, error) {
	filter := bson.M{
		"clientProgramId":   clientProgramID,
		"programExerciseId": programExerciseID,
		"completedAt":       bson.M{"$gte": since},
	}
	return r.collection.CountDocuments(ctx, filter)
}

// EnsureExerciseLogIndexes creates necessary indexes for the exercise_logs collection.
func EnsureExerciseLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clientProgramId", Value: 1}, {Key: "completedAt", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "clientProgramId", Value: 1}, {Key: "programExerciseId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
