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

const messageCollectionName = "messages"

// mongoMessageRepository implements repository.MessageRepository
type mongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a message repository backed by MongoDB.
func NewMongoMessageRepository(db *mongo.Database) repository.MessageRepository {
	return &mongoMessageRepository{
		collection: db.Collection(messageCollectionName),
	}
}

// Create inserts one message.
func (r *mongoMessageRepository) Create(ctx context.Context, msg *domain.Message) (primitive.ObjectID, error) {
	if msg.SenderID == primitive.NilObjectID || msg.RecipientID == primitive.NilObjectID || msg.Body == "" {
		return primitive.NilObjectID, errors.New("message requires senderId, recipientId, and body")
	}

	msg.ID = primitive.NewObjectID()
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, msg)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted message ID")
	}
	return insertedID, nil
}

// GetConversation retrieves all messages between two users, oldest first.
func (r *mongoMessageRepository) GetConversation(ctx context.Context, a, b primitive.ObjectID) ([]domain.Message, error) {
	var messages []domain.Message
	filter := bson.M{"$or": []bson.M{
		{"senderId": a, "recipientId": b},
		{"senderId": b, "recipientId": a},
	}}
	findOptions := options.Find().SetSort(bson.D{{Key: "sentAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkConversationRead stamps every unread message from sender to recipient.
func (r *mongoMessageRepository) MarkConversationRead(ctx context.Context, recipientID, senderID primitive.ObjectID, at time.Time) error {
	filter := bson.M{
		"recipientId": recipientID,
		"senderId":    senderID,
		"readAt":      nil,
	}
	_, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"readAt": at}})
	return err
}

// EnsureMessageIndexes creates necessary indexes for the messages collection.
func EnsureMessageIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "senderId", Value: 1}, {Key: "recipientId", Value: 1}, {Key: "sentAt", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "recipientId", Value: 1}, {Key: "readAt", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
