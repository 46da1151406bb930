package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kunalgoyal9/gembot-backend/internal/models"
)

const chatsCollection = "chats"

// ChatStore is the MongoDB-backed chat log.
type ChatStore struct {
	db *mongo.Database
}

func New(db *mongo.Database) *ChatStore {
	return &ChatStore{db: db}
}

// EnsureIndexes configures indexes for the chats collection.
// Called on startup from main after Mongo has connected.
func (s *ChatStore) EnsureIndexes(ctx context.Context) error {
	col := s.db.Collection(chatsCollection)

	// Compound index on (user_id, created_at) to support ordered per-user history.
	model := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "created_at", Value: 1},
		},
		Options: options.Index().SetName("idx_user_created"),
	}

	_, err := col.Indexes().CreateOne(ctx, model)
	return err
}

func (s *ChatStore) SaveMessage(ctx context.Context, msg *models.ChatMessage) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Collection(chatsCollection).InsertOne(ctx, msg)
	return err
}

func (s *ChatStore) ListMessages(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	col := s.db.Collection(chatsCollection)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var msgs []models.ChatMessage
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}
