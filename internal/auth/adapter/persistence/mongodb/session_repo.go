package mongodb

import (
	"context"
	"errors"
	"time"

	"notes-block-api/internal/auth/domain/model"
	"notes-block-api/internal/auth/usecase"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSessionStore implements the SessionStore interface using MongoDB.
//
// Expiry is intentionally NOT enforced with a TTL index: the store hands
// back expired-but-unswept sessions as-is and sweeping stays an explicit
// operation owned by the session manager.
type MongoSessionStore struct {
	collection *mongo.Collection
}

// NewMongoSessionStore creates a new MongoDB session store and ensures its
// indexes.
func NewMongoSessionStore(db *mongo.Database) (*MongoSessionStore, error) {
	store := &MongoSessionStore{
		collection: db.Collection("sessions"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}},
	}
	if _, err := store.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return nil, err
	}

	return store, nil
}

// Put persists a session record
func (s *MongoSessionStore) Put(ctx context.Context, session *model.Session) error {
	if session == nil {
		return errors.New("session cannot be nil")
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	_, err := s.collection.InsertOne(ctx, session)
	return err
}

// GetByID retrieves a session by ID. An expired record that has not been
// swept yet is still returned.
func (s *MongoSessionStore) GetByID(ctx context.Context, id string) (*model.Session, error) {
	if id == "" {
		return nil, usecase.ErrSessionNotFound
	}

	var session model.Session
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetByUser retrieves all sessions owned by a user
func (s *MongoSessionStore) GetByUser(ctx context.Context, userID string) ([]*model.Session, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sessions := make([]*model.Session, 0)
	for cursor.Next(ctx) {
		var session model.Session
		if err := cursor.Decode(&session); err != nil {
			return nil, err
		}
		sessions = append(sessions, &session)
	}
	return sessions, cursor.Err()
}

// UpdateExpiry sets a new expiry on a session. Updating a missing session
// is a no-op.
func (s *MongoSessionStore) UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"expires_at": expiresAt}},
	)
	return err
}

// DeleteByID deletes one session. Deleting a missing session is a no-op.
func (s *MongoSessionStore) DeleteByID(ctx context.Context, id string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DeleteByUser deletes all sessions owned by a user
func (s *MongoSessionStore) DeleteByUser(ctx context.Context, userID string) error {
	_, err := s.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

// DeleteExpired deletes every session whose expiry is at or before now and
// returns how many were removed.
func (s *MongoSessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := s.collection.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": now}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
