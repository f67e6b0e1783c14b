package mongodb

import (
	"context"
	"fmt"
	"time"

	"notes-block-api/internal/notes/domain/model"
	"notes-block-api/internal/notes/usecase"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoNoteRepository implements repository.NoteRepository using MongoDB.
// All queries filter on both the note ID and the owner's user ID, so a
// note owned by another user never matches.
type MongoNoteRepository struct {
	collection *mongo.Collection
}

// NewMongoNoteRepository creates a new MongoDB note repository and ensures
// the owner index exists.
func NewMongoNoteRepository(db *mongo.Database) (*MongoNoteRepository, error) {
	repo := &MongoNoteRepository{
		collection: db.Collection("notes"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := repo.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create notes owner index: %w", err)
	}

	return repo, nil
}

// Create inserts a new note.
func (r *MongoNoteRepository) Create(ctx context.Context, note *model.Note) error {
	if note == nil {
		return fmt.Errorf("note cannot be nil")
	}

	if _, err := r.collection.InsertOne(ctx, note); err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

// GetByID returns the note with the given ID if userID owns it.
func (r *MongoNoteRepository) GetByID(ctx context.Context, userID, noteID string) (*model.Note, error) {
	var note model.Note
	err := r.collection.FindOne(ctx, r.ownedFilter(userID, noteID)).Decode(&note)
	if err == mongo.ErrNoDocuments {
		return nil, usecase.ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return &note, nil
}

// ListByUser returns every note userID owns, newest first.
func (r *MongoNoteRepository) ListByUser(ctx context.Context, userID string) ([]*model.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer cursor.Close(ctx)

	notes := make([]*model.Note, 0)
	for cursor.Next(ctx) {
		var note model.Note
		if err := cursor.Decode(&note); err != nil {
			return nil, fmt.Errorf("failed to decode note: %w", err)
		}
		notes = append(notes, &note)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error while listing notes: %w", err)
	}
	return notes, nil
}

// Update persists the mutable fields of an owned note.
func (r *MongoNoteRepository) Update(ctx context.Context, note *model.Note) error {
	if note == nil {
		return fmt.Errorf("note cannot be nil")
	}

	update := bson.M{"$set": bson.M{
		"title":       note.Title,
		"description": note.Description,
		"updated_at":  note.UpdatedAt,
	}}
	result, err := r.collection.UpdateOne(ctx, r.ownedFilter(note.UserID, note.ID), update)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	if result.MatchedCount == 0 {
		return usecase.ErrNoteNotFound
	}
	return nil
}

// Delete removes an owned note. Deleting a note that is absent, or owned
// by someone else, reports not found.
func (r *MongoNoteRepository) Delete(ctx context.Context, userID, noteID string) error {
	result, err := r.collection.DeleteOne(ctx, r.ownedFilter(userID, noteID))
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if result.DeletedCount == 0 {
		return usecase.ErrNoteNotFound
	}
	return nil
}

// DeleteAllByUser removes every note userID owns. Zero deletions is not an
// error.
func (r *MongoNoteRepository) DeleteAllByUser(ctx context.Context, userID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete notes: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *MongoNoteRepository) ownedFilter(userID, noteID string) bson.M {
	return bson.M{"_id": noteID, "user_id": userID}
}
