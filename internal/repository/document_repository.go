package repository

import (
	"context"
	"errors"
	"fmt"

	"chronoseal-server/internal/domain"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

type DocumentRepository interface {
	Insert(ctx context.Context, doc *domain.Document) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Document, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Document, error)
	Delete(ctx context.Context, id string) error
}

type documentRepository struct {
	client *mongo.Client
	dbName string
}

func NewDocumentRepository(client *mongo.Client, dbName string) DocumentRepository {
	return &documentRepository{
		client: client,
		dbName: dbName,
	}
}

func (r *documentRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection("documents")
}

// Insert assigns the record identifier. Callers receive the id from the
// return value, not from the passed document.
func (r *documentRepository) Insert(ctx context.Context, doc *domain.Document) (string, error) {
	doc.ID = uuid.New().String()

	if _, err := r.collection().InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	return doc.ID, nil
}

func (r *documentRepository) FindByID(ctx context.Context, id string) (*domain.Document, error) {
	var doc domain.Document
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find document: %w", err)
	}

	return &doc, nil
}

func (r *documentRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection().Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*domain.Document
	for cursor.Next(ctx) {
		var doc domain.Document
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		docs = append(docs, &doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return docs, nil
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
