package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/dimesonly/platform-backend/internal/models"
	"github.com/dimesonly/platform-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WinnerRepository implements the repositories.WinnerRepository interface
type WinnerRepository struct {
	collection *mongo.Collection
}

// NewWinnerRepository creates a new WinnerRepository
func NewWinnerRepository(db *mongo.Database) repositories.WinnerRepository {
	return &WinnerRepository{
		collection: db.Collection("winners"),
	}
}

// CreateMany inserts all winner rows produced by one drawing
func (r *WinnerRepository) CreateMany(ctx context.Context, winners []*models.Winner) error {
	if len(winners) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, 0, len(winners))
	for _, winner := range winners {
		winner.CreatedAt = now
		winner.UpdatedAt = now
		docs = append(docs, winner)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to create winner records: %w", err)
	}
	return nil
}

// FindByDrawingID finds all winner rows for a drawing
func (r *WinnerRepository) FindByDrawingID(ctx context.Context, drawingID primitive.ObjectID) ([]*models.Winner, error) {
	opts := options.Find().SetSort(bson.M{"tier": 1, "payoutRole": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"drawingId": drawingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding winners for drawing %s: %w", drawingID.Hex(), err)
	}
	defer cursor.Close(ctx)

	var winners []*models.Winner
	if err := cursor.All(ctx, &winners); err != nil {
		return nil, fmt.Errorf("error decoding winners for drawing %s: %w", drawingID.Hex(), err)
	}
	if winners == nil {
		winners = []*models.Winner{}
	}
	return winners, nil
}

// FindByUserID finds all winner rows for a user, newest first
func (r *WinnerRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Winner, error) {
	opts := options.Find().SetSort(bson.M{"winDate": -1})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding winners for user %s: %w", userID.Hex(), err)
	}
	defer cursor.Close(ctx)

	var winners []*models.Winner
	if err := cursor.All(ctx, &winners); err != nil {
		return nil, fmt.Errorf("error decoding winners for user %s: %w", userID.Hex(), err)
	}
	if winners == nil {
		winners = []*models.Winner{}
	}
	return winners, nil
}

// UpdateClaimStatus updates the claim status of one winner row
func (r *WinnerRepository) UpdateClaimStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	update := bson.M{
		"$set": bson.M{
			"claimStatus": status,
			"claimDate":   time.Now(),
			"updatedAt":   time.Now(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update claim status for winner %s: %w", id.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
