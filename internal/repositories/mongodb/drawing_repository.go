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

// DrawingRepository implements the repositories.DrawingRepository interface
type DrawingRepository struct {
	collection *mongo.Collection
}

// NewDrawingRepository creates a new DrawingRepository
func NewDrawingRepository(db *mongo.Database) repositories.DrawingRepository {
	return &DrawingRepository{
		collection: db.Collection("drawings"),
	}
}

// Create creates a new drawing
func (r *DrawingRepository) Create(ctx context.Context, drawing *models.Drawing) error {
	now := time.Now()
	drawing.CreatedAt = now
	drawing.UpdatedAt = now
	result, err := r.collection.InsertOne(ctx, drawing)
	if err != nil {
		return fmt.Errorf("failed to create drawing: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		drawing.ID = oid
	}
	return nil
}

// FindByID finds a drawing by ID
func (r *DrawingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Drawing, error) {
	var drawing models.Drawing
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&drawing)
	if err != nil {
		return nil, err
	}
	return &drawing, nil
}

// FindByStatus finds drawings with a given status, soonest first
func (r *DrawingRepository) FindByStatus(ctx context.Context, status models.DrawingStatus) ([]*models.Drawing, error) {
	opts := options.Find().SetSort(bson.M{"drawingTime": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding drawings by status %s: %w", status, err)
	}
	defer cursor.Close(ctx)

	var drawings []*models.Drawing
	if err := cursor.All(ctx, &drawings); err != nil {
		return nil, fmt.Errorf("error decoding drawings by status %s: %w", status, err)
	}
	if drawings == nil {
		drawings = []*models.Drawing{}
	}
	return drawings, nil
}

// FindByDateRange finds drawings with drawingTime in [start, end)
func (r *DrawingRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*models.Drawing, error) {
	filter := bson.M{
		"drawingTime": bson.M{
			"$gte": start,
			"$lt":  end,
		},
	}
	opts := options.Find().SetSort(bson.M{"drawingTime": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding drawings by date range: %w", err)
	}
	defer cursor.Close(ctx)

	var drawings []*models.Drawing
	if err := cursor.All(ctx, &drawings); err != nil {
		return nil, fmt.Errorf("error decoding drawings by date range: %w", err)
	}
	if drawings == nil {
		drawings = []*models.Drawing{}
	}
	return drawings, nil
}

// Update replaces a drawing document
func (r *DrawingRepository) Update(ctx context.Context, drawing *models.Drawing) error {
	drawing.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": drawing.ID}, drawing)
	if err != nil {
		return fmt.Errorf("failed to update drawing %s: %w", drawing.ID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
