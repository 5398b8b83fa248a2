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

// TipRepository implements the repositories.TipRepository interface
type TipRepository struct {
	collection *mongo.Collection
}

// NewTipRepository creates a new TipRepository
func NewTipRepository(db *mongo.Database) repositories.TipRepository {
	return &TipRepository{
		collection: db.Collection("tips"),
	}
}

// Create records a new tip. Tips are immutable once written.
func (r *TipRepository) Create(ctx context.Context, tip *models.Tip) error {
	if tip.CreatedAt.IsZero() {
		tip.CreatedAt = time.Now()
	}
	result, err := r.collection.InsertOne(ctx, tip)
	if err != nil {
		return fmt.Errorf("failed to create tip: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		tip.ID = oid
	}
	return nil
}

// FindByID finds a tip by ID
func (r *TipRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tip, error) {
	var tip models.Tip
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tip)
	if err != nil {
		return nil, err
	}
	return &tip, nil
}

// FindByTippedUser finds tips received by a user, newest first
func (r *TipRepository) FindByTippedUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Tip, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"tippedUserId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding tips for user %s: %w", userID.Hex(), err)
	}
	defer cursor.Close(ctx)

	var tips []*models.Tip
	if err := cursor.All(ctx, &tips); err != nil {
		return nil, fmt.Errorf("error decoding tips for user %s: %w", userID.Hex(), err)
	}
	if tips == nil {
		tips = []*models.Tip{}
	}
	return tips, nil
}

// FindByTipperInWindow finds tips sent by a user with createdAt in [start, end)
func (r *TipRepository) FindByTipperInWindow(ctx context.Context, tipperID primitive.ObjectID, start, end time.Time) ([]*models.Tip, error) {
	filter := bson.M{
		"tipperId": tipperID,
		"createdAt": bson.M{
			"$gte": start,
			"$lt":  end,
		},
	}
	return r.findWindow(ctx, filter)
}

// FindByTippedUserInWindow finds tips received by a user with createdAt in [start, end)
func (r *TipRepository) FindByTippedUserInWindow(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]*models.Tip, error) {
	filter := bson.M{
		"tippedUserId": userID,
		"createdAt": bson.M{
			"$gte": start,
			"$lt":  end,
		},
	}
	return r.findWindow(ctx, filter)
}

func (r *TipRepository) findWindow(ctx context.Context, filter bson.M) ([]*models.Tip, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding tips in window: %w", err)
	}
	defer cursor.Close(ctx)

	var tips []*models.Tip
	if err := cursor.All(ctx, &tips); err != nil {
		return nil, fmt.Errorf("error decoding tips in window: %w", err)
	}
	if tips == nil {
		tips = []*models.Tip{}
	}
	return tips, nil
}

// FindByDateRange finds all tips with createdAt in [start, end)
func (r *TipRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*models.Tip, error) {
	filter := bson.M{
		"createdAt": bson.M{
			"$gte": start,
			"$lt":  end,
		},
	}
	opts := options.Find().SetSort(bson.M{"createdAt": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding tips by date range: %w", err)
	}
	defer cursor.Close(ctx)

	var tips []*models.Tip
	if err := cursor.All(ctx, &tips); err != nil {
		return nil, fmt.Errorf("error decoding tips by date range: %w", err)
	}
	if tips == nil {
		tips = []*models.Tip{}
	}
	return tips, nil
}

// FindByPaymentRef finds a tip by its payment transaction reference
func (r *TipRepository) FindByPaymentRef(ctx context.Context, paymentRef string) (*models.Tip, error) {
	var tip models.Tip
	err := r.collection.FindOne(ctx, bson.M{"paymentRef": paymentRef}).Decode(&tip)
	if err != nil {
		return nil, err
	}
	return &tip, nil
}

// Count returns the total number of tips
func (r *TipRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
