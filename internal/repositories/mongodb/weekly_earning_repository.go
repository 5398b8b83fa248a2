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

// WeeklyEarningRepository implements the repositories.WeeklyEarningRepository interface
type WeeklyEarningRepository struct {
	collection *mongo.Collection
}

// NewWeeklyEarningRepository creates a new WeeklyEarningRepository
func NewWeeklyEarningRepository(db *mongo.Database) repositories.WeeklyEarningRepository {
	return &WeeklyEarningRepository{
		collection: db.Collection("weekly_earnings"),
	}
}

// Upsert writes the weekly earning record for a (user, weekStart) pair,
// creating it if absent.
func (r *WeeklyEarningRepository) Upsert(ctx context.Context, earning *models.WeeklyEarning) error {
	now := time.Now()
	earning.UpdatedAt = now

	filter := bson.M{
		"userId":    earning.UserID,
		"weekStart": earning.WeekStart,
	}
	update := bson.M{
		"$set": bson.M{
			"referralCount": earning.ReferralCount,
			"photoCount":    earning.PhotoCount,
			"videoCount":    earning.VideoCount,
			"messageCount":  earning.MessageCount,
			"eventCount":    earning.EventCount,
			"tipsTotal":     earning.TipsTotal,
			"updatedAt":     earning.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"userId":    earning.UserID,
			"weekStart": earning.WeekStart,
			"createdAt": now,
		},
	}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert weekly earning: %w", err)
	}
	return nil
}

// FindByUserAndWeek finds the earning record for one user and week
func (r *WeeklyEarningRepository) FindByUserAndWeek(ctx context.Context, userID primitive.ObjectID, weekStart time.Time) (*models.WeeklyEarning, error) {
	var earning models.WeeklyEarning
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "weekStart": weekStart}).Decode(&earning)
	if err != nil {
		return nil, err
	}
	return &earning, nil
}

// FindByUserInWindow finds a user's earning records with weekStart in [start, end)
func (r *WeeklyEarningRepository) FindByUserInWindow(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]*models.WeeklyEarning, error) {
	filter := bson.M{
		"userId": userID,
		"weekStart": bson.M{
			"$gte": start,
			"$lt":  end,
		},
	}
	opts := options.Find().SetSort(bson.M{"weekStart": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding weekly earnings for user %s: %w", userID.Hex(), err)
	}
	defer cursor.Close(ctx)

	var earnings []*models.WeeklyEarning
	if err := cursor.All(ctx, &earnings); err != nil {
		return nil, fmt.Errorf("error decoding weekly earnings for user %s: %w", userID.Hex(), err)
	}
	if earnings == nil {
		earnings = []*models.WeeklyEarning{}
	}
	return earnings, nil
}
