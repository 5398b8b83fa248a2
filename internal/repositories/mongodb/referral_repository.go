package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/dimesonly/platform-backend/internal/models"
	"github.com/dimesonly/platform-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReferralRepository implements the repositories.ReferralRepository interface
type ReferralRepository struct {
	collection *mongo.Collection
}

// NewReferralRepository creates a new ReferralRepository
func NewReferralRepository(db *mongo.Database) repositories.ReferralRepository {
	return &ReferralRepository{
		collection: db.Collection("referrals"),
	}
}

// Create records a new referral
func (r *ReferralRepository) Create(ctx context.Context, referral *models.Referral) error {
	if referral.CreatedAt.IsZero() {
		referral.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, referral)
	if err != nil {
		return fmt.Errorf("failed to create referral: %w", err)
	}
	return nil
}

// FindByReferrer finds referrals credited to a referrer, newest first
func (r *ReferralRepository) FindByReferrer(ctx context.Context, referrerUsername string, page, limit int) ([]*models.Referral, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"referrerUsername": referrerUsername}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding referrals for %s: %w", referrerUsername, err)
	}
	defer cursor.Close(ctx)

	var referrals []*models.Referral
	if err := cursor.All(ctx, &referrals); err != nil {
		return nil, fmt.Errorf("error decoding referrals for %s: %w", referrerUsername, err)
	}
	if referrals == nil {
		referrals = []*models.Referral{}
	}
	return referrals, nil
}

// CountByReferrerInWindow counts referrals credited to a referrer with
// createdAt in [start, end)
func (r *ReferralRepository) CountByReferrerInWindow(ctx context.Context, referrerUsername string, start, end time.Time) (int64, error) {
	filter := bson.M{
		"referrerUsername": referrerUsername,
		"createdAt": bson.M{
			"$gte": start,
			"$lt":  end,
		},
	}
	return r.collection.CountDocuments(ctx, filter)
}
