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

// QuarterlyPaymentRepository implements the repositories.QuarterlyPaymentRepository interface
type QuarterlyPaymentRepository struct {
	collection *mongo.Collection
}

// NewQuarterlyPaymentRepository creates a new QuarterlyPaymentRepository
func NewQuarterlyPaymentRepository(db *mongo.Database) repositories.QuarterlyPaymentRepository {
	return &QuarterlyPaymentRepository{
		collection: db.Collection("quarterly_payments"),
	}
}

// Create creates a new quarterly payment record
func (r *QuarterlyPaymentRepository) Create(ctx context.Context, payment *models.QuarterlyPayment) error {
	now := time.Now()
	payment.CreatedAt = now
	payment.UpdatedAt = now
	result, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		return fmt.Errorf("failed to create quarterly payment: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		payment.ID = oid
	}
	return nil
}

// FindByUserAndQuarter finds a user's payment record for one quarter
func (r *QuarterlyPaymentRepository) FindByUserAndQuarter(ctx context.Context, userID primitive.ObjectID, quarter string) (*models.QuarterlyPayment, error) {
	var payment models.QuarterlyPayment
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "quarter": quarter}).Decode(&payment)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindByQuarter finds all payment records for one quarter
func (r *QuarterlyPaymentRepository) FindByQuarter(ctx context.Context, quarter string) ([]*models.QuarterlyPayment, error) {
	opts := options.Find().SetSort(bson.M{"netAmount": -1})

	cursor, err := r.collection.Find(ctx, bson.M{"quarter": quarter}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding payments for quarter %s: %w", quarter, err)
	}
	defer cursor.Close(ctx)

	var payments []*models.QuarterlyPayment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("error decoding payments for quarter %s: %w", quarter, err)
	}
	if payments == nil {
		payments = []*models.QuarterlyPayment{}
	}
	return payments, nil
}

// Update replaces a payment record
func (r *QuarterlyPaymentRepository) Update(ctx context.Context, payment *models.QuarterlyPayment) error {
	payment.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": payment.ID}, payment)
	if err != nil {
		return fmt.Errorf("failed to update quarterly payment %s: %w", payment.ID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
