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

// JackpotPoolRepository implements the repositories.JackpotPoolRepository interface
type JackpotPoolRepository struct {
	collection *mongo.Collection
}

// NewJackpotPoolRepository creates a new JackpotPoolRepository
func NewJackpotPoolRepository(db *mongo.Database) repositories.JackpotPoolRepository {
	return &JackpotPoolRepository{
		collection: db.Collection("jackpot_pools"),
	}
}

// Create creates a new jackpot pool
func (r *JackpotPoolRepository) Create(ctx context.Context, pool *models.JackpotPool) error {
	now := time.Now()
	pool.CreatedAt = now
	pool.UpdatedAt = now
	result, err := r.collection.InsertOne(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to create jackpot pool: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		pool.ID = oid
	}
	return nil
}

// FindByID finds a jackpot pool by ID
func (r *JackpotPoolRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.JackpotPool, error) {
	var pool models.JackpotPool
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&pool)
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

// FindActive finds the single pool currently accepting contributions.
// Returns mongo.ErrNoDocuments when no pool is active.
func (r *JackpotPoolRepository) FindActive(ctx context.Context) (*models.JackpotPool, error) {
	filter := bson.M{
		"status": bson.M{"$in": []models.PoolStatus{models.PoolStatusCollecting, models.PoolStatusCountdownActive}},
	}
	opts := options.FindOne().SetSort(bson.M{"createdAt": -1})

	var pool models.JackpotPool
	err := r.collection.FindOne(ctx, filter, opts).Decode(&pool)
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

// Update replaces a pool document
func (r *JackpotPoolRepository) Update(ctx context.Context, pool *models.JackpotPool) error {
	pool.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": pool.ID}, pool)
	if err != nil {
		return fmt.Errorf("failed to update jackpot pool %s: %w", pool.ID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// FindAll returns pools newest first, paginated
func (r *JackpotPoolRepository) FindAll(ctx context.Context, page, limit int) ([]*models.JackpotPool, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding jackpot pools: %w", err)
	}
	defer cursor.Close(ctx)

	var pools []*models.JackpotPool
	if err := cursor.All(ctx, &pools); err != nil {
		return nil, fmt.Errorf("error decoding jackpot pools: %w", err)
	}
	if pools == nil {
		pools = []*models.JackpotPool{}
	}
	return pools, nil
}
