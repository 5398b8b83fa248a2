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

// EventRepository implements the repositories.EventRepository interface
type EventRepository struct {
	collection *mongo.Collection
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *mongo.Database) repositories.EventRepository {
	return &EventRepository{
		collection: db.Collection("events"),
	}
}

// Create creates a new event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	result, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid
	}
	return nil
}

// FindByID finds an event by ID
func (r *EventRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var event models.Event
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByHostInWindow finds a host's events with startAt in [start, end).
// Cancelled events do not count toward compliance quotas.
func (r *EventRepository) FindByHostInWindow(ctx context.Context, hostUserID primitive.ObjectID, start, end time.Time) ([]*models.Event, error) {
	filter := bson.M{
		"hostUserId": hostUserID,
		"status":     bson.M{"$ne": models.EventStatusCancelled},
		"startAt": bson.M{
			"$gte": start,
			"$lt":  end,
		},
	}
	opts := options.Find().SetSort(bson.M{"startAt": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding events for host %s: %w", hostUserID.Hex(), err)
	}
	defer cursor.Close(ctx)

	var events []*models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("error decoding events for host %s: %w", hostUserID.Hex(), err)
	}
	if events == nil {
		events = []*models.Event{}
	}
	return events, nil
}

// FindUpcoming finds active events starting after now, soonest first
func (r *EventRepository) FindUpcoming(ctx context.Context, now time.Time, page, limit int) ([]*models.Event, error) {
	filter := bson.M{
		"status":  models.EventStatusActive,
		"startAt": bson.M{"$gte": now},
	}
	opts := options.Find().
		SetSort(bson.M{"startAt": 1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding upcoming events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("error decoding upcoming events: %w", err)
	}
	if events == nil {
		events = []*models.Event{}
	}
	return events, nil
}

// Update replaces an event document
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": event.ID}, event)
	if err != nil {
		return fmt.Errorf("failed to update event %s: %w", event.ID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes an event
func (r *EventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id.Hex(), err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
