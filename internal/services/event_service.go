package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dimesonly/platform-backend/internal/models"
	"github.com/dimesonly/platform-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure EventServiceImpl implements EventService
var _ EventService = (*EventServiceImpl)(nil)

// EventServiceImpl manages hosted events. Cancelled events do not count
// toward the monthly hosting quota.
type EventServiceImpl struct {
	eventRepo repositories.EventRepository
	userRepo  repositories.UserRepository
}

// NewEventService creates a new EventServiceImpl
func NewEventService(eventRepo repositories.EventRepository, userRepo repositories.UserRepository) *EventServiceImpl {
	return &EventServiceImpl{
		eventRepo: eventRepo,
		userRepo:  userRepo,
	}
}

// CreateEvent validates and persists a new event
func (s *EventServiceImpl) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	if event.Title == "" {
		return nil, fmt.Errorf("event title is required")
	}
	if event.StartAt.IsZero() || event.EndAt.IsZero() {
		return nil, fmt.Errorf("event start and end times are required")
	}
	if !event.EndAt.After(event.StartAt) {
		return nil, fmt.Errorf("event end time must be after start time")
	}
	if _, err := s.userRepo.FindByID(ctx, event.HostUserID); err != nil {
		return nil, fmt.Errorf("host user not found: %w", err)
	}

	now := time.Now()
	event.Status = models.EventStatusActive
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	slog.Info("Event created", "eventId", event.ID, "hostUserId", event.HostUserID, "startAt", event.StartAt)
	return event, nil
}

// GetEventByID retrieves an event by its ID
func (s *EventServiceImpl) GetEventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("event not found: %w", err)
	}
	return event, nil
}

// GetUpcomingEvents lists active events that have not started yet
func (s *EventServiceImpl) GetUpcomingEvents(ctx context.Context, page, limit int) ([]*models.Event, error) {
	events, err := s.eventRepo.FindUpcoming(ctx, time.Now(), page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve upcoming events: %w", err)
	}
	return events, nil
}

// UpdateEvent updates an event's editable fields
func (s *EventServiceImpl) UpdateEvent(ctx context.Context, event *models.Event) error {
	existing, err := s.eventRepo.FindByID(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("event not found: %w", err)
	}
	if existing.Status == models.EventStatusCancelled {
		return fmt.Errorf("cannot update a cancelled event")
	}

	// Host and creation time are immutable
	event.HostUserID = existing.HostUserID
	event.CreatedAt = existing.CreatedAt
	event.UpdatedAt = time.Now()

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

// CancelEvent marks an event cancelled so it no longer counts toward
// the hosting quota
func (s *EventServiceImpl) CancelEvent(ctx context.Context, id primitive.ObjectID) error {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("event not found: %w", err)
	}
	if event.Status == models.EventStatusCancelled {
		return nil
	}

	event.Status = models.EventStatusCancelled
	event.UpdatedAt = time.Now()

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return fmt.Errorf("failed to cancel event: %w", err)
	}

	slog.Info("Event cancelled", "eventId", id)
	return nil
}
