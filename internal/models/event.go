package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventStatus string

const (
	EventStatusActive    EventStatus = "ACTIVE"
	EventStatusCancelled EventStatus = "CANCELLED"
	EventStatusCompleted EventStatus = "COMPLETED"
)

// Event represents a hosted event (stream, meetup) on the platform.
// Hosting at least one event per month is part of the quarterly
// compliance quota for performers.
type Event struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title      string             `bson:"title" json:"title"`
	HostUserID primitive.ObjectID `bson:"hostUserId" json:"hostUserId"`
	StreamURL  string             `bson:"streamUrl,omitempty" json:"streamUrl,omitempty"`
	BannerURL  string             `bson:"bannerUrl,omitempty" json:"bannerUrl,omitempty"`
	StartAt    time.Time          `bson:"startAt" json:"startAt"`
	EndAt      time.Time          `bson:"endAt" json:"endAt"`
	Status     EventStatus        `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
