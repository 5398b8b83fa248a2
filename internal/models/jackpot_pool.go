package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PoolStatus represents the lifecycle state of a jackpot pool
type PoolStatus string

const (
	PoolStatusCollecting      PoolStatus = "COLLECTING"
	PoolStatusCountdownActive PoolStatus = "COUNTDOWN_ACTIVE"
	PoolStatusDrawn           PoolStatus = "DRAWN"
)

// JackpotPool represents the accumulating prize fund for one drawing period.
// Only one pool is active (accepting contributions) at a time; a completed
// drawing marks it DRAWN and a fresh COLLECTING pool is created.
type JackpotPool struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CurrentAmount       float64            `bson:"currentAmount" json:"currentAmount"`
	ActivationThreshold float64            `bson:"activationThreshold" json:"activationThreshold"`
	WeeklyCap           float64            `bson:"weeklyCap" json:"weeklyCap"`
	TimeZone            string             `bson:"timeZone" json:"timeZone"` // IANA zone for the Friday 18:00 drawing
	Status              PoolStatus         `bson:"status" json:"status"`
	PeriodStart         time.Time          `bson:"periodStart" json:"periodStart"`
	DrawnAt             time.Time          `bson:"drawnAt,omitempty" json:"drawnAt,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}
