package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawingStatus represents the status of a drawing
type DrawingStatus string

const (
	DrawingStatusScheduled DrawingStatus = "SCHEDULED"
	DrawingStatusExecuting DrawingStatus = "EXECUTING"
	DrawingStatusCompleted DrawingStatus = "COMPLETED"
	DrawingStatusFailed    DrawingStatus = "FAILED"
	DrawingStatusSkipped   DrawingStatus = "SKIPPED"
)

// Drawing represents one scheduled jackpot drawing event
type Drawing struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PoolID         primitive.ObjectID `bson:"poolId" json:"poolId"`
	DrawingTime    time.Time          `bson:"drawingTime" json:"drawingTime"` // Friday 18:00 in the pool's zone
	PoolAmount     float64            `bson:"poolAmount" json:"poolAmount"`   // Pool amount snapshotted at execution
	Status         DrawingStatus      `bson:"status" json:"status"`
	TotalEntrants  int                `bson:"totalEntrants" json:"totalEntrants"`
	TotalTickets   int                `bson:"totalTickets" json:"totalTickets"`
	NumWinners     int                `bson:"numWinners" json:"numWinners"`
	ExecutionStart time.Time          `bson:"executionStart,omitempty" json:"executionStart,omitempty"`
	ExecutionEnd   time.Time          `bson:"executionEnd,omitempty" json:"executionEnd,omitempty"`
	ExecutionLog   []string           `bson:"executionLog,omitempty" json:"executionLog,omitempty"`
	ErrorMessage   string             `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
