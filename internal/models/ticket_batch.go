package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketBatch is a per-user, per-period snapshot of earned drawing tickets.
// It is derived from the tip ledger on demand and never authoritative; the
// ledger is always recomputed before a drawing executes.
type TicketBatch struct {
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Username    string             `bson:"username" json:"username"`
	PeriodStart time.Time          `bson:"periodStart" json:"periodStart"`
	PeriodEnd   time.Time          `bson:"periodEnd" json:"periodEnd"`
	TicketCount int                `bson:"ticketCount" json:"ticketCount"`
}
