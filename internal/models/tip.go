package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tip represents a monetary gift from one user to a performer.
// Tips are immutable once recorded; corrections happen by compensating
// entries in the payment system, never by editing the row.
type Tip struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TipperID           primitive.ObjectID `bson:"tipperId" json:"tipperId"`
	TippedUserID       primitive.ObjectID `bson:"tippedUserId" json:"tippedUserId"`
	Amount             float64            `bson:"amount" json:"amount"`
	ReferredByUsername string             `bson:"referredByUsername,omitempty" json:"referredByUsername,omitempty"`
	PaymentRef         string             `bson:"paymentRef" json:"paymentRef"`
	TicketCount        int                `bson:"ticketCount" json:"ticketCount"` // Whole tickets earned by this tip
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}
