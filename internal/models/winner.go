package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PayoutRole distinguishes who a winner row pays: the ticket holder who won
// the tier, the referrer attached to the winning entry, or the performer who
// was tipped.
type PayoutRole string

const (
	PayoutRoleGrand     PayoutRole = "GRAND"
	PayoutRoleReferrer  PayoutRole = "REFERRER"
	PayoutRolePerformer PayoutRole = "PERFORMER"
)

const (
	ClaimStatusPending   = "PENDING"
	ClaimStatusClaimed   = "CLAIMED"
	ClaimStatusForfeited = "FORFEITED"
)

// Winner represents a single payout row produced by a drawing
type Winner struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	DrawingID   primitive.ObjectID `bson:"drawingId" json:"drawingId"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Username    string             `bson:"username" json:"username"`
	Tier        string             `bson:"tier" json:"tier"` // FIRST, SECOND, THIRD
	PayoutRole  PayoutRole         `bson:"payoutRole" json:"payoutRole"`
	Amount      float64            `bson:"amount" json:"amount"`
	WinDate     time.Time          `bson:"winDate" json:"winDate"`
	ClaimStatus string             `bson:"claimStatus" json:"claimStatus"`
	ClaimDate   time.Time          `bson:"claimDate,omitempty" json:"claimDate,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
