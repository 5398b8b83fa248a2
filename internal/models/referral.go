package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Referral records that a new user signed up through a referrer's link
type Referral struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ReferrerUsername string             `bson:"referrerUsername" json:"referrerUsername"`
	ReferredUserID   primitive.ObjectID `bson:"referredUserId" json:"referredUserId"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}
