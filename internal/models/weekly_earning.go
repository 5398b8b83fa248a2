package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeeklyEarning records a performer's activity counts and tip income for one
// week. Activity counts feed the quarterly compliance deductions.
type WeeklyEarning struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	WeekStart     time.Time          `bson:"weekStart" json:"weekStart"` // Monday 00:00 UTC
	ReferralCount int                `bson:"referralCount" json:"referralCount"`
	PhotoCount    int                `bson:"photoCount" json:"photoCount"`
	VideoCount    int                `bson:"videoCount" json:"videoCount"`
	MessageCount  int                `bson:"messageCount" json:"messageCount"`
	EventCount    int                `bson:"eventCount" json:"eventCount"`
	TipsTotal     float64            `bson:"tipsTotal" json:"tipsTotal"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
