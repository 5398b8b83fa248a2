package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
	PaymentStatusOnHold  = "ON_HOLD"
)

// DeductionLine is one compliance deduction applied to a quarterly payment
type DeductionLine struct {
	Category string  `bson:"category" json:"category"`
	Missed   int     `bson:"missed" json:"missed"`
	Amount   float64 `bson:"amount" json:"amount"`
}

// QuarterlyPayment represents the guaranteed quarterly performer payment
// after compliance deductions. NetAmount is never negative.
type QuarterlyPayment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Quarter         string             `bson:"quarter" json:"quarter"` // e.g. "2026-Q1"
	BaseAmount      float64            `bson:"baseAmount" json:"baseAmount"`
	Deductions      []DeductionLine    `bson:"deductions" json:"deductions"`
	TotalDeductions float64            `bson:"totalDeductions" json:"totalDeductions"`
	NetAmount       float64            `bson:"netAmount" json:"netAmount"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
