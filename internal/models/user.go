package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole represents the account type of a user
type UserRole string

const (
	RoleDime   UserRole = "dime"
	RoleDancer UserRole = "dancer"
	RoleFan    UserRole = "fan"
	RoleAdmin  UserRole = "admin"
)

// User represents a user in the system
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username        string             `bson:"username" json:"username"`
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password" json:"-"`
	Role            UserRole           `bson:"role" json:"role"`
	ReferredBy      string             `bson:"referredBy,omitempty" json:"referredBy,omitempty"` // Username of the referrer
	LifetimeTickets int                `bson:"lifetimeTickets" json:"lifetimeTickets"`
	ProfilePhotoURL string             `bson:"profilePhotoUrl,omitempty" json:"profilePhotoUrl,omitempty"`
	City            string             `bson:"city,omitempty" json:"city,omitempty"`
	State           string             `bson:"state,omitempty" json:"state,omitempty"`
	LastActivity    time.Time          `bson:"lastActivity,omitempty" json:"lastActivity,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
