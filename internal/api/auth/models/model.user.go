// Package models holds the user model of the auth domain.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an admin account of the dashboard. Password holds a bcrypt
// hash and never serializes to JSON.
type User struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email" index:"unique,sparse"`
	Password  string             `json:"-" bson:"password,omitempty"`
	Role      string             `json:"role" bson:"role"`
	IsBlock   bool               `json:"-" bson:"isBlock"`
	BlockNote string             `json:"-" bson:"blockNote"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
