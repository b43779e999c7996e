package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item is a user-owned dashboard entry stored in the "items" collection.
// UserID holds the owner's id in hex form and never changes after creation.
type Item struct {
	ID          primitive.ObjectID `json:"id"          bson:"_id,omitempty"`
	UserID      string             `json:"userId"      bson:"user_id"`
	Title       string             `json:"title"       bson:"title"`
	Description string             `json:"description" bson:"description"`
	CreatedAt   time.Time          `json:"created_at"  bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"  bson:"updated_at"`
}

// CreateItemRequest is the JSON body for POST /items.
type CreateItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateItemRequest is the JSON body for PATCH /items/{id}. Nil fields were
// omitted from the request and leave the stored value untouched.
type UpdateItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}
