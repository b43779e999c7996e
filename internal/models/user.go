package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account record stored in the "users" collection. The email is
// lower-cased and trimmed before every write and lookup; a unique index on
// it makes duplicates a store-level failure rather than a handler race.
type User struct {
	ID           primitive.ObjectID `json:"id"            bson:"_id,omitempty"`
	FullName     string             `json:"fullName"      bson:"full_name"`
	Email        string             `json:"email"         bson:"email"`
	PasswordHash string             `json:"-"             bson:"password_hash"`
	CreatedAt    time.Time          `json:"created_at"    bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"    bson:"updated_at"`
}

// UserInformation is the optional one-to-one extension of a User holding
// contact details and social links. It is created lazily on first PATCH.
type UserInformation struct {
	ID           primitive.ObjectID `json:"id"                      bson:"_id,omitempty"`
	UserID       string             `json:"userId"                  bson:"user_id"`
	CNIC         int64              `json:"cnic,omitempty"          bson:"cnic,omitempty"`
	MobileNumber int64              `json:"mobileNumber,omitempty"  bson:"mobile_number,omitempty"`
	Whatsapp     int64              `json:"whatsapp,omitempty"      bson:"whatsapp,omitempty"`
	FacebookURL  string             `json:"facebookUrl,omitempty"   bson:"facebook_url,omitempty"`
	InstagramURL string             `json:"instagramUrl,omitempty"  bson:"instagram_url,omitempty"`
	About        string             `json:"about,omitempty"         bson:"about,omitempty"`
	CreatedAt    time.Time          `json:"created_at"              bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"              bson:"updated_at"`
}

// RegisterRequest is the JSON body for POST /register.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the JSON body for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the JSON body for PATCH /users/profile.
type UpdateProfileRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// ChangePasswordRequest is the JSON body for PATCH /users/password.
type ChangePasswordRequest struct {
	Current string `json:"current"`
	NewPass string `json:"newPass"`
}

// UserInformationRequest is the JSON body for PATCH /users/information. The
// whole extension record is replaced on each call, matching the dashboard
// form that always submits every field.
type UserInformationRequest struct {
	CNIC         int64  `json:"cnic"`
	MobileNumber int64  `json:"mobileNumber"`
	Whatsapp     int64  `json:"whatsapp"`
	FacebookURL  string `json:"facebookUrl"`
	InstagramURL string `json:"instagramUrl"`
	About        string `json:"about"`
}
