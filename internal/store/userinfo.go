package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/itemboard/backend/internal/models"
)

const userInfoCollection = "user_information"

// UserInfoStore handles the optional per-user information extension.
type UserInfoStore struct {
	col *mongo.Collection
}

func NewUserInfoStore(db *mongo.Database) *UserInfoStore {
	return &UserInfoStore{col: db.Collection(userInfoCollection)}
}

// GetByUser returns the extension record for a user, or (nil, nil) when
// none has been created yet.
func (s *UserInfoStore) GetByUser(ctx context.Context, userID string) (*models.UserInformation, error) {
	var info models.UserInformation
	err := s.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&info)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user information: %w", err)
	}
	return &info, nil
}

// Upsert replaces the user's extension fields, creating the record on the
// first write. The unique user_id index keeps concurrent first writes from
// producing two records.
func (s *UserInfoStore) Upsert(ctx context.Context, userID string, req models.UserInformationRequest) (*models.UserInformation, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"cnic":          req.CNIC,
			"mobile_number": req.MobileNumber,
			"whatsapp":      req.Whatsapp,
			"facebook_url":  req.FacebookURL,
			"instagram_url": req.InstagramURL,
			"about":         req.About,
			"updated_at":    now,
		},
		"$setOnInsert": bson.M{
			"user_id":    userID,
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var info models.UserInformation
	if err := s.col.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&info); err != nil {
		return nil, fmt.Errorf("upsert user information: %w", err)
	}
	return &info, nil
}
