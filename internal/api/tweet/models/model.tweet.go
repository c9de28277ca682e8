// Package tweetmodels chứa model cho domain tweet.
package tweetmodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// Tweet là bài đăng ngắn dạng text của một user.
type Tweet struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Content   string             `json:"content" bson:"content" validate:"required"`
	Owner     primitive.ObjectID `json:"owner" bson:"owner" index:"single:1" validate:"required"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt" index:"single:-1"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
