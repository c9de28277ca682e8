// Package commentmodels chứa model cho domain comment.
package commentmodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// Comment là bình luận gắn với một video.
type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Content   string             `json:"content" bson:"content" validate:"required"`
	Video     primitive.ObjectID `json:"video" bson:"video" index:"single:1" validate:"required"`
	Owner     primitive.ObjectID `json:"owner" bson:"owner" index:"single:1" validate:"required"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
