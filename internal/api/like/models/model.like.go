// Package likemodels chứa model cho domain like.
package likemodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// Loại đối tượng có thể like.
const (
	LikeTargetVideo   = "Video"
	LikeTargetComment = "Comment"
	LikeTargetTweet   = "Tweet"
)

// Like là lượt thích của một user trên một đối tượng (video, comment hoặc tweet).
// Bộ (targetId, targetType, likedBy) chỉ tồn tại tối đa một bản ghi;
// thao tác toggle chịu trách nhiệm giữ bất biến này.
type Like struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TargetID   primitive.ObjectID `json:"targetId" bson:"targetId" index:"single:1" validate:"required"`
	TargetType string             `json:"targetType" bson:"targetType" validate:"required,oneof=Video Comment Tweet"`
	LikedBy    primitive.ObjectID `json:"likedBy" bson:"likedBy" index:"single:1" validate:"required"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}
