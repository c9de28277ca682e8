// Package subscriptionmodels chứa model cho domain subscription.
package subscriptionmodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// Subscription ghi nhận một user đăng ký theo dõi một kênh (user khác).
// Bộ (subscriber, channel) là unique (index compound tạo riêng ở tầng database).
type Subscription struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Subscriber primitive.ObjectID `json:"subscriber" bson:"subscriber" index:"single:1" validate:"required"`
	Channel    primitive.ObjectID `json:"channel" bson:"channel" index:"single:1" validate:"required"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}
