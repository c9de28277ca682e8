// Package subscriptiondto chứa các struct input cho domain subscription.
package subscriptiondto

// SubscriptionCreateInput input cho route CRUD chung
type SubscriptionCreateInput struct {
	Subscriber string `json:"subscriber" validate:"required" transform:"str_objectid"`
	Channel    string `json:"channel" validate:"required" transform:"str_objectid"`
}

// SubscriptionUpdateInput không có field sửa được; subscription chỉ tạo/xóa qua toggle
type SubscriptionUpdateInput struct{}
