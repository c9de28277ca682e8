package videomodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// WatchSession ghi nhận một phiên xem đã được tính view.
// Bộ (video, user, sessionId) là unique (index compound tạo riêng ở tầng database),
// nên cùng một phiên gọi heartbeat bao nhiêu lần cũng chỉ tính view một lần.
// TTL 24h: hết hạn thì phiên được coi là phiên mới.
type WatchSession struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Video     primitive.ObjectID `json:"video" bson:"video" validate:"required"`
	User      primitive.ObjectID `json:"user" bson:"user" validate:"required"`
	SessionID string             `json:"sessionId" bson:"sessionId" validate:"required"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt" index:"ttl:86400"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
