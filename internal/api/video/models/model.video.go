// Package videomodels chứa các model thuộc domain video.
package videomodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// Video đại diện cho một video trong catalog.
// videoFile là URL asset gốc trên media store, không bao giờ serialize ra JSON
// (client phải đi qua endpoint stream của server).
type Video struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VideoFile   string             `json:"-" bson:"videoFile" validate:"required"`
	Thumbnail   string             `json:"thumbnail" bson:"thumbnail" validate:"required"`
	Title       string             `json:"title" bson:"title" index:"text" validate:"required"`
	Description string             `json:"description" bson:"description"`
	Duration    int64              `json:"duration" bson:"duration" validate:"required,gt=0"`   // Thời lượng (giây, số nguyên làm tròn)
	Views       int64              `json:"views" bson:"views"`                                  // Lượt xem tích lũy
	IsPublished bool               `json:"isPublished" bson:"isPublished"`                      // Mặc định false khi tạo, owner bật thủ công
	Owner       primitive.ObjectID `json:"owner" bson:"owner" index:"single:1" validate:"required"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt" index:"single:-1"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
