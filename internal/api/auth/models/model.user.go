// Package models - model người dùng (User) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User định nghĩa mô hình người dùng của nền tảng chia sẻ video.
// Token chứa token xác thực mới nhất của người dùng, được middleware auth đối chiếu.
// WatchHistory chứa danh sách video đã xem (mỗi video chỉ xuất hiện một lần).
type User struct {
	ID           primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Username     string               `json:"username" bson:"username" index:"unique" validate:"required"`
	Email        string               `json:"email,omitempty" bson:"email,omitempty" index:"unique,sparse"`
	FullName     string               `json:"fullName" bson:"fullName" index:"single:1"`
	Password     string               `json:"-" bson:"password,omitempty"`
	Avatar       string               `json:"avatar" bson:"avatar"`
	CoverImage   string               `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	WatchHistory []primitive.ObjectID `json:"watchHistory,omitempty" bson:"watchHistory,omitempty"`
	Token        string               `json:"-" bson:"token,omitempty"`
	IsBlock      bool                 `json:"-" bson:"isBlock"`
	BlockNote    string               `json:"-" bson:"blockNote"`
	CreatedAt    int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64                `json:"updatedAt" bson:"updatedAt"`
}
