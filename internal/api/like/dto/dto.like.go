// Package likedto chứa các struct input cho domain like.
package likedto

// LikeToggleInput dữ liệu đầu vào khi toggle like trên một đối tượng
type LikeToggleInput struct {
	TargetID   string `json:"targetId" validate:"required" transform:"str_objectid"`
	TargetType string `json:"targetType" validate:"required,oneof=Video Comment Tweet"`
}

// LikeCreateInput input cho route CRUD chung
type LikeCreateInput struct {
	TargetID   string `json:"targetId" validate:"required" transform:"str_objectid"`
	TargetType string `json:"targetType" validate:"required,oneof=Video Comment Tweet"`
	LikedBy    string `json:"likedBy" validate:"required" transform:"str_objectid"`
}

// LikeUpdateInput không có field sửa được; like chỉ tạo/xóa qua toggle
type LikeUpdateInput struct{}
