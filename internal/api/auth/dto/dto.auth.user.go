// Package dto chứa các struct input cho domain auth.
package dto

// UserCreateInput dữ liệu đầu vào khi tạo user
type UserCreateInput struct {
	Username   string `json:"username" validate:"required,min=3,max=30,no_xss"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	FullName   string `json:"fullName" validate:"required,no_xss" maxLength:"100"`
	Avatar     string `json:"avatar,omitempty"`
	CoverImage string `json:"coverImage,omitempty"`
}

// UserUpdateInput dữ liệu đầu vào khi cập nhật thông tin user.
// Các field để trống sẽ không bị ghi đè.
type UserUpdateInput struct {
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	FullName   string `json:"fullName,omitempty" validate:"omitempty,no_xss" maxLength:"100"`
	Avatar     string `json:"avatar,omitempty"`
	CoverImage string `json:"coverImage,omitempty"`
}
