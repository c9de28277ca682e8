// Package commentdto chứa các struct input cho domain comment.
package commentdto

// CommentCreateInput dữ liệu đầu vào khi tạo comment
type CommentCreateInput struct {
	Content string `json:"content" validate:"required,no_xss" maxLength:"1000"`
	Video   string `json:"video" validate:"required" transform:"str_objectid"`
}

// CommentUpdateInput dữ liệu đầu vào khi sửa comment, chỉ sửa được nội dung
type CommentUpdateInput struct {
	Content string `json:"content" validate:"required,no_xss" maxLength:"1000"`
}
