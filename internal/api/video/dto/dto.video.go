// Package videodto chứa các struct input cho domain video.
package videodto

// VideoCreateInput là input tạo video qua route CRUD chung.
// Pipeline upload chính dùng multipart riêng; input này phục vụ các thao tác
// quản trị khi asset đã có sẵn URL trên media store.
type VideoCreateInput struct {
	VideoFile   string `json:"videoFile" validate:"required,url"`
	Thumbnail   string `json:"thumbnail" validate:"required,url"`
	Title       string `json:"title" validate:"required,no_xss" maxLength:"200"`
	Description string `json:"description,omitempty" validate:"omitempty,no_xss" maxLength:"2000"`
	Duration    int64  `json:"duration" validate:"required,gt=0"`
	Owner       string `json:"owner" validate:"required" transform:"str_objectid"`
}

// VideoUpdateInput giới hạn các field owner được sửa sau khi tạo.
// Asset (videoFile, thumbnail), duration và views không sửa được qua update.
type VideoUpdateInput struct {
	Title       string `json:"title,omitempty" validate:"omitempty,no_xss" maxLength:"200"`
	Description string `json:"description,omitempty" validate:"omitempty,no_xss" maxLength:"2000"`
}

// WatchProgressInput là payload heartbeat tiến độ xem.
// SessionID là khóa idempotency tùy chọn: có sessionId thì mỗi phiên chỉ tính
// view một lần, không có thì mỗi lần vượt ngưỡng đều tính.
type WatchProgressInput struct {
	WatchedDuration float64 `json:"watchedDuration" validate:"gte=0"`
	SessionID       string  `json:"sessionId,omitempty" validate:"omitempty,max=128"`
}
