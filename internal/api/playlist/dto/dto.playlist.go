// Package playlistdto chứa các struct input cho domain playlist.
package playlistdto

// PlaylistCreateInput dữ liệu đầu vào khi tạo playlist
type PlaylistCreateInput struct {
	Name        string `json:"name" validate:"required,no_xss" maxLength:"100"`
	Description string `json:"description,omitempty" validate:"omitempty,no_xss" maxLength:"1000"`
}

// PlaylistUpdateInput dữ liệu đầu vào khi sửa playlist
type PlaylistUpdateInput struct {
	Name        string `json:"name,omitempty" validate:"omitempty,no_xss" maxLength:"100"`
	Description string `json:"description,omitempty" validate:"omitempty,no_xss" maxLength:"1000"`
}
