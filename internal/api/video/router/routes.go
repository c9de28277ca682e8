// Package router đăng ký các route thuộc domain video:
// upload, catalog, stream và view accounting.
// Video không mở route CRUD chung: các route find trả về model thô sẽ
// lộ bản ghi chưa publish, mọi truy cập đọc phải đi qua list/detail
// (chỉ video đã publish, videoFile bị project khỏi kết quả).
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"video_tube/internal/api/middleware"
	apirouter "video_tube/internal/api/router"
	videohdl "video_tube/internal/api/video/handler"
)

// Register đăng ký tất cả route video lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	videoHandler, err := videohdl.NewVideoHandler()
	if err != nil {
		return fmt.Errorf("create video handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	auth := []fiber.Handler{authMiddleware}

	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "POST", "/upload", auth, videoHandler.Upload)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "GET", "/list", auth, videoHandler.List)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "GET", "/detail/:id", auth, videoHandler.GetDetail)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "GET", "/stream/:id", auth, videoHandler.Stream)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "POST", "/watch/:id", auth, videoHandler.RecordWatch)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "PATCH", "/update-details/:id", auth, videoHandler.UpdateDetails)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "PATCH", "/toggle-publish/:id", auth, videoHandler.TogglePublish)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "DELETE", "/remove/:id", auth, videoHandler.Remove)

	return nil
}
