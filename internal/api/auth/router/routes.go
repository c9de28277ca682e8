// Package router đăng ký các route thuộc domain auth: User (CRUD + me + watch-history).
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "video_tube/internal/api/auth/handler"
	"video_tube/internal/api/middleware"
	apirouter "video_tube/internal/api/router"
)

// Register đăng ký tất cả route auth lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("create user handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "GET", "/me", []fiber.Handler{authMiddleware}, userHandler.GetMe)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "GET", "/watch-history", []fiber.Handler{authMiddleware}, userHandler.GetWatchHistory)

	// Chỉ mở mặt đọc: không có RBAC nên route ghi chung sẽ cho phép
	// user bất kỳ sửa/xóa user khác
	r.RegisterCRUDRoutes(v1, "/users", userHandler, apirouter.ReadOnlyConfig)
	return nil
}
