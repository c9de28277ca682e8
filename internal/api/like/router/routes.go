// Package router đăng ký các route thuộc domain like.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	likehdl "video_tube/internal/api/like/handler"
	"video_tube/internal/api/middleware"
	apirouter "video_tube/internal/api/router"
)

// Register đăng ký tất cả route like lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	likeHandler, err := likehdl.NewLikeHandler()
	if err != nil {
		return fmt.Errorf("create like handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	auth := []fiber.Handler{authMiddleware}

	apirouter.RegisterRouteWithMiddleware(v1, "/likes", "POST", "/toggle", auth, likeHandler.Toggle)
	apirouter.RegisterRouteWithMiddleware(v1, "/likes", "GET", "/videos", auth, likeHandler.ListLikedVideos)

	r.RegisterCRUDRoutes(v1, "/likes", likeHandler, apirouter.ReadOnlyConfig)
	return nil
}
