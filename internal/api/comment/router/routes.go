// Package router đăng ký các route thuộc domain comment.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	commenthdl "video_tube/internal/api/comment/handler"
	"video_tube/internal/api/middleware"
	apirouter "video_tube/internal/api/router"
)

// Register đăng ký tất cả route comment lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	commentHandler, err := commenthdl.NewCommentHandler()
	if err != nil {
		return fmt.Errorf("create comment handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	auth := []fiber.Handler{authMiddleware}

	apirouter.RegisterRouteWithMiddleware(v1, "/comments", "POST", "/add", auth, commentHandler.Add)
	apirouter.RegisterRouteWithMiddleware(v1, "/comments", "GET", "/video/:videoId", auth, commentHandler.ListByVideo)
	apirouter.RegisterRouteWithMiddleware(v1, "/comments", "PATCH", "/update/:id", auth, commentHandler.Update)
	apirouter.RegisterRouteWithMiddleware(v1, "/comments", "DELETE", "/remove/:id", auth, commentHandler.Remove)

	r.RegisterCRUDRoutes(v1, "/comments", commentHandler, apirouter.ReadOnlyConfig)
	return nil
}
