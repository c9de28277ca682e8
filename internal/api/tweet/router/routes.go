// Package router đăng ký các route thuộc domain tweet.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"video_tube/internal/api/middleware"
	apirouter "video_tube/internal/api/router"
	tweethdl "video_tube/internal/api/tweet/handler"
)

// Register đăng ký tất cả route tweet lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	tweetHandler, err := tweethdl.NewTweetHandler()
	if err != nil {
		return fmt.Errorf("create tweet handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	auth := []fiber.Handler{authMiddleware}

	apirouter.RegisterRouteWithMiddleware(v1, "/tweets", "POST", "/add", auth, tweetHandler.Add)
	apirouter.RegisterRouteWithMiddleware(v1, "/tweets", "GET", "/user/:userId", auth, tweetHandler.ListByUser)
	apirouter.RegisterRouteWithMiddleware(v1, "/tweets", "GET", "/detail/:id", auth, tweetHandler.GetDetail)
	apirouter.RegisterRouteWithMiddleware(v1, "/tweets", "PATCH", "/update/:id", auth, tweetHandler.Update)
	apirouter.RegisterRouteWithMiddleware(v1, "/tweets", "DELETE", "/remove/:id", auth, tweetHandler.Remove)

	r.RegisterCRUDRoutes(v1, "/tweets", tweetHandler, apirouter.ReadOnlyConfig)
	return nil
}
