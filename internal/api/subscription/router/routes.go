// Package router đăng ký các route thuộc domain subscription.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"video_tube/internal/api/middleware"
	apirouter "video_tube/internal/api/router"
	subscriptionhdl "video_tube/internal/api/subscription/handler"
)

// Register đăng ký tất cả route subscription lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	subscriptionHandler, err := subscriptionhdl.NewSubscriptionHandler()
	if err != nil {
		return fmt.Errorf("create subscription handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	auth := []fiber.Handler{authMiddleware}

	apirouter.RegisterRouteWithMiddleware(v1, "/subscriptions", "POST", "/toggle/:channelId", auth, subscriptionHandler.Toggle)
	apirouter.RegisterRouteWithMiddleware(v1, "/subscriptions", "GET", "/subscribers/:channelId", auth, subscriptionHandler.ListSubscribers)
	apirouter.RegisterRouteWithMiddleware(v1, "/subscriptions", "GET", "/channels", auth, subscriptionHandler.ListSubscribedChannels)

	r.RegisterCRUDRoutes(v1, "/subscriptions", subscriptionHandler, apirouter.ReadOnlyConfig)
	return nil
}
