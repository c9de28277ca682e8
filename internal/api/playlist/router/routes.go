// Package router đăng ký các route thuộc domain playlist.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"video_tube/internal/api/middleware"
	playlisthdl "video_tube/internal/api/playlist/handler"
	apirouter "video_tube/internal/api/router"
)

// Register đăng ký tất cả route playlist lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	playlistHandler, err := playlisthdl.NewPlaylistHandler()
	if err != nil {
		return fmt.Errorf("create playlist handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	auth := []fiber.Handler{authMiddleware}

	apirouter.RegisterRouteWithMiddleware(v1, "/playlists", "POST", "/add", auth, playlistHandler.Add)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlists", "GET", "/detail/:id", auth, playlistHandler.GetDetail)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlists", "GET", "/user/:userId", auth, playlistHandler.ListByUser)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlists", "PATCH", "/add-video/:id/:videoId", auth, playlistHandler.AddVideo)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlists", "PATCH", "/remove-video/:id/:videoId", auth, playlistHandler.RemoveVideo)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlists", "PATCH", "/update/:id", auth, playlistHandler.Update)
	apirouter.RegisterRouteWithMiddleware(v1, "/playlists", "DELETE", "/remove/:id", auth, playlistHandler.Remove)

	r.RegisterCRUDRoutes(v1, "/playlists", playlistHandler, apirouter.ReadOnlyConfig)
	return nil
}
