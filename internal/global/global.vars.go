package global

import (
	"video_tube/config"
	"video_tube/internal/registry"

	validator "github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Users          string // Tên collection cho người dùng
	Videos         string // Tên collection cho video
	Comments       string // Tên collection cho bình luận
	Likes          string // Tên collection cho lượt thích
	Tweets         string // Tên collection cho tweet
	Playlists      string // Tên collection cho playlist
	Subscriptions  string // Tên collection cho lượt đăng ký kênh
	UploadSessions string // Tên collection cho phiên upload video (staging)
	WatchSessions  string // Tên collection cho phiên xem video (đếm view theo session)
}

// Các biến toàn cục
var Validate *validator.Validate                                                // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                               // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration                                          // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName)      // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
