package main

import (
	"context"

	"video_tube/config"
	authmodels "video_tube/internal/api/auth/models"
	commentmodels "video_tube/internal/api/comment/models"
	likemodels "video_tube/internal/api/like/models"
	playlistmodels "video_tube/internal/api/playlist/models"
	subscriptionmodels "video_tube/internal/api/subscription/models"
	tweetmodels "video_tube/internal/api/tweet/models"
	videomodels "video_tube/internal/api/video/models"
	"video_tube/internal/database"
	"video_tube/internal/global"

	"github.com/sirupsen/logrus"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Users = "users"
	global.MongoDB_ColNames.Videos = "videos"
	global.MongoDB_ColNames.Comments = "comments"
	global.MongoDB_ColNames.Likes = "likes"
	global.MongoDB_ColNames.Tweets = "tweets"
	global.MongoDB_ColNames.Playlists = "playlists"
	global.MongoDB_ColNames.Subscriptions = "subscriptions"
	global.MongoDB_ColNames.UploadSessions = "upload_sessions"
	global.MongoDB_ColNames.WatchSessions = "watch_sessions"

	logrus.Info("Initialized collection names")
}

// Hàm khởi tạo validator (global.InitValidator đăng ký các custom validator: no_xss, no_sql_injection, exists)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// Hàm khởi tạo kết nối database và các index
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	// Khởi tạo database và collections nếu chưa có
	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	// Khởi tạo các index theo tag trên model
	db := global.MongoDB_Session.Database(global.ServerConfig.MongoDB_DBName)
	cols := global.MongoDB_ColNames
	indexTargets := []struct {
		name  string
		model interface{}
	}{
		{cols.Users, authmodels.User{}},
		{cols.Videos, videomodels.Video{}},
		{cols.Comments, commentmodels.Comment{}},
		{cols.Likes, likemodels.Like{}},
		{cols.Tweets, tweetmodels.Tweet{}},
		{cols.Playlists, playlistmodels.Playlist{}},
		{cols.Subscriptions, subscriptionmodels.Subscription{}},
		{cols.UploadSessions, videomodels.UploadSession{}},
		{cols.WatchSessions, videomodels.WatchSession{}},
	}
	for _, target := range indexTargets {
		if err := database.CreateIndexes(context.TODO(), db.Collection(target.name), target.model); err != nil {
			logrus.Errorf("Failed to create indexes for %s: %v", target.name, err)
		}
	}

	// Index compound không biểu diễn được qua tag trên model
	if err := database.CreateCatalogAdditionalIndexes(context.TODO(), db); err != nil {
		logrus.Errorf("Failed to create catalog additional indexes: %v", err)
	}

	logrus.Info("Ensured indexes")
}
