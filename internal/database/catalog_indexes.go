// Package database - Index bổ sung cho catalog (compound trên nhiều field) không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"video_tube/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// catalogIndex gắn một index model với collection đích của nó.
type catalogIndex struct {
	Collection string
	Model      mongo.IndexModel
}

// catalogIndexSpecs liệt kê các index compound của catalog video và social.
// Gọi sau khi global.MongoDB_ColNames đã được khởi tạo.
func catalogIndexSpecs() []catalogIndex {
	return []catalogIndex{
		// videos: (isPublished, createdAt desc) — listing feed mặc định
		{
			Collection: global.MongoDB_ColNames.Videos,
			Model: mongo.IndexModel{
				Keys: bson.D{
					{Key: "isPublished", Value: 1},
					{Key: "createdAt", Value: -1},
				},
				Options: options.Index().SetName("video_published_created"),
			},
		},
		// videos: (owner, createdAt desc) — listing theo kênh
		{
			Collection: global.MongoDB_ColNames.Videos,
			Model: mongo.IndexModel{
				Keys: bson.D{
					{Key: "owner", Value: 1},
					{Key: "createdAt", Value: -1},
				},
				Options: options.Index().SetName("video_owner_created"),
			},
		},
		// likes: (targetId, targetType, likedBy) unique — mỗi user chỉ like một
		// đối tượng một lần, kể cả khi hai toggle chạy đồng thời; prefix
		// (targetId, targetType) phục vụ luôn truy vấn đếm like
		{
			Collection: global.MongoDB_ColNames.Likes,
			Model: mongo.IndexModel{
				Keys: bson.D{
					{Key: "targetId", Value: 1},
					{Key: "targetType", Value: 1},
					{Key: "likedBy", Value: 1},
				},
				Options: options.Index().SetName("like_identity").SetUnique(true),
			},
		},
		// comments: (video, createdAt desc) — listing comment theo video
		{
			Collection: global.MongoDB_ColNames.Comments,
			Model: mongo.IndexModel{
				Keys: bson.D{
					{Key: "video", Value: 1},
					{Key: "createdAt", Value: -1},
				},
				Options: options.Index().SetName("comment_video_created"),
			},
		},
		// subscriptions: (subscriber, channel) unique — mỗi user chỉ đăng ký một kênh một lần
		{
			Collection: global.MongoDB_ColNames.Subscriptions,
			Model: mongo.IndexModel{
				Keys: bson.D{
					{Key: "subscriber", Value: 1},
					{Key: "channel", Value: 1},
				},
				Options: options.Index().SetName("subscription_identity").SetUnique(true),
			},
		},
		// watch_sessions: (video, user, sessionId) unique — idempotency khi đếm view theo session
		{
			Collection: global.MongoDB_ColNames.WatchSessions,
			Model: mongo.IndexModel{
				Keys: bson.D{
					{Key: "video", Value: 1},
					{Key: "user", Value: 1},
					{Key: "sessionId", Value: 1},
				},
				Options: options.Index().SetName("watch_session_identity").SetUnique(true).SetSparse(true),
			},
		},
	}
}

// CreateCatalogAdditionalIndexes tạo các index bổ sung cho catalog video và social.
// Gọi sau CreateIndexes cho từng collection.
func CreateCatalogAdditionalIndexes(ctx context.Context, db *mongo.Database) error {
	for _, spec := range catalogIndexSpecs() {
		collection := db.Collection(spec.Collection)
		if _, err := collection.Indexes().CreateOne(ctx, spec.Model); err != nil && !isIndexExistsError(err) {
			return err
		}
	}
	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
