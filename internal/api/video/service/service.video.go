// Package videosvc chứa service cho domain video: catalog, view accounting và ingestion.
package videosvc

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	authsvc "video_tube/internal/api/auth/service"
	basesvc "video_tube/internal/api/base/service"
	commentmodels "video_tube/internal/api/comment/models"
	likemodels "video_tube/internal/api/like/models"
	videodto "video_tube/internal/api/video/dto"
	videomodels "video_tube/internal/api/video/models"
	"video_tube/internal/common"
	"video_tube/internal/global"
	"video_tube/internal/logger"
	"video_tube/internal/mediastore"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// mediaUploader là phần bề mặt của media store mà pipeline ingestion dùng.
type mediaUploader interface {
	UploadVideo(ctx context.Context, fileName string, file io.Reader, folder string) (*mediastore.UploadResult, error)
	UploadImage(ctx context.Context, fileName string, file io.Reader, folder string) (*mediastore.UploadResult, error)
}

// uploadStager quản lý vòng đời staging record của một phiên upload.
type uploadStager interface {
	Begin(ctx context.Context, sessionID string, owner primitive.ObjectID, videoBytes int64) (videomodels.UploadSession, error)
	Complete(ctx context.Context, id primitive.ObjectID, videoID primitive.ObjectID, videoURL, thumbnailURL string) error
	Fail(ctx context.Context, id primitive.ObjectID, note string, videoURL, thumbnailURL string) error
}

// VideoService là service quản lý catalog video.
// Giữ thêm service trên collection comments và likes để phục vụ
// cascade delete và đếm like, không đi vòng qua domain khác.
type VideoService struct {
	*basesvc.BaseServiceMongoImpl[videomodels.Video]
	comments *basesvc.BaseServiceMongoImpl[commentmodels.Comment]
	likes    *basesvc.BaseServiceMongoImpl[likemodels.Like]
	users    *authsvc.UserService
	sessions *WatchSessionService
	uploads  uploadStager
	media    mediaUploader

	streamClient  *http.Client // Client gọi range request tới media store khi stream
	maxVideoBytes int64        // Giới hạn kích thước file video (byte), kiểm tra trước khi upload
}

// NewVideoService tạo mới VideoService
func NewVideoService() (*VideoService, error) {
	videos, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Videos)
	if !exist {
		return nil, fmt.Errorf("failed to get videos collection: %v", common.ErrNotFound)
	}
	comments, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Comments)
	if !exist {
		return nil, fmt.Errorf("failed to get comments collection: %v", common.ErrNotFound)
	}
	likes, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Likes)
	if !exist {
		return nil, fmt.Errorf("failed to get likes collection: %v", common.ErrNotFound)
	}

	users, err := authsvc.NewUserService()
	if err != nil {
		return nil, err
	}
	sessions, err := NewWatchSessionService()
	if err != nil {
		return nil, err
	}
	uploads, err := NewUploadSessionService()
	if err != nil {
		return nil, err
	}

	return &VideoService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[videomodels.Video](videos),
		comments:             basesvc.NewBaseServiceMongo[commentmodels.Comment](comments),
		likes:                basesvc.NewBaseServiceMongo[likemodels.Like](likes),
		users:                users,
		sessions:             sessions,
		uploads:              uploads,
		media:                mediastore.NewClient(global.ServerConfig),
		streamClient: &http.Client{
			Timeout: time.Duration(global.ServerConfig.Stream_UpstreamTimeout) * time.Second,
		},
		maxVideoBytes: int64(global.ServerConfig.Upload_MaxVideoSizeMiB) * 1024 * 1024,
	}, nil
}

// requireOwner tìm video theo id và kiểm tra quyền sở hữu.
// Video không tồn tại trả về ErrNotFound, sai owner trả về ErrNotOwner.
func (s *VideoService) requireOwner(ctx context.Context, videoID primitive.ObjectID, requester primitive.ObjectID) (videomodels.Video, error) {
	video, err := s.FindOneById(ctx, videoID)
	if err != nil {
		return video, err
	}
	if video.Owner != requester {
		return video, common.ErrNotOwner
	}
	return video, nil
}

// GetDetail trả về chi tiết một video đã publish, kèm thông tin owner và số like.
// Mỗi lần gọi tăng views thêm 1 và ghi video vào lịch sử xem của viewer.
// Video chưa publish coi như không tồn tại với mọi người, kể cả owner.
func (s *VideoService) GetDetail(ctx context.Context, videoID primitive.ObjectID, viewerID primitive.ObjectID) (bson.M, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"_id": videoID, "isPublished": true}},
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Users,
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "ownerDetails",
			"pipeline": []bson.M{
				{"$project": bson.M{"username": 1, "fullName": 1, "avatar": 1}},
			},
		}},
		{"$addFields": bson.M{"ownerDetails": bson.M{"$first": "$ownerDetails"}}},
		{"$lookup": bson.M{
			"from": global.MongoDB_ColNames.Likes,
			"let":  bson.M{"videoId": "$_id"},
			"pipeline": []bson.M{
				{"$match": bson.M{"$expr": bson.M{"$and": []bson.M{
					{"$eq": []interface{}{"$targetId", "$$videoId"}},
					{"$eq": []interface{}{"$targetType", likemodels.LikeTargetVideo}},
				}}}},
				{"$count": "count"},
			},
			"as": "likeStats",
		}},
		{"$addFields": bson.M{
			"likesCount": bson.M{"$ifNull": []interface{}{bson.M{"$first": "$likeStats.count"}, 0}},
		}},
		// Không trả URL asset gốc, client phải stream qua server
		{"$project": bson.M{"videoFile": 0, "likeStats": 0}},
	}

	results, err := s.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, common.ErrVideoUnavailable
	}
	detail := results[0]

	// Mỗi lần fetch chi tiết là một lượt xem
	updated, err := s.UpdateOne(ctx, bson.M{"_id": videoID}, &basesvc.UpdateData{
		Inc: map[string]interface{}{"views": 1},
	}, nil)
	if err != nil {
		return nil, err
	}
	detail["views"] = updated.Views

	// Lịch sử xem là phụ trợ, lỗi không chặn response
	if err := s.users.AddToWatchHistory(ctx, viewerID, videoID); err != nil {
		logger.GetAppLogger().WithError(err).Warn("[VIDEO] Không cập nhật được lịch sử xem")
	}

	detail["streamUrl"] = fmt.Sprintf("%s/api/v1/videos/stream/%s", global.ServerConfig.BaseURL, videoID.Hex())
	return detail, nil
}

// ListOptions là tham số truy vấn danh sách video.
type ListOptions struct {
	Page      int64
	Limit     int64
	Query     string             // Tìm theo title/description (regex, không phân biệt hoa thường)
	Owner     primitive.ObjectID // Lọc theo kênh, NilObjectID là bỏ qua
	SortBy    string             // Mặc định createdAt
	SortOrder int                // 1 hoặc -1, mặc định -1
}

// List trả về danh sách video đã publish theo trang, kèm thông tin owner.
func (s *VideoService) List(ctx context.Context, opts ListOptions) (bson.M, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 10
	}
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	sortOrder := opts.SortOrder
	if sortOrder != 1 {
		sortOrder = -1
	}

	match := bson.M{"isPublished": true}
	if opts.Query != "" {
		regex := bson.M{"$regex": opts.Query, "$options": "i"}
		match["$or"] = []bson.M{{"title": regex}, {"description": regex}}
	}
	if opts.Owner != primitive.NilObjectID {
		match["owner"] = opts.Owner
	}

	total, err := s.CountDocuments(ctx, match)
	if err != nil {
		return nil, err
	}

	skip := (opts.Page - 1) * opts.Limit
	pipeline := []bson.M{
		{"$match": match},
		{"$sort": bson.M{sortBy: sortOrder}},
		{"$skip": skip},
		{"$limit": opts.Limit},
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Users,
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "ownerDetails",
			"pipeline": []bson.M{
				{"$project": bson.M{"username": 1, "fullName": 1, "avatar": 1}},
			},
		}},
		{"$addFields": bson.M{"ownerDetails": bson.M{"$first": "$ownerDetails"}}},
		{"$project": bson.M{"videoFile": 0}},
	}

	items, err := s.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var totalPage int64
	if total > 0 {
		totalPage = (total + opts.Limit - 1) / opts.Limit
	}

	return bson.M{
		"items":     items,
		"page":      opts.Page,
		"limit":     opts.Limit,
		"itemCount": int64(len(items)),
		"total":     total,
		"totalPage": totalPage,
	}, nil
}

// UpdateDetails cập nhật title/description của video, chỉ owner được sửa.
func (s *VideoService) UpdateDetails(ctx context.Context, videoID primitive.ObjectID, requester primitive.ObjectID, input *videodto.VideoUpdateInput) (videomodels.Video, error) {
	video, err := s.requireOwner(ctx, videoID, requester)
	if err != nil {
		return video, err
	}

	set := map[string]interface{}{}
	if input.Title != "" {
		set["title"] = input.Title
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if len(set) == 0 {
		return video, common.ErrRequiredField
	}

	return s.UpdateById(ctx, videoID, &basesvc.UpdateData{Set: set})
}

// TogglePublish đảo trạng thái publish của video, chỉ owner được thao tác.
func (s *VideoService) TogglePublish(ctx context.Context, videoID primitive.ObjectID, requester primitive.ObjectID) (videomodels.Video, error) {
	video, err := s.requireOwner(ctx, videoID, requester)
	if err != nil {
		return video, err
	}

	return s.UpdateById(ctx, videoID, &basesvc.UpdateData{
		Set: map[string]interface{}{"isPublished": !video.IsPublished},
	})
}

// Delete xóa video cùng comment và like liên quan.
// Không có transaction: xóa bản ghi video trước, phần dọn dẹp comment/like
// là best-effort, lỗi chỉ ghi log chứ không làm fail request.
func (s *VideoService) Delete(ctx context.Context, videoID primitive.ObjectID, requester primitive.ObjectID) error {
	if _, err := s.requireOwner(ctx, videoID, requester); err != nil {
		return err
	}

	if err := s.DeleteById(ctx, videoID); err != nil {
		return err
	}

	if _, err := s.comments.DeleteMany(ctx, bson.M{"video": videoID}); err != nil {
		logger.GetAppLogger().WithError(err).WithField("video", videoID.Hex()).
			Warn("[VIDEO] Không xóa được comment của video")
	}
	if _, err := s.likes.DeleteMany(ctx, bson.M{"targetId": videoID, "targetType": likemodels.LikeTargetVideo}); err != nil {
		logger.GetAppLogger().WithError(err).WithField("video", videoID.Hex()).
			Warn("[VIDEO] Không xóa được like của video")
	}

	return nil
}

// WatchResult là kết quả một heartbeat tiến độ xem.
type WatchResult struct {
	Counted   bool    `json:"counted"`   // Heartbeat này có tính thêm view không
	Views     int64   `json:"views"`     // Tổng views sau heartbeat
	Threshold float64 `json:"threshold"` // Ngưỡng giây cần xem để tính view
}

// RecordWatch ghi nhận tiến độ xem và tính view khi đủ ngưỡng.
// Ngưỡng là min(30, duration/2) giây. Có sessionId thì mỗi phiên chỉ tính
// view một lần (unique insert vào watch_sessions), không có sessionId thì
// mỗi heartbeat vượt ngưỡng đều tính.
func (s *VideoService) RecordWatch(ctx context.Context, videoID primitive.ObjectID, viewerID primitive.ObjectID, input *videodto.WatchProgressInput) (*WatchResult, error) {
	video, err := s.FindOneById(ctx, videoID)
	if err != nil {
		return nil, err
	}

	threshold := WatchThreshold(video.Duration)
	result := &WatchResult{Views: video.Views, Threshold: threshold}

	if input.WatchedDuration < threshold {
		return result, nil
	}

	if input.SessionID != "" {
		counted, err := s.sessions.MarkCounted(ctx, videoID, viewerID, input.SessionID)
		if err != nil {
			return nil, err
		}
		if !counted {
			// Phiên này đã tính view trước đó
			return result, nil
		}
	}

	updated, err := s.UpdateOne(ctx, bson.M{"_id": videoID}, &basesvc.UpdateData{
		Inc: map[string]interface{}{"views": 1},
	}, nil)
	if err != nil {
		return nil, err
	}

	result.Counted = true
	result.Views = updated.Views
	return result, nil
}

// WatchThreshold tính ngưỡng giây cần xem để một heartbeat được tính view:
// một nửa thời lượng video, tối đa 30 giây.
func WatchThreshold(durationSec int64) float64 {
	return math.Min(30, float64(durationSec)*0.5)
}
