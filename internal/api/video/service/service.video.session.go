package videosvc

import (
	"context"
	"errors"
	"fmt"

	basesvc "video_tube/internal/api/base/service"
	videomodels "video_tube/internal/api/video/models"
	"video_tube/internal/common"
	"video_tube/internal/global"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WatchSessionService quản lý các phiên xem đã tính view.
type WatchSessionService struct {
	*basesvc.BaseServiceMongoImpl[videomodels.WatchSession]
}

// NewWatchSessionService tạo mới WatchSessionService
func NewWatchSessionService() (*WatchSessionService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.WatchSessions)
	if !exist {
		return nil, fmt.Errorf("failed to get watch_sessions collection: %v", common.ErrNotFound)
	}

	return &WatchSessionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[videomodels.WatchSession](collection),
	}, nil
}

// MarkCounted ghi nhận phiên (video, user, sessionId) đã được tính view.
// Trả về true nếu đây là lần đầu của phiên, false nếu phiên đã tính rồi
// (insert đụng unique index).
func (s *WatchSessionService) MarkCounted(ctx context.Context, videoID primitive.ObjectID, userID primitive.ObjectID, sessionID string) (bool, error) {
	_, err := s.InsertOne(ctx, videomodels.WatchSession{
		Video:     videoID,
		User:      userID,
		SessionID: sessionID,
	})
	if err != nil {
		if errors.Is(err, common.ErrMongoDuplicate) || errors.Is(err, common.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// UploadSessionService quản lý các bản ghi staging của pipeline upload.
type UploadSessionService struct {
	*basesvc.BaseServiceMongoImpl[videomodels.UploadSession]
}

// NewUploadSessionService tạo mới UploadSessionService
func NewUploadSessionService() (*UploadSessionService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.UploadSessions)
	if !exist {
		return nil, fmt.Errorf("failed to get upload_sessions collection: %v", common.ErrNotFound)
	}

	return &UploadSessionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[videomodels.UploadSession](collection),
	}, nil
}

// Begin tạo session ở trạng thái pending trước khi đẩy asset lên media store.
func (s *UploadSessionService) Begin(ctx context.Context, sessionID string, owner primitive.ObjectID, videoBytes int64) (videomodels.UploadSession, error) {
	return s.InsertOne(ctx, videomodels.UploadSession{
		SessionID:  sessionID,
		Owner:      owner,
		Status:     videomodels.UploadStatusPending,
		VideoBytes: videoBytes,
	})
}

// Complete đánh dấu session thành công, gắn với bản ghi video vừa tạo.
func (s *UploadSessionService) Complete(ctx context.Context, id primitive.ObjectID, videoID primitive.ObjectID, videoURL, thumbnailURL string) error {
	_, err := s.UpdateById(ctx, id, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status":       videomodels.UploadStatusComplete,
			"video":        videoID,
			"videoUrl":     videoURL,
			"thumbnailUrl": thumbnailURL,
		},
	})
	return err
}

// Fail đánh dấu session thất bại kèm lý do; asset đã kịp upload (nếu có)
// được ghi lại URL để dọn dẹp sau.
func (s *UploadSessionService) Fail(ctx context.Context, id primitive.ObjectID, note string, videoURL, thumbnailURL string) error {
	set := map[string]interface{}{
		"status":      videomodels.UploadStatusFailed,
		"failureNote": note,
	}
	if videoURL != "" {
		set["videoUrl"] = videoURL
	}
	if thumbnailURL != "" {
		set["thumbnailUrl"] = thumbnailURL
	}

	_, err := s.UpdateById(ctx, id, &basesvc.UpdateData{Set: set})
	return err
}
