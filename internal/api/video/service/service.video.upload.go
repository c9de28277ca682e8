package videosvc

import (
	"context"
	"math"
	"mime/multipart"

	videomodels "video_tube/internal/api/video/models"
	"video_tube/internal/common"
	"video_tube/internal/global"
	"video_tube/internal/logger"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UploadSubmission là dữ liệu multipart của một request upload video.
type UploadSubmission struct {
	Title       string
	Description string
	Video       *multipart.FileHeader
	Thumbnail   *multipart.FileHeader
}

// Upload chạy pipeline ingestion: kiểm tra đầu vào, đẩy video và thumbnail
// lên media store rồi tạo bản ghi catalog.
// Thứ tự cố định: kiểm tra kích thước TRƯỚC khi chạm media store; cả hai asset
// phải upload thành công rồi mới insert bản ghi video, nên không bao giờ có
// bản ghi catalog trỏ tới asset không tồn tại. Chiều ngược lại (asset đã upload
// nhưng không tạo được bản ghi) được truy vết qua upload session ở trạng thái failed.
// Video tạo ra luôn ở trạng thái chưa publish với views = 0.
func (s *VideoService) Upload(ctx context.Context, owner primitive.ObjectID, sub UploadSubmission) (videomodels.Video, error) {
	var zero videomodels.Video

	if sub.Title == "" || sub.Description == "" {
		return zero, common.NewError(common.ErrCodeValidationInput, "Thiếu title hoặc description của video", common.StatusBadRequest, nil)
	}
	if sub.Video == nil || sub.Thumbnail == nil {
		return zero, common.NewError(common.ErrCodeValidationInput, "Thiếu file video hoặc thumbnail", common.StatusBadRequest, nil)
	}
	if sub.Video.Size > s.maxVideoBytes {
		return zero, common.ErrVideoTooLarge
	}

	session, err := s.uploads.Begin(ctx, uuid.NewString(), owner, sub.Video.Size)
	if err != nil {
		return zero, err
	}

	videoFile, err := sub.Video.Open()
	if err != nil {
		s.failSession(ctx, session.ID, "không mở được file video: "+err.Error(), "", "")
		return zero, common.NewError(common.ErrCodeValidationInput, "Không đọc được file video", common.StatusBadRequest, err)
	}
	defer videoFile.Close()

	videoAsset, err := s.media.UploadVideo(ctx, sub.Video.Filename, videoFile, global.ServerConfig.MediaStore_VideoFolder)
	if err != nil {
		s.failSession(ctx, session.ID, "upload video thất bại: "+err.Error(), "", "")
		return zero, err
	}
	if videoAsset.SecureURL == "" {
		s.failSession(ctx, session.ID, "media store không trả về URL video", "", "")
		return zero, common.ErrMediaUpload
	}

	// Duration do media store trích xuất, làm tròn về giây nguyên.
	// Không có duration hợp lệ thì không tạo bản ghi.
	duration := int64(math.Round(videoAsset.Duration))
	if duration <= 0 {
		s.failSession(ctx, session.ID, "media store không trả về duration", videoAsset.SecureURL, "")
		return zero, common.ErrMediaDuration
	}

	thumbFile, err := sub.Thumbnail.Open()
	if err != nil {
		s.failSession(ctx, session.ID, "không mở được file thumbnail: "+err.Error(), videoAsset.SecureURL, "")
		return zero, common.NewError(common.ErrCodeValidationInput, "Không đọc được file thumbnail", common.StatusBadRequest, err)
	}
	defer thumbFile.Close()

	thumbAsset, err := s.media.UploadImage(ctx, sub.Thumbnail.Filename, thumbFile, global.ServerConfig.MediaStore_ImageFolder)
	if err != nil {
		s.failSession(ctx, session.ID, "upload thumbnail thất bại: "+err.Error(), videoAsset.SecureURL, "")
		return zero, err
	}
	if thumbAsset.SecureURL == "" {
		s.failSession(ctx, session.ID, "media store không trả về URL thumbnail", videoAsset.SecureURL, "")
		return zero, common.ErrMediaUpload
	}

	video, err := s.InsertOne(ctx, videomodels.Video{
		VideoFile:   videoAsset.SecureURL,
		Thumbnail:   thumbAsset.SecureURL,
		Title:       sub.Title,
		Description: sub.Description,
		Duration:    duration,
		Views:       0,
		IsPublished: false,
		Owner:       owner,
	})
	if err != nil {
		s.failSession(ctx, session.ID, "tạo bản ghi video thất bại: "+err.Error(), videoAsset.SecureURL, thumbAsset.SecureURL)
		return zero, err
	}

	if err := s.uploads.Complete(ctx, session.ID, video.ID, videoAsset.SecureURL, thumbAsset.SecureURL); err != nil {
		logger.GetAppLogger().WithError(err).WithField("session", session.SessionID).
			Warn("[VIDEO] Không cập nhật được trạng thái upload session")
	}

	return video, nil
}

// failSession đánh dấu session thất bại, lỗi chỉ ghi log.
func (s *VideoService) failSession(ctx context.Context, id primitive.ObjectID, note string, videoURL, thumbnailURL string) {
	if err := s.uploads.Fail(ctx, id, note, videoURL, thumbnailURL); err != nil {
		logger.GetAppLogger().WithError(err).Warn("[VIDEO] Không đánh dấu được upload session thất bại")
	}
}
