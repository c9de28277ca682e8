// Package videohdl chứa HTTP handler cho domain video.
package videohdl

import (
	"fmt"
	"strconv"

	basehdl "video_tube/internal/api/base/handler"
	videodto "video_tube/internal/api/video/dto"
	videomodels "video_tube/internal/api/video/models"
	videosvc "video_tube/internal/api/video/service"
	"video_tube/internal/common"
	"video_tube/internal/logger"
	"video_tube/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VideoHandler xử lý các request liên quan đến video
type VideoHandler struct {
	basehdl.BaseHandler[videomodels.Video, videodto.VideoCreateInput, videodto.VideoUpdateInput]
	VideoService *videosvc.VideoService
}

// NewVideoHandler tạo mới VideoHandler
func NewVideoHandler() (*VideoHandler, error) {
	videoService, err := videosvc.NewVideoService()
	if err != nil {
		return nil, fmt.Errorf("failed to create video service: %v", err)
	}

	baseHandler := basehdl.NewBaseHandler[videomodels.Video, videodto.VideoCreateInput, videodto.VideoUpdateInput](videoService)
	h := &VideoHandler{
		BaseHandler:  *baseHandler,
		VideoService: videoService,
	}
	return h, nil
}

// requester lấy ObjectID của user đã xác thực từ context.
func requester(c fiber.Ctx) (primitive.ObjectID, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok || userIDStr == "" {
		return primitive.NilObjectID, common.ErrTokenMissing
	}
	userID := utility.String2ObjectID(userIDStr)
	if userID == primitive.NilObjectID {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}
	return userID, nil
}

// videoIDFromParams đọc và kiểm tra id video trên URL.
func videoIDFromParams(c fiber.Ctx) (primitive.ObjectID, error) {
	idStr := c.Params("id")
	if idStr == "" || !primitive.IsValidObjectID(idStr) {
		return primitive.NilObjectID, common.ErrInvalidID
	}
	return utility.String2ObjectID(idStr), nil
}

// Upload nhận multipart (videoFile, thumbnail, title, description) và chạy
// pipeline ingestion. Video trả về ở trạng thái chưa publish.
func (h *VideoHandler) Upload(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		owner, err := requester(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		sub := videosvc.UploadSubmission{
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
		}
		// File thiếu để service báo lỗi thống nhất
		if f, err := c.FormFile("videoFile"); err == nil {
			sub.Video = f
		}
		if f, err := c.FormFile("thumbnail"); err == nil {
			sub.Thumbnail = f
		}

		video, err := h.VideoService.Upload(c.Context(), owner, sub)
		if err == nil {
			logger.LogAction("video_upload", c, map[string]interface{}{
				"video_id": video.ID.Hex(),
				"title":    video.Title,
			})
		}
		h.HandleCreatedResponse(c, video, err)
		return nil
	})
}

// GetDetail trả về chi tiết video đã publish; mỗi lần gọi tính một lượt xem
// và ghi video vào lịch sử xem của người gọi.
func (h *VideoHandler) GetDetail(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		viewer, err := requester(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		videoID, err := videoIDFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		detail, err := h.VideoService.GetDetail(c.Context(), videoID, viewer)
		h.HandleResponse(c, detail, err)
		return nil
	})
}

// List trả về danh sách video đã publish theo trang.
// Query params: page, limit, query (tìm title/description), owner, sortBy, sortType.
func (h *VideoHandler) List(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		opts := videosvc.ListOptions{
			Page:   utility.P2Int64(c.Query("page")),
			Limit:  utility.P2Int64(c.Query("limit")),
			Query:  c.Query("query"),
			SortBy: c.Query("sortBy"),
		}
		if sortType, err := strconv.Atoi(c.Query("sortType")); err == nil {
			opts.SortOrder = sortType
		}
		if ownerStr := c.Query("owner"); ownerStr != "" {
			if !primitive.IsValidObjectID(ownerStr) {
				h.HandleResponse(c, nil, common.ErrInvalidID)
				return nil
			}
			opts.Owner = utility.String2ObjectID(ownerStr)
		}

		result, err := h.VideoService.List(c.Context(), opts)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// UpdateDetails cập nhật title/description, chỉ owner được sửa.
func (h *VideoHandler) UpdateDetails(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requester(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		videoID, err := videoIDFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(videodto.VideoUpdateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		video, err := h.VideoService.UpdateDetails(c.Context(), videoID, userID, input)
		h.HandleResponse(c, video, err)
		return nil
	})
}

// TogglePublish đảo trạng thái publish, chỉ owner được thao tác.
func (h *VideoHandler) TogglePublish(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requester(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		videoID, err := videoIDFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		video, err := h.VideoService.TogglePublish(c.Context(), videoID, userID)
		h.HandleResponse(c, video, err)
		return nil
	})
}

// Remove xóa video cùng comment và like liên quan, chỉ owner được thao tác.
func (h *VideoHandler) Remove(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requester(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		videoID, err := videoIDFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if err := h.VideoService.Delete(c.Context(), videoID, userID); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogAction("video_delete", c, map[string]interface{}{
			"video_id": videoID.Hex(),
		})
		h.HandleResponse(c, fiber.Map{"deleted": true}, nil)
		return nil
	})
}

// RecordWatch nhận heartbeat tiến độ xem và tính view khi đủ ngưỡng.
// Luôn trả 200 khi video tồn tại; payload cho biết heartbeat có được tính không.
func (h *VideoHandler) RecordWatch(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requester(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		videoID, err := videoIDFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(videodto.WatchProgressInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		result, err := h.VideoService.RecordWatch(c.Context(), videoID, userID, input)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// Stream proxy một byte range của video từ media store về client.
// Header Range là bắt buộc; response 206 giữ nguyên Content-Range,
// Accept-Ranges và Content-Length của upstream, body được pipe chứ không buffer.
func (h *VideoHandler) Stream(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		videoID, err := videoIDFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		source, err := h.VideoService.OpenStream(c.Context(), videoID, c.Get("Range"))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		c.Set("Content-Type", source.ContentType)
		if source.ContentRange != "" {
			c.Set("Content-Range", source.ContentRange)
		}
		if source.AcceptRanges != "" {
			c.Set("Accept-Ranges", source.AcceptRanges)
		}
		c.Status(fiber.StatusPartialContent)

		// Lỗi giữa chừng sau khi đã gửi header: kết nối bị đóng, không đổi status được nữa
		utility.StreamBody(c.RequestCtx(), source.Body, source.ContentLength)
		return nil
	})
}
