// Package playlisthdl chứa HTTP handler cho domain playlist.
package playlisthdl

import (
	"fmt"

	basehdl "video_tube/internal/api/base/handler"
	playlistdto "video_tube/internal/api/playlist/dto"
	playlistmodels "video_tube/internal/api/playlist/models"
	playlistsvc "video_tube/internal/api/playlist/service"
	"video_tube/internal/common"
	"video_tube/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlaylistHandler xử lý các request liên quan đến playlist
type PlaylistHandler struct {
	basehdl.BaseHandler[playlistmodels.Playlist, playlistdto.PlaylistCreateInput, playlistdto.PlaylistUpdateInput]
	PlaylistService *playlistsvc.PlaylistService
}

// NewPlaylistHandler tạo mới PlaylistHandler
func NewPlaylistHandler() (*PlaylistHandler, error) {
	playlistService, err := playlistsvc.NewPlaylistService()
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist service: %v", err)
	}

	baseHandler := basehdl.NewBaseHandler[playlistmodels.Playlist, playlistdto.PlaylistCreateInput, playlistdto.PlaylistUpdateInput](playlistService)
	h := &PlaylistHandler{
		BaseHandler:     *baseHandler,
		PlaylistService: playlistService,
	}
	return h, nil
}

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

// objectIDParam đọc và kiểm tra một ObjectID trên URL.
func objectIDParam(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	idStr := c.Params(name)
	if idStr == "" || !primitive.IsValidObjectID(idStr) {
		return primitive.NilObjectID, common.ErrInvalidID
	}
	return utility.String2ObjectID(idStr), nil
}

// Add tạo playlist mới, owner lấy từ token
func (h *PlaylistHandler) Add(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requester(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(playlistdto.PlaylistCreateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		playlist, err := h.PlaylistService.InsertOne(c.Context(), playlistmodels.Playlist{
			Name:        input.Name,
			Description: input.Description,
			Videos:      []primitive.ObjectID{},
			Owner:       userID,
		})
		h.HandleCreatedResponse(c, playlist, err)
		return nil
	})
}

// GetDetail trả về playlist kèm danh sách video đã resolve
func (h *PlaylistHandler) GetDetail(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		playlistID, err := objectIDParam(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		detail, err := h.PlaylistService.GetDetail(c.Context(), playlistID)
		h.HandleResponse(c, detail, err)
		return nil
	})
}

// ListByUser trả về playlist của một user bất kỳ
func (h *PlaylistHandler) ListByUser(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := objectIDParam(c, "userId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		playlists, err := h.PlaylistService.ListByUser(c.Context(), userID)
		h.HandleResponse(c, playlists, err)
		return nil
	})
}

// AddVideo thêm video vào playlist, chỉ owner được thao tác
func (h *PlaylistHandler) AddVideo(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requester(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		playlistID, err := objectIDParam(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		videoID, err := objectIDParam(c, "videoId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		playlist, err := h.PlaylistService.AddVideo(c.Context(), playlistID, userID, videoID)
		h.HandleResponse(c, playlist, err)
		return nil
	})
}

// RemoveVideo gỡ video khỏi playlist, chỉ owner được thao tác
func (h *PlaylistHandler) RemoveVideo(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requester(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		playlistID, err := objectIDParam(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		videoID, err := objectIDParam(c, "videoId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		playlist, err := h.PlaylistService.RemoveVideo(c.Context(), playlistID, userID, videoID)
		h.HandleResponse(c, playlist, err)
		return nil
	})
}

// Update sửa name/description của playlist, chỉ owner được sửa
func (h *PlaylistHandler) Update(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requester(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		playlistID, err := objectIDParam(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(playlistdto.PlaylistUpdateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		playlist, err := h.PlaylistService.UpdateOwn(c.Context(), playlistID, userID, input.Name, input.Description)
		h.HandleResponse(c, playlist, err)
		return nil
	})
}

// Remove xóa playlist, chỉ owner được xóa
func (h *PlaylistHandler) Remove(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requester(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		playlistID, err := objectIDParam(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if err := h.PlaylistService.DeleteOwn(c.Context(), playlistID, userID); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, fiber.Map{"deleted": true}, nil)
		return nil
	})
}
