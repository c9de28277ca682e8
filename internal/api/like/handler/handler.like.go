// Package likehdl chứa HTTP handler cho domain like.
package likehdl

import (
	"fmt"

	basehdl "video_tube/internal/api/base/handler"
	likedto "video_tube/internal/api/like/dto"
	likemodels "video_tube/internal/api/like/models"
	likesvc "video_tube/internal/api/like/service"
	"video_tube/internal/common"
	"video_tube/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LikeHandler xử lý các request liên quan đến lượt thích
type LikeHandler struct {
	basehdl.BaseHandler[likemodels.Like, likedto.LikeCreateInput, likedto.LikeUpdateInput]
	LikeService *likesvc.LikeService
}

// NewLikeHandler tạo mới LikeHandler
func NewLikeHandler() (*LikeHandler, error) {
	likeService, err := likesvc.NewLikeService()
	if err != nil {
		return nil, fmt.Errorf("failed to create like service: %v", err)
	}

	baseHandler := basehdl.NewBaseHandler[likemodels.Like, likedto.LikeCreateInput, likedto.LikeUpdateInput](likeService)
	h := &LikeHandler{
		BaseHandler: *baseHandler,
		LikeService: likeService,
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

// Toggle đảo trạng thái like của user hiện tại trên một đối tượng
func (h *LikeHandler) Toggle(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requester(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(likedto.LikeToggleInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if !primitive.IsValidObjectID(input.TargetID) {
			h.HandleResponse(c, nil, common.ErrInvalidID)
			return nil
		}

		result, err := h.LikeService.Toggle(c.Context(), userID, utility.String2ObjectID(input.TargetID), input.TargetType)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// ListLikedVideos trả về các video user hiện tại đã like
func (h *LikeHandler) ListLikedVideos(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requester(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		videos, err := h.LikeService.ListLikedVideos(c.Context(), userID)
		h.HandleResponse(c, videos, err)
		return nil
	})
}
