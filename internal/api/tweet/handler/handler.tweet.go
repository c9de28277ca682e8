// Package tweethdl chứa HTTP handler cho domain tweet.
package tweethdl

import (
	"fmt"

	basehdl "video_tube/internal/api/base/handler"
	tweetdto "video_tube/internal/api/tweet/dto"
	tweetmodels "video_tube/internal/api/tweet/models"
	tweetsvc "video_tube/internal/api/tweet/service"
	"video_tube/internal/common"
	"video_tube/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TweetHandler xử lý các request liên quan đến tweet
type TweetHandler struct {
	basehdl.BaseHandler[tweetmodels.Tweet, tweetdto.TweetCreateInput, tweetdto.TweetUpdateInput]
	TweetService *tweetsvc.TweetService
}

// NewTweetHandler tạo mới TweetHandler
func NewTweetHandler() (*TweetHandler, error) {
	tweetService, err := tweetsvc.NewTweetService()
	if err != nil {
		return nil, fmt.Errorf("failed to create tweet service: %v", err)
	}

	baseHandler := basehdl.NewBaseHandler[tweetmodels.Tweet, tweetdto.TweetCreateInput, tweetdto.TweetUpdateInput](tweetService)
	h := &TweetHandler{
		BaseHandler:  *baseHandler,
		TweetService: tweetService,
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

// Add tạo tweet mới, owner lấy từ token
func (h *TweetHandler) Add(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requester(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(tweetdto.TweetCreateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		tweet, err := h.TweetService.InsertOne(c.Context(), tweetmodels.Tweet{
			Content: input.Content,
			Owner:   userID,
		})
		h.HandleCreatedResponse(c, tweet, err)
		return nil
	})
}

// ListByUser trả về tweet của một user bất kỳ
func (h *TweetHandler) ListByUser(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userIDStr := c.Params("userId")
		if userIDStr == "" || !primitive.IsValidObjectID(userIDStr) {
			h.HandleResponse(c, nil, common.ErrInvalidID)
			return nil
		}

		tweets, err := h.TweetService.ListByUser(c.Context(), utility.String2ObjectID(userIDStr))
		h.HandleResponse(c, tweets, err)
		return nil
	})
}

// GetDetail trả về một tweet kèm người đăng và số like
func (h *TweetHandler) GetDetail(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		idStr := c.Params("id")
		if idStr == "" || !primitive.IsValidObjectID(idStr) {
			h.HandleResponse(c, nil, common.ErrInvalidID)
			return nil
		}

		tweet, err := h.TweetService.GetDetail(c.Context(), utility.String2ObjectID(idStr))
		h.HandleResponse(c, tweet, err)
		return nil
	})
}

// Update sửa nội dung tweet, chỉ người đăng được sửa
func (h *TweetHandler) Update(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requester(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		idStr := c.Params("id")
		if idStr == "" || !primitive.IsValidObjectID(idStr) {
			h.HandleResponse(c, nil, common.ErrInvalidID)
			return nil
		}

		input := new(tweetdto.TweetUpdateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		tweet, err := h.TweetService.UpdateOwn(c.Context(), utility.String2ObjectID(idStr), userID, input.Content)
		h.HandleResponse(c, tweet, err)
		return nil
	})
}

// Remove xóa tweet, chỉ người đăng được xóa
func (h *TweetHandler) Remove(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requester(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		idStr := c.Params("id")
		if idStr == "" || !primitive.IsValidObjectID(idStr) {
			h.HandleResponse(c, nil, common.ErrInvalidID)
			return nil
		}

		if err := h.TweetService.DeleteOwn(c.Context(), utility.String2ObjectID(idStr), userID); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, fiber.Map{"deleted": true}, nil)
		return nil
	})
}
