// Package subscriptionhdl chứa HTTP handler cho domain subscription.
package subscriptionhdl

import (
	"fmt"

	basehdl "video_tube/internal/api/base/handler"
	subscriptiondto "video_tube/internal/api/subscription/dto"
	subscriptionmodels "video_tube/internal/api/subscription/models"
	subscriptionsvc "video_tube/internal/api/subscription/service"
	"video_tube/internal/common"
	"video_tube/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubscriptionHandler xử lý các request liên quan đến đăng ký kênh
type SubscriptionHandler struct {
	basehdl.BaseHandler[subscriptionmodels.Subscription, subscriptiondto.SubscriptionCreateInput, subscriptiondto.SubscriptionUpdateInput]
	SubscriptionService *subscriptionsvc.SubscriptionService
}

// NewSubscriptionHandler tạo mới SubscriptionHandler
func NewSubscriptionHandler() (*SubscriptionHandler, error) {
	subscriptionService, err := subscriptionsvc.NewSubscriptionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription service: %v", err)
	}

	baseHandler := basehdl.NewBaseHandler[subscriptionmodels.Subscription, subscriptiondto.SubscriptionCreateInput, subscriptiondto.SubscriptionUpdateInput](subscriptionService)
	h := &SubscriptionHandler{
		BaseHandler:         *baseHandler,
		SubscriptionService: subscriptionService,
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

// Toggle đảo trạng thái đăng ký của user hiện tại trên một kênh
func (h *SubscriptionHandler) Toggle(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requester(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		channelIDStr := c.Params("channelId")
		if channelIDStr == "" || !primitive.IsValidObjectID(channelIDStr) {
			h.HandleResponse(c, nil, common.ErrInvalidID)
			return nil
		}

		result, err := h.SubscriptionService.Toggle(c.Context(), userID, utility.String2ObjectID(channelIDStr))
		h.HandleResponse(c, result, err)
		return nil
	})
}

// ListSubscribers trả về danh sách user đã đăng ký một kênh
func (h *SubscriptionHandler) ListSubscribers(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		channelIDStr := c.Params("channelId")
		if channelIDStr == "" || !primitive.IsValidObjectID(channelIDStr) {
			h.HandleResponse(c, nil, common.ErrInvalidID)
			return nil
		}

		subscribers, err := h.SubscriptionService.ListSubscribers(c.Context(), utility.String2ObjectID(channelIDStr))
		h.HandleResponse(c, subscribers, err)
		return nil
	})
}

// ListSubscribedChannels trả về các kênh user hiện tại đã đăng ký
func (h *SubscriptionHandler) ListSubscribedChannels(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requester(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		channels, err := h.SubscriptionService.ListSubscribedChannels(c.Context(), userID)
		h.HandleResponse(c, channels, err)
		return nil
	})
}
