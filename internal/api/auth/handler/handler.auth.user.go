// Package authhdl chứa HTTP handler cho domain auth (User).
package authhdl

import (
	"fmt"

	basehdl "video_tube/internal/api/base/handler"
	authdto "video_tube/internal/api/auth/dto"
	authmodels "video_tube/internal/api/auth/models"
	authsvc "video_tube/internal/api/auth/service"
	"video_tube/internal/common"

	"github.com/gofiber/fiber/v3"
)

// UserHandler xử lý các request liên quan đến người dùng
type UserHandler struct {
	basehdl.BaseHandler[authmodels.User, authdto.UserCreateInput, authdto.UserUpdateInput]
	UserService *authsvc.UserService
}

// NewUserHandler tạo mới UserHandler
func NewUserHandler() (*UserHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}

	baseHandler := basehdl.NewBaseHandler[authmodels.User, authdto.UserCreateInput, authdto.UserUpdateInput](userService)
	h := &UserHandler{
		BaseHandler: *baseHandler,
		UserService: userService,
	}
	return h, nil
}

// GetMe trả về thông tin user hiện tại (đã xác thực qua middleware auth)
func (h *UserHandler) GetMe(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, ok := c.Locals("user").(authmodels.User)
		if !ok {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}
		h.HandleResponse(c, user, nil)
		return nil
	})
}

// GetWatchHistory trả về lịch sử xem của user hiện tại, kèm thông tin chủ video
func (h *UserHandler) GetWatchHistory(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, ok := c.Locals("user").(authmodels.User)
		if !ok {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		history, err := h.UserService.GetWatchHistory(c.Context(), user.ID)
		h.HandleResponse(c, history, err)
		return nil
	})
}
