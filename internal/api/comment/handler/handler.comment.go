// Package commenthdl chứa HTTP handler cho domain comment.
package commenthdl

import (
	"fmt"

	basehdl "video_tube/internal/api/base/handler"
	commentdto "video_tube/internal/api/comment/dto"
	commentmodels "video_tube/internal/api/comment/models"
	commentsvc "video_tube/internal/api/comment/service"
	"video_tube/internal/common"
	"video_tube/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentHandler xử lý các request liên quan đến bình luận
type CommentHandler struct {
	basehdl.BaseHandler[commentmodels.Comment, commentdto.CommentCreateInput, commentdto.CommentUpdateInput]
	CommentService *commentsvc.CommentService
}

// NewCommentHandler tạo mới CommentHandler
func NewCommentHandler() (*CommentHandler, error) {
	commentService, err := commentsvc.NewCommentService()
	if err != nil {
		return nil, fmt.Errorf("failed to create comment service: %v", err)
	}

	baseHandler := basehdl.NewBaseHandler[commentmodels.Comment, commentdto.CommentCreateInput, commentdto.CommentUpdateInput](commentService)
	h := &CommentHandler{
		BaseHandler:    *baseHandler,
		CommentService: commentService,
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

// Add tạo comment mới trên một video, owner lấy từ token.
func (h *CommentHandler) Add(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requester(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(commentdto.CommentCreateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if !primitive.IsValidObjectID(input.Video) {
			h.HandleResponse(c, nil, common.ErrInvalidID)
			return nil
		}

		comment, err := h.CommentService.InsertOne(c.Context(), commentmodels.Comment{
			Content: input.Content,
			Video:   utility.String2ObjectID(input.Video),
			Owner:   userID,
		})
		h.HandleCreatedResponse(c, comment, err)
		return nil
	})
}

// ListByVideo trả về comment của một video theo trang
func (h *CommentHandler) ListByVideo(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		videoIDStr := c.Params("videoId")
		if videoIDStr == "" || !primitive.IsValidObjectID(videoIDStr) {
			h.HandleResponse(c, nil, common.ErrInvalidID)
			return nil
		}

		result, err := h.CommentService.ListByVideo(c.Context(),
			utility.String2ObjectID(videoIDStr),
			utility.P2Int64(c.Query("page")),
			utility.P2Int64(c.Query("limit")))
		h.HandleResponse(c, result, err)
		return nil
	})
}

// Update sửa nội dung comment, chỉ người viết được sửa
func (h *CommentHandler) Update(c fiber.Ctx) error {
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

		input := new(commentdto.CommentUpdateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		comment, err := h.CommentService.UpdateOwn(c.Context(), utility.String2ObjectID(idStr), userID, input.Content)
		h.HandleResponse(c, comment, err)
		return nil
	})
}

// Remove xóa comment, chỉ người viết được xóa
func (h *CommentHandler) Remove(c fiber.Ctx) error {
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

		if err := h.CommentService.DeleteOwn(c.Context(), utility.String2ObjectID(idStr), userID); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, fiber.Map{"deleted": true}, nil)
		return nil
	})
}
