// Package commentsvc chứa service cho domain comment.
package commentsvc

import (
	"context"
	"fmt"

	basesvc "video_tube/internal/api/base/service"
	commentmodels "video_tube/internal/api/comment/models"
	likemodels "video_tube/internal/api/like/models"
	"video_tube/internal/common"
	"video_tube/internal/global"
	"video_tube/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentService là service quản lý bình luận.
type CommentService struct {
	*basesvc.BaseServiceMongoImpl[commentmodels.Comment]
	likes *basesvc.BaseServiceMongoImpl[likemodels.Like]
}

// NewCommentService tạo mới CommentService
func NewCommentService() (*CommentService, error) {
	comments, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Comments)
	if !exist {
		return nil, fmt.Errorf("failed to get comments collection: %v", common.ErrNotFound)
	}
	likes, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Likes)
	if !exist {
		return nil, fmt.Errorf("failed to get likes collection: %v", common.ErrNotFound)
	}

	return &CommentService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[commentmodels.Comment](comments),
		likes:                basesvc.NewBaseServiceMongo[likemodels.Like](likes),
	}, nil
}

// ListByVideo trả về comment của một video theo trang, mới nhất trước,
// kèm thông tin người viết và số like của từng comment.
func (s *CommentService) ListByVideo(ctx context.Context, videoID primitive.ObjectID, page, limit int64) (bson.M, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	match := bson.M{"video": videoID}
	total, err := s.CountDocuments(ctx, match)
	if err != nil {
		return nil, err
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$sort": bson.M{"createdAt": -1}},
		{"$skip": (page - 1) * limit},
		{"$limit": limit},
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
			"let":  bson.M{"commentId": "$_id"},
			"pipeline": []bson.M{
				{"$match": bson.M{"$expr": bson.M{"$and": []bson.M{
					{"$eq": []interface{}{"$targetId", "$$commentId"}},
					{"$eq": []interface{}{"$targetType", likemodels.LikeTargetComment}},
				}}}},
				{"$count": "count"},
			},
			"as": "likeStats",
		}},
		{"$addFields": bson.M{
			"likesCount": bson.M{"$ifNull": []interface{}{bson.M{"$first": "$likeStats.count"}, 0}},
		}},
		{"$project": bson.M{"likeStats": 0}},
	}

	items, err := s.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var totalPage int64
	if total > 0 {
		totalPage = (total + limit - 1) / limit
	}

	return bson.M{
		"items":     items,
		"page":      page,
		"limit":     limit,
		"itemCount": int64(len(items)),
		"total":     total,
		"totalPage": totalPage,
	}, nil
}

// UpdateOwn sửa nội dung comment, chỉ người viết được sửa.
func (s *CommentService) UpdateOwn(ctx context.Context, commentID primitive.ObjectID, requester primitive.ObjectID, content string) (commentmodels.Comment, error) {
	comment, err := s.FindOneById(ctx, commentID)
	if err != nil {
		return comment, err
	}
	if comment.Owner != requester {
		return comment, common.ErrNotOwner
	}

	return s.UpdateById(ctx, commentID, &basesvc.UpdateData{
		Set: map[string]interface{}{"content": content},
	})
}

// DeleteOwn xóa comment cùng các like trên comment đó, chỉ người viết được xóa.
// Dọn like là best-effort, lỗi chỉ ghi log.
func (s *CommentService) DeleteOwn(ctx context.Context, commentID primitive.ObjectID, requester primitive.ObjectID) error {
	comment, err := s.FindOneById(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.Owner != requester {
		return common.ErrNotOwner
	}

	if err := s.DeleteById(ctx, commentID); err != nil {
		return err
	}

	if _, err := s.likes.DeleteMany(ctx, bson.M{"targetId": commentID, "targetType": likemodels.LikeTargetComment}); err != nil {
		logger.GetAppLogger().WithError(err).WithField("comment", commentID.Hex()).
			Warn("[COMMENT] Không xóa được like của comment")
	}
	return nil
}
