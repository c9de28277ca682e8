// Package likesvc chứa service cho domain like.
package likesvc

import (
	"context"
	"errors"
	"fmt"

	basesvc "video_tube/internal/api/base/service"
	likemodels "video_tube/internal/api/like/models"
	"video_tube/internal/common"
	"video_tube/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LikeService là service quản lý lượt thích.
type LikeService struct {
	*basesvc.BaseServiceMongoImpl[likemodels.Like]
}

// NewLikeService tạo mới LikeService
func NewLikeService() (*LikeService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Likes)
	if !exist {
		return nil, fmt.Errorf("failed to get likes collection: %v", common.ErrNotFound)
	}

	return &LikeService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[likemodels.Like](collection),
	}, nil
}

// ToggleResult là kết quả một thao tác toggle like.
type ToggleResult struct {
	Liked      bool  `json:"liked"`      // Trạng thái sau toggle
	LikesCount int64 `json:"likesCount"` // Tổng like của đối tượng sau toggle
}

// Toggle đảo trạng thái like của user trên một đối tượng:
// đã like thì bỏ, chưa like thì thêm.
func (s *LikeService) Toggle(ctx context.Context, userID primitive.ObjectID, targetID primitive.ObjectID, targetType string) (*ToggleResult, error) {
	filter := bson.M{"targetId": targetID, "targetType": targetType, "likedBy": userID}

	var liked bool
	existing, err := s.FindOne(ctx, filter, nil)
	switch {
	case err == nil:
		if err := s.DeleteById(ctx, existing.ID); err != nil {
			return nil, err
		}
	case errors.Is(err, common.ErrNotFound):
		// Hai toggle chạy đồng thời có thể cùng qua bước FindOne; unique index
		// (targetId, targetType, likedBy) chặn bản ghi thứ hai, coi như đã like
		if _, err := s.InsertOne(ctx, likemodels.Like{
			TargetID:   targetID,
			TargetType: targetType,
			LikedBy:    userID,
		}); err != nil && !errors.Is(err, common.ErrMongoDuplicate) && !errors.Is(err, common.ErrDuplicate) {
			return nil, err
		}
		liked = true
	default:
		return nil, err
	}

	count, err := s.CountDocuments(ctx, bson.M{"targetId": targetID, "targetType": targetType})
	if err != nil {
		return nil, err
	}

	return &ToggleResult{Liked: liked, LikesCount: count}, nil
}

// ListLikedVideos trả về các video mà user đã like, kèm thông tin chủ video.
func (s *LikeService) ListLikedVideos(ctx context.Context, userID primitive.ObjectID) ([]bson.M, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"likedBy": userID, "targetType": likemodels.LikeTargetVideo}},
		{"$sort": bson.M{"createdAt": -1}},
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Videos,
			"localField":   "targetId",
			"foreignField": "_id",
			"as":           "video",
			"pipeline": []bson.M{
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
				{"$project": bson.M{"videoFile": 0}},
			},
		}},
		{"$addFields": bson.M{"video": bson.M{"$first": "$video"}}},
		// Video đã bị xóa thì bỏ qua bản ghi like mồ côi
		{"$match": bson.M{"video": bson.M{"$ne": nil}}},
	}

	return s.Aggregate(ctx, pipeline)
}
