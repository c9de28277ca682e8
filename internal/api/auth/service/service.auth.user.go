// Package authsvc chứa service data access cho domain auth (User).
package authsvc

import (
	"context"
	"fmt"

	basesvc "video_tube/internal/api/base/service"
	authmodels "video_tube/internal/api/auth/models"
	"video_tube/internal/common"
	"video_tube/internal/global"
	"video_tube/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserService là service quản lý người dùng (CRUD + lịch sử xem).
type UserService struct {
	*basesvc.BaseServiceMongoImpl[authmodels.User]
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}

	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[authmodels.User](collection),
	}, nil
}

// FindOne tìm một user theo filter (wrapper để package khác gọi được)
func (s *UserService) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (authmodels.User, error) {
	return s.BaseServiceMongoImpl.FindOne(ctx, filter, opts)
}

// AddToWatchHistory thêm một video vào lịch sử xem của user.
// Dùng $addToSet nên video đã có trong lịch sử sẽ không bị thêm trùng.
func (s *UserService) AddToWatchHistory(ctx context.Context, userID primitive.ObjectID, videoID primitive.ObjectID) error {
	customBson := &utility.CustomBson{}
	update, err := customBson.AddToSet(bson.M{"watchHistory": videoID})
	if err != nil {
		return common.NewError(common.ErrCodeDatabase, common.MsgDatabaseError, common.StatusInternalServerError, err)
	}

	_, err = s.BaseServiceMongoImpl.UpdateOne(ctx, bson.M{"_id": userID}, update, nil)
	return err
}

// GetWatchHistory trả về danh sách video trong lịch sử xem của user,
// kèm thông tin chủ sở hữu của từng video ($lookup sang users).
func (s *UserService) GetWatchHistory(ctx context.Context, userID primitive.ObjectID) ([]bson.M, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"_id": userID}},
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Videos,
			"localField":   "watchHistory",
			"foreignField": "_id",
			"as":           "watchHistory",
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
			},
		}},
		{"$project": bson.M{"watchHistory": 1}},
	}

	return s.BaseServiceMongoImpl.Aggregate(ctx, pipeline)
}
