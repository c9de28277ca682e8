// Package subscriptionsvc chứa service cho domain subscription.
package subscriptionsvc

import (
	"context"
	"errors"
	"fmt"

	authmodels "video_tube/internal/api/auth/models"
	basesvc "video_tube/internal/api/base/service"
	subscriptionmodels "video_tube/internal/api/subscription/models"
	"video_tube/internal/common"
	"video_tube/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubscriptionService là service quản lý lượt đăng ký kênh.
type SubscriptionService struct {
	*basesvc.BaseServiceMongoImpl[subscriptionmodels.Subscription]
	users *basesvc.BaseServiceMongoImpl[authmodels.User]
}

// NewSubscriptionService tạo mới SubscriptionService
func NewSubscriptionService() (*SubscriptionService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Subscriptions)
	if !exist {
		return nil, fmt.Errorf("failed to get subscriptions collection: %v", common.ErrNotFound)
	}
	userCol, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}

	return &SubscriptionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[subscriptionmodels.Subscription](collection),
		users:                basesvc.NewBaseServiceMongo[authmodels.User](userCol),
	}, nil
}

// ToggleResult là kết quả một thao tác toggle đăng ký kênh.
type ToggleResult struct {
	Subscribed      bool  `json:"subscribed"`      // Trạng thái sau toggle
	SubscriberCount int64 `json:"subscriberCount"` // Tổng lượt đăng ký của kênh sau toggle
}

// Toggle đảo trạng thái đăng ký của user trên một kênh.
// User không tự đăng ký kênh của chính mình được.
func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID primitive.ObjectID, channelID primitive.ObjectID) (*ToggleResult, error) {
	if subscriberID == channelID {
		return nil, common.NewError(common.ErrCodeBusinessOperation, "Không thể tự đăng ký kênh của chính mình", common.StatusBadRequest, nil)
	}

	// Kênh phải là một user tồn tại
	if _, err := s.users.FindOneById(ctx, channelID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	filter := bson.M{"subscriber": subscriberID, "channel": channelID}

	var subscribed bool
	existing, err := s.FindOne(ctx, filter, nil)
	switch {
	case err == nil:
		if err := s.DeleteById(ctx, existing.ID); err != nil {
			return nil, err
		}
	case errors.Is(err, common.ErrNotFound):
		if _, err := s.InsertOne(ctx, subscriptionmodels.Subscription{
			Subscriber: subscriberID,
			Channel:    channelID,
		}); err != nil {
			return nil, err
		}
		subscribed = true
	default:
		return nil, err
	}

	count, err := s.CountDocuments(ctx, bson.M{"channel": channelID})
	if err != nil {
		return nil, err
	}

	return &ToggleResult{Subscribed: subscribed, SubscriberCount: count}, nil
}

// ListSubscribers trả về danh sách user đã đăng ký một kênh.
func (s *SubscriptionService) ListSubscribers(ctx context.Context, channelID primitive.ObjectID) ([]bson.M, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"channel": channelID}},
		{"$sort": bson.M{"createdAt": -1}},
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Users,
			"localField":   "subscriber",
			"foreignField": "_id",
			"as":           "subscriberDetails",
			"pipeline": []bson.M{
				{"$project": bson.M{"username": 1, "fullName": 1, "avatar": 1}},
			},
		}},
		{"$addFields": bson.M{"subscriberDetails": bson.M{"$first": "$subscriberDetails"}}},
	}

	return s.Aggregate(ctx, pipeline)
}

// ListSubscribedChannels trả về danh sách kênh mà một user đã đăng ký.
func (s *SubscriptionService) ListSubscribedChannels(ctx context.Context, subscriberID primitive.ObjectID) ([]bson.M, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"subscriber": subscriberID}},
		{"$sort": bson.M{"createdAt": -1}},
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Users,
			"localField":   "channel",
			"foreignField": "_id",
			"as":           "channelDetails",
			"pipeline": []bson.M{
				{"$project": bson.M{"username": 1, "fullName": 1, "avatar": 1}},
			},
		}},
		{"$addFields": bson.M{"channelDetails": bson.M{"$first": "$channelDetails"}}},
	}

	return s.Aggregate(ctx, pipeline)
}
