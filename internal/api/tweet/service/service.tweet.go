// Package tweetsvc chứa service cho domain tweet.
package tweetsvc

import (
	"context"
	"fmt"

	basesvc "video_tube/internal/api/base/service"
	likemodels "video_tube/internal/api/like/models"
	tweetmodels "video_tube/internal/api/tweet/models"
	"video_tube/internal/common"
	"video_tube/internal/global"
	"video_tube/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TweetService là service quản lý tweet.
type TweetService struct {
	*basesvc.BaseServiceMongoImpl[tweetmodels.Tweet]
	likes *basesvc.BaseServiceMongoImpl[likemodels.Like]
}

// NewTweetService tạo mới TweetService
func NewTweetService() (*TweetService, error) {
	tweets, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Tweets)
	if !exist {
		return nil, fmt.Errorf("failed to get tweets collection: %v", common.ErrNotFound)
	}
	likes, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Likes)
	if !exist {
		return nil, fmt.Errorf("failed to get likes collection: %v", common.ErrNotFound)
	}

	return &TweetService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[tweetmodels.Tweet](tweets),
		likes:                basesvc.NewBaseServiceMongo[likemodels.Like](likes),
	}, nil
}

// ListByUser trả về tweet của một user, mới nhất trước, kèm số like.
func (s *TweetService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]bson.M, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"owner": userID}},
		{"$sort": bson.M{"createdAt": -1}},
		{"$lookup": bson.M{
			"from": global.MongoDB_ColNames.Likes,
			"let":  bson.M{"tweetId": "$_id"},
			"pipeline": []bson.M{
				{"$match": bson.M{"$expr": bson.M{"$and": []bson.M{
					{"$eq": []interface{}{"$targetId", "$$tweetId"}},
					{"$eq": []interface{}{"$targetType", likemodels.LikeTargetTweet}},
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

	return s.Aggregate(ctx, pipeline)
}

// GetDetail trả về một tweet kèm thông tin người đăng và số like.
func (s *TweetService) GetDetail(ctx context.Context, tweetID primitive.ObjectID) (bson.M, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"_id": tweetID}},
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Users,
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "ownerDetails",
			"pipeline": []bson.M{
				{"$project": bson.M{"username": 1, "fullName": 1, "avatar": 1}},
			},
		}},
		{"$lookup": bson.M{
			"from": global.MongoDB_ColNames.Likes,
			"let":  bson.M{"tweetId": "$_id"},
			"pipeline": []bson.M{
				{"$match": bson.M{"$expr": bson.M{"$and": []bson.M{
					{"$eq": []interface{}{"$targetId", "$$tweetId"}},
					{"$eq": []interface{}{"$targetType", likemodels.LikeTargetTweet}},
				}}}},
				{"$count": "count"},
			},
			"as": "likeStats",
		}},
		{"$addFields": bson.M{
			"ownerDetails": bson.M{"$first": "$ownerDetails"},
			"likesCount":   bson.M{"$ifNull": []interface{}{bson.M{"$first": "$likeStats.count"}, 0}},
		}},
		{"$project": bson.M{"likeStats": 0}},
	}

	results, err := s.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, common.ErrNotFound
	}
	return results[0], nil
}

// UpdateOwn sửa nội dung tweet, chỉ người đăng được sửa.
func (s *TweetService) UpdateOwn(ctx context.Context, tweetID primitive.ObjectID, requester primitive.ObjectID, content string) (tweetmodels.Tweet, error) {
	tweet, err := s.FindOneById(ctx, tweetID)
	if err != nil {
		return tweet, err
	}
	if tweet.Owner != requester {
		return tweet, common.ErrNotOwner
	}

	return s.UpdateById(ctx, tweetID, &basesvc.UpdateData{
		Set: map[string]interface{}{"content": content},
	})
}

// DeleteOwn xóa tweet cùng các like trên tweet đó, chỉ người đăng được xóa.
func (s *TweetService) DeleteOwn(ctx context.Context, tweetID primitive.ObjectID, requester primitive.ObjectID) error {
	tweet, err := s.FindOneById(ctx, tweetID)
	if err != nil {
		return err
	}
	if tweet.Owner != requester {
		return common.ErrNotOwner
	}

	if err := s.DeleteById(ctx, tweetID); err != nil {
		return err
	}

	if _, err := s.likes.DeleteMany(ctx, bson.M{"targetId": tweetID, "targetType": likemodels.LikeTargetTweet}); err != nil {
		logger.GetAppLogger().WithError(err).WithField("tweet", tweetID.Hex()).
			Warn("[TWEET] Không xóa được like của tweet")
	}
	return nil
}
