// Package playlistsvc chứa service cho domain playlist.
package playlistsvc

import (
	"context"
	"fmt"

	basesvc "video_tube/internal/api/base/service"
	playlistmodels "video_tube/internal/api/playlist/models"
	"video_tube/internal/common"
	"video_tube/internal/global"
	"video_tube/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlaylistService là service quản lý playlist.
type PlaylistService struct {
	*basesvc.BaseServiceMongoImpl[playlistmodels.Playlist]
}

// NewPlaylistService tạo mới PlaylistService
func NewPlaylistService() (*PlaylistService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Playlists)
	if !exist {
		return nil, fmt.Errorf("failed to get playlists collection: %v", common.ErrNotFound)
	}

	return &PlaylistService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[playlistmodels.Playlist](collection),
	}, nil
}

// requireOwner tìm playlist theo id và kiểm tra quyền sở hữu.
func (s *PlaylistService) requireOwner(ctx context.Context, playlistID primitive.ObjectID, requester primitive.ObjectID) (playlistmodels.Playlist, error) {
	playlist, err := s.FindOneById(ctx, playlistID)
	if err != nil {
		return playlist, err
	}
	if playlist.Owner != requester {
		return playlist, common.ErrNotOwner
	}
	return playlist, nil
}

// GetDetail trả về playlist kèm danh sách video đã resolve (chỉ video còn
// tồn tại và đã publish) và thông tin chủ playlist.
func (s *PlaylistService) GetDetail(ctx context.Context, playlistID primitive.ObjectID) (bson.M, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"_id": playlistID}},
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Videos,
			"localField":   "videos",
			"foreignField": "_id",
			"as":           "videos",
			"pipeline": []bson.M{
				{"$match": bson.M{"isPublished": true}},
				{"$project": bson.M{"videoFile": 0}},
			},
		}},
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

// ListByUser trả về các playlist của một user.
func (s *PlaylistService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]playlistmodels.Playlist, error) {
	return s.Find(ctx, bson.M{"owner": userID}, nil)
}

// AddVideo thêm video vào playlist, chỉ owner được thao tác.
// $addToSet nên video đã có trong playlist không bị thêm trùng.
func (s *PlaylistService) AddVideo(ctx context.Context, playlistID primitive.ObjectID, requester primitive.ObjectID, videoID primitive.ObjectID) (playlistmodels.Playlist, error) {
	playlist, err := s.requireOwner(ctx, playlistID, requester)
	if err != nil {
		return playlist, err
	}

	customBson := &utility.CustomBson{}
	update, err := customBson.AddToSet(bson.M{"videos": videoID})
	if err != nil {
		return playlist, common.NewError(common.ErrCodeDatabase, common.MsgDatabaseError, common.StatusInternalServerError, err)
	}

	return s.UpdateOne(ctx, bson.M{"_id": playlistID}, update, nil)
}

// RemoveVideo gỡ video khỏi playlist, chỉ owner được thao tác.
func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID primitive.ObjectID, requester primitive.ObjectID, videoID primitive.ObjectID) (playlistmodels.Playlist, error) {
	playlist, err := s.requireOwner(ctx, playlistID, requester)
	if err != nil {
		return playlist, err
	}

	customBson := &utility.CustomBson{}
	update, err := customBson.Pull(bson.M{"videos": videoID})
	if err != nil {
		return playlist, common.NewError(common.ErrCodeDatabase, common.MsgDatabaseError, common.StatusInternalServerError, err)
	}

	return s.UpdateOne(ctx, bson.M{"_id": playlistID}, update, nil)
}

// UpdateOwn sửa name/description của playlist, chỉ owner được sửa.
func (s *PlaylistService) UpdateOwn(ctx context.Context, playlistID primitive.ObjectID, requester primitive.ObjectID, name, description string) (playlistmodels.Playlist, error) {
	playlist, err := s.requireOwner(ctx, playlistID, requester)
	if err != nil {
		return playlist, err
	}

	set := map[string]interface{}{}
	if name != "" {
		set["name"] = name
	}
	if description != "" {
		set["description"] = description
	}
	if len(set) == 0 {
		return playlist, common.ErrRequiredField
	}

	return s.UpdateById(ctx, playlistID, &basesvc.UpdateData{Set: set})
}

// DeleteOwn xóa playlist, chỉ owner được xóa. Video trong playlist không bị ảnh hưởng.
func (s *PlaylistService) DeleteOwn(ctx context.Context, playlistID primitive.ObjectID, requester primitive.ObjectID) error {
	if _, err := s.requireOwner(ctx, playlistID, requester); err != nil {
		return err
	}
	return s.DeleteById(ctx, playlistID)
}
