// Package playlistmodels chứa model cho domain playlist.
package playlistmodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// Playlist là danh sách video do một user tạo.
type Playlist struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name        string               `json:"name" bson:"name" validate:"required"`
	Description string               `json:"description" bson:"description"`
	Videos      []primitive.ObjectID `json:"videos" bson:"videos"`
	Owner       primitive.ObjectID   `json:"owner" bson:"owner" index:"single:1" validate:"required"`
	CreatedAt   int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64                `json:"updatedAt" bson:"updatedAt"`
}
