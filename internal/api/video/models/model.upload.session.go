package videomodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// Trạng thái của một phiên upload video.
const (
	UploadStatusPending  = "pending"  // Đã nhận request, đang đẩy asset lên media store
	UploadStatusComplete = "complete" // Đã tạo xong bản ghi video trong catalog
	UploadStatusFailed   = "failed"   // Upload hoặc tạo bản ghi thất bại
)

// UploadSession là bản ghi staging cho pipeline ingestion.
// Được tạo trước khi đẩy asset lên media store; các asset mồ côi (upload xong
// nhưng không tạo được bản ghi video) truy vết được qua session ở trạng thái failed.
type UploadSession struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SessionID    string             `json:"sessionId" bson:"sessionId" index:"unique" validate:"required"`
	Owner        primitive.ObjectID `json:"owner" bson:"owner" index:"single:1" validate:"required"`
	Status       string             `json:"status" bson:"status" index:"single:1" validate:"required,oneof=pending complete failed"`
	VideoBytes   int64              `json:"videoBytes" bson:"videoBytes"`                   // Kích thước file video client gửi lên
	VideoURL     string             `json:"videoUrl,omitempty" bson:"videoUrl,omitempty"`   // URL asset video sau khi upload thành công
	ThumbnailURL string             `json:"thumbnailUrl,omitempty" bson:"thumbnailUrl,omitempty"`
	Video        primitive.ObjectID `json:"video,omitempty" bson:"video,omitempty"`         // ID bản ghi video khi complete
	FailureNote  string             `json:"failureNote,omitempty" bson:"failureNote,omitempty"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}
