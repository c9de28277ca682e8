package videomodels

import (
	"encoding/json"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestVideoKhongSerializeVideoFile(t *testing.T) {
	video := Video{
		ID:          primitive.NewObjectID(),
		VideoFile:   "https://cdn.example.com/raw/bi-mat.mp4",
		Thumbnail:   "https://cdn.example.com/thumb/abc.jpg",
		Title:       "Video nháp",
		Description: "Chưa publish",
		Duration:    42,
		IsPublished: false,
		Owner:       primitive.NewObjectID(),
	}

	data, err := json.Marshal(video)
	if err != nil {
		t.Fatalf("Không marshal được video: %v", err)
	}

	out := string(data)
	if strings.Contains(out, "videoFile") {
		t.Errorf("JSON không được chứa field videoFile: %s", out)
	}
	if strings.Contains(out, video.VideoFile) {
		t.Errorf("JSON không được lộ URL file gốc: %s", out)
	}
	if !strings.Contains(out, "thumbnail") {
		t.Errorf("JSON vẫn phải giữ các field công khai khác: %s", out)
	}
}
