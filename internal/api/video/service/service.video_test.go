package videosvc

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"video_tube/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestWatchThreshold(t *testing.T) {
	cases := []struct {
		duration int64
		want     float64
	}{
		{duration: 40, want: 20},  // Một nửa thời lượng
		{duration: 80, want: 30},  // Chạm trần 30 giây
		{duration: 60, want: 30},  // Đúng biên trần
		{duration: 10, want: 5},   // Video ngắn
		{duration: 1, want: 0.5},  // Video cực ngắn
		{duration: 300, want: 30}, // Video dài
	}

	for _, tc := range cases {
		got := WatchThreshold(tc.duration)
		if got != tc.want {
			t.Errorf("Ngưỡng tính view sai với duration %d: got %v, want %v", tc.duration, got, tc.want)
		}
	}
}

func TestWatchThresholdBienGiaTri(t *testing.T) {
	// Video 40 giây: 19 giây chưa đủ, 20 giây vừa đủ
	threshold := WatchThreshold(40)
	if 19 >= threshold {
		t.Errorf("19 giây không được vượt ngưỡng %v của video 40 giây", threshold)
	}
	if 20 < threshold {
		t.Errorf("20 giây phải đạt ngưỡng %v của video 40 giây", threshold)
	}

	// Video 80 giây: ngưỡng bị chặn ở 30, không phải 40
	threshold = WatchThreshold(80)
	if 29 >= threshold {
		t.Errorf("29 giây không được vượt ngưỡng %v của video 80 giây", threshold)
	}
	if 30 < threshold {
		t.Errorf("30 giây phải đạt ngưỡng %v của video 80 giây", threshold)
	}
}

func TestUploadTuChoiTruocKhiDayAsset(t *testing.T) {
	// Service không có kết nối media store hay database:
	// các kiểm tra đầu vào phải chặn request trước khi chạm tới chúng.
	s := &VideoService{maxVideoBytes: 100 * 1024 * 1024}
	owner := primitive.NewObjectID()

	video := &multipart.FileHeader{Filename: "clip.mp4", Size: 50 * 1024 * 1024}
	thumb := &multipart.FileHeader{Filename: "thumb.jpg", Size: 100 * 1024}

	// Thiếu title
	_, err := s.Upload(context.Background(), owner, UploadSubmission{Description: "Mô tả", Video: video, Thumbnail: thumb})
	if err == nil {
		t.Fatalf("Upload thiếu title phải bị từ chối")
	}

	// Thiếu description
	_, err = s.Upload(context.Background(), owner, UploadSubmission{Title: "Video test", Video: video, Thumbnail: thumb})
	if err == nil {
		t.Fatalf("Upload thiếu description phải bị từ chối")
	}

	// Thiếu file
	_, err = s.Upload(context.Background(), owner, UploadSubmission{Title: "Video test", Description: "Mô tả", Video: video})
	if err == nil {
		t.Fatalf("Upload thiếu thumbnail phải bị từ chối")
	}
	_, err = s.Upload(context.Background(), owner, UploadSubmission{Title: "Video test", Description: "Mô tả", Thumbnail: thumb})
	if err == nil {
		t.Fatalf("Upload thiếu file video phải bị từ chối")
	}

	// Vượt giới hạn kích thước
	oversize := &multipart.FileHeader{Filename: "big.mp4", Size: 101 * 1024 * 1024}
	_, err = s.Upload(context.Background(), owner, UploadSubmission{Title: "Video test", Description: "Mô tả", Video: oversize, Thumbnail: thumb})
	if !errors.Is(err, common.ErrVideoTooLarge) {
		t.Errorf("Video vượt giới hạn phải trả về ErrVideoTooLarge, got %v", err)
	}
}
