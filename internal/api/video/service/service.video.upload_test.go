package videosvc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"video_tube/config"
	videomodels "video_tube/internal/api/video/models"
	"video_tube/internal/global"
	"video_tube/internal/mediastore"
)

// stubMedia giả lập media store cho pipeline upload.
type stubMedia struct {
	videoResult *mediastore.UploadResult
	videoErr    error
	imageResult *mediastore.UploadResult
	imageErr    error
	videoCalls  int
	imageCalls  int
}

func (m *stubMedia) UploadVideo(ctx context.Context, fileName string, file io.Reader, folder string) (*mediastore.UploadResult, error) {
	m.videoCalls++
	return m.videoResult, m.videoErr
}

func (m *stubMedia) UploadImage(ctx context.Context, fileName string, file io.Reader, folder string) (*mediastore.UploadResult, error) {
	m.imageCalls++
	return m.imageResult, m.imageErr
}

// stubStager ghi lại các chuyển trạng thái của upload session.
type stubStager struct {
	beginCalled    bool
	completeCalled bool
	failNote       string
	failVideoURL   string
	failThumbURL   string
}

func (s *stubStager) Begin(ctx context.Context, sessionID string, owner primitive.ObjectID, videoBytes int64) (videomodels.UploadSession, error) {
	s.beginCalled = true
	return videomodels.UploadSession{ID: primitive.NewObjectID(), SessionID: sessionID}, nil
}

func (s *stubStager) Complete(ctx context.Context, id primitive.ObjectID, videoID primitive.ObjectID, videoURL, thumbnailURL string) error {
	s.completeCalled = true
	return nil
}

func (s *stubStager) Fail(ctx context.Context, id primitive.ObjectID, note string, videoURL, thumbnailURL string) error {
	s.failNote = note
	s.failVideoURL = videoURL
	s.failThumbURL = thumbnailURL
	return nil
}

// fileHeader tạo một *multipart.FileHeader có nội dung thật, mở được bằng Open().
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("Không tạo được form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("Không ghi được nội dung file: %v", err)
	}
	w.Close()

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("Không đọc được multipart form: %v", err)
	}
	return form.File["file"][0]
}

func TestUploadThumbnailLoiKhongTaoBanGhi(t *testing.T) {
	// Service không có database: pipeline đi tới được bước insert thì test panic
	global.ServerConfig = &config.Configuration{
		MediaStore_VideoFolder: "videos",
		MediaStore_ImageFolder: "thumbnails",
	}

	uploadErr := errors.New("media store từ chối thumbnail")
	media := &stubMedia{
		videoResult: &mediastore.UploadResult{SecureURL: "https://cdn.example.com/videos/abc.mp4", Duration: 42},
		imageErr:    uploadErr,
	}
	stager := &stubStager{}
	s := &VideoService{media: media, uploads: stager, maxVideoBytes: 100 * 1024 * 1024}

	sub := UploadSubmission{
		Title:       "Video test",
		Description: "Mô tả",
		Video:       fileHeader(t, "clip.mp4", []byte("video-bytes")),
		Thumbnail:   fileHeader(t, "thumb.jpg", []byte("thumb-bytes")),
	}

	_, err := s.Upload(context.Background(), primitive.NewObjectID(), sub)
	if !errors.Is(err, uploadErr) {
		t.Fatalf("Upload phải trả về lỗi của media store, got %v", err)
	}

	if !stager.beginCalled {
		t.Errorf("Session phải được mở trước khi upload asset")
	}
	if stager.completeCalled {
		t.Errorf("Session không được chuyển sang complete khi thumbnail lỗi")
	}
	if stager.failNote == "" {
		t.Errorf("Session phải được đánh dấu failed kèm lý do")
	}
	if stager.failVideoURL != media.videoResult.SecureURL {
		t.Errorf("Session failed phải giữ URL video mồ côi để đối soát: got %q, want %q",
			stager.failVideoURL, media.videoResult.SecureURL)
	}
	if media.imageCalls != 1 {
		t.Errorf("Thumbnail phải được upload đúng một lần, got %d", media.imageCalls)
	}
}

func TestUploadVideoLoiKhongDungToiThumbnail(t *testing.T) {
	global.ServerConfig = &config.Configuration{
		MediaStore_VideoFolder: "videos",
		MediaStore_ImageFolder: "thumbnails",
	}

	uploadErr := errors.New("media store từ chối video")
	media := &stubMedia{videoErr: uploadErr}
	stager := &stubStager{}
	s := &VideoService{media: media, uploads: stager, maxVideoBytes: 100 * 1024 * 1024}

	sub := UploadSubmission{
		Title:       "Video test",
		Description: "Mô tả",
		Video:       fileHeader(t, "clip.mp4", []byte("video-bytes")),
		Thumbnail:   fileHeader(t, "thumb.jpg", []byte("thumb-bytes")),
	}

	_, err := s.Upload(context.Background(), primitive.NewObjectID(), sub)
	if !errors.Is(err, uploadErr) {
		t.Fatalf("Upload phải trả về lỗi của media store, got %v", err)
	}

	if media.imageCalls != 0 {
		t.Errorf("Video lỗi thì không được upload thumbnail, got %d lần gọi", media.imageCalls)
	}
	if stager.failVideoURL != "" {
		t.Errorf("Không có asset nào lên được media store, session failed không được giữ URL: got %q", stager.failVideoURL)
	}
	if stager.failNote == "" {
		t.Errorf("Session phải được đánh dấu failed kèm lý do")
	}
}
