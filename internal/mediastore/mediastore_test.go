package mediastore

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"video_tube/config"
)

func TestSignParams(t *testing.T) {
	// Chữ ký = sha1(các param sort theo key, nối key=value bằng &, append secret)
	params := map[string]string{
		"timestamp": "1700000000",
		"folder":    "videos",
	}
	secret := "abc123"

	expectedRaw := "folder=videos&timestamp=1700000000" + secret
	sum := sha1.Sum([]byte(expectedRaw))
	expected := hex.EncodeToString(sum[:])

	got := SignParams(params, secret)
	if got != expected {
		t.Errorf("Chữ ký không đúng: got %s, want %s", got, expected)
	}
}

func TestSignParamsBoQuaThamSoKhongKy(t *testing.T) {
	// api_key, file, resource_type và signature không được tham gia chữ ký
	withExtra := map[string]string{
		"timestamp":     "1700000000",
		"api_key":       "key",
		"file":          "data",
		"resource_type": "video",
		"signature":     "x",
	}
	onlySigned := map[string]string{
		"timestamp": "1700000000",
	}

	if SignParams(withExtra, "s") != SignParams(onlySigned, "s") {
		t.Errorf("Các tham số api_key/file/resource_type/signature phải bị loại khỏi chữ ký")
	}
}

func TestUploadVideoGuiDungRequest(t *testing.T) {
	var gotPath string
	var gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")

		if err := r.ParseMultipartForm(16 << 20); err != nil {
			t.Errorf("Body không phải multipart hợp lệ: %v", err)
		}
		if r.FormValue("api_key") != "test-key" {
			t.Errorf("api_key không đúng: got %s", r.FormValue("api_key"))
		}
		if r.FormValue("signature") == "" {
			t.Errorf("Thiếu chữ ký trong request upload")
		}
		if r.FormValue("folder") != "videos" {
			t.Errorf("folder không đúng: got %s", r.FormValue("folder"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"public_id":"videos/abc","secure_url":"https://cdn.example.com/videos/abc.mp4","format":"mp4","bytes":1024,"duration":41.7}`))
	}))
	defer server.Close()

	cfg := &config.Configuration{
		MediaStore_BaseURL:    server.URL,
		MediaStore_CloudName:  "demo",
		MediaStore_APIKey:     "test-key",
		MediaStore_APISecret:  "test-secret",
		MediaStore_TimeoutSec: 5,
	}
	client := NewClient(cfg)
	client.now = func() time.Time { return time.Unix(1700000000, 0) }

	result, err := client.UploadVideo(context.Background(), "clip.mp4", strings.NewReader("fake-video-bytes"), "videos")
	if err != nil {
		t.Fatalf("Upload video thất bại: %v", err)
	}

	if gotPath != "/demo/video/upload" {
		t.Errorf("Đường dẫn upload không đúng: got %s, want /demo/video/upload", gotPath)
	}
	if !strings.HasPrefix(gotContentType, "multipart/form-data") {
		t.Errorf("Content-Type phải là multipart/form-data, got %s", gotContentType)
	}
	if result.SecureURL != "https://cdn.example.com/videos/abc.mp4" {
		t.Errorf("SecureURL không đúng: got %s", result.SecureURL)
	}
	if result.Duration != 41.7 {
		t.Errorf("Duration không đúng: got %v, want 41.7", result.Duration)
	}
}

func TestUploadTraLoiLoiTuMediaStore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid signature"}}`))
	}))
	defer server.Close()

	cfg := &config.Configuration{
		MediaStore_BaseURL:    server.URL,
		MediaStore_CloudName:  "demo",
		MediaStore_APIKey:     "k",
		MediaStore_APISecret:  "s",
		MediaStore_TimeoutSec: 5,
	}
	client := NewClient(cfg)

	_, err := client.UploadImage(context.Background(), "thumb.jpg", strings.NewReader("img"), "thumbnails")
	if err == nil {
		t.Fatalf("Upload phải trả về lỗi khi media store trả về status 400")
	}
}
