package videosvc

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"video_tube/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOpenStreamYeuCauHeaderRange(t *testing.T) {
	// Không có Range thì từ chối ngay, không gọi database hay upstream
	s := &VideoService{}

	_, err := s.OpenStream(context.Background(), primitive.NewObjectID(), "")
	if !errors.Is(err, common.ErrRangeHeaderRequired) {
		t.Errorf("Stream không có Range phải trả về ErrRangeHeaderRequired, got %v", err)
	}
}

func TestProxyRangeChuyenTiep206(t *testing.T) {
	var gotRange string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRange = r.Header.Get("Range")
		w.Header().Set("Content-Range", "bytes 0-99/1000")
		w.Header().Set("Accept-Ranges", "bytes")
		w.Header().Set("Content-Length", "100")
		w.Header().Set("Content-Type", "video/mp4")
		w.WriteHeader(http.StatusPartialContent)
		w.Write(make([]byte, 100))
	}))
	defer upstream.Close()

	s := &VideoService{streamClient: upstream.Client()}
	source, err := s.proxyRange(context.Background(), upstream.URL, "bytes=0-99")
	if err != nil {
		t.Fatalf("proxyRange trả về lỗi: %v", err)
	}
	defer source.Body.Close()

	if gotRange != "bytes=0-99" {
		t.Errorf("Header Range phải được chuyển tiếp nguyên văn: got %q", gotRange)
	}
	if source.ContentRange != "bytes 0-99/1000" {
		t.Errorf("Content-Range không được giữ nguyên: got %q", source.ContentRange)
	}
	if source.AcceptRanges != "bytes" {
		t.Errorf("Accept-Ranges không được giữ nguyên: got %q", source.AcceptRanges)
	}
	if source.ContentLength != "100" {
		t.Errorf("Content-Length không được giữ nguyên: got %q", source.ContentLength)
	}
	if source.ContentType != "video/mp4" {
		t.Errorf("Content-Type phải là video/mp4: got %q", source.ContentType)
	}

	body, err := io.ReadAll(source.Body)
	if err != nil {
		t.Fatalf("Không đọc được body: %v", err)
	}
	if len(body) != 100 {
		t.Errorf("Body phải được pipe đủ 100 byte, got %d", len(body))
	}
}

func TestProxyRangeFallbackContentType(t *testing.T) {
	// Upstream trả Content-Type không phải video thì thay bằng video/mp4
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.WriteHeader(http.StatusPartialContent)
	}))
	defer upstream.Close()

	s := &VideoService{streamClient: upstream.Client()}
	source, err := s.proxyRange(context.Background(), upstream.URL, "bytes=0-1")
	if err != nil {
		t.Fatalf("proxyRange trả về lỗi: %v", err)
	}
	defer source.Body.Close()

	if source.ContentType != "video/mp4" {
		t.Errorf("Content-Type phải fallback về video/mp4, got %q", source.ContentType)
	}
}

func TestProxyRangeKhongThoaMan(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
	}))
	defer upstream.Close()

	s := &VideoService{streamClient: upstream.Client()}
	_, err := s.proxyRange(context.Background(), upstream.URL, "bytes=99999-")
	if !errors.Is(err, common.ErrRangeNotSatisfiable) {
		t.Errorf("Upstream 416 phải trả về ErrRangeNotSatisfiable, got %v", err)
	}
}

func TestProxyRangeUpstreamLoi(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer upstream.Close()

	s := &VideoService{streamClient: upstream.Client()}
	_, err := s.proxyRange(context.Background(), upstream.URL, "bytes=0-1")
	if !errors.Is(err, common.ErrStreamFailed) {
		t.Errorf("Upstream lỗi phải trả về ErrStreamFailed, got %v", err)
	}

	// Upstream trả 200 (bỏ qua Range) cũng là lỗi stream
	full := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer full.Close()

	s = &VideoService{streamClient: full.Client()}
	_, err = s.proxyRange(context.Background(), full.URL, "bytes=0-1")
	if !errors.Is(err, common.ErrStreamFailed) {
		t.Errorf("Upstream 200 không mang partial content phải trả về ErrStreamFailed, got %v", err)
	}
}
