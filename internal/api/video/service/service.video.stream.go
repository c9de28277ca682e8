package videosvc

import (
	"context"
	"io"
	"net/http"
	"strings"

	"video_tube/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StreamSource là phản hồi partial content từ media store, sẵn sàng
// pipe thẳng về client. Body phải được đóng (hoặc đọc hết) bởi caller.
type StreamSource struct {
	Body          io.ReadCloser
	ContentRange  string
	AcceptRanges  string
	ContentLength string
	ContentType   string
}

// OpenStream mở một range request tới asset video trên media store.
// Request không có header Range bị từ chối ngay, không gọi upstream.
// Server chỉ làm proxy: byte được pipe qua chứ không buffer.
func (s *VideoService) OpenStream(ctx context.Context, videoID primitive.ObjectID, rangeHeader string) (*StreamSource, error) {
	if rangeHeader == "" {
		return nil, common.ErrRangeHeaderRequired
	}

	video, err := s.FindOne(ctx, bson.M{"_id": videoID, "isPublished": true}, nil)
	if err != nil {
		return nil, common.ErrVideoUnavailable
	}

	return s.proxyRange(ctx, video.VideoFile, rangeHeader)
}

// proxyRange gửi range request tới asset URL và map response của upstream.
func (s *VideoService) proxyRange(ctx context.Context, assetURL string, rangeHeader string) (*StreamSource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return nil, common.NewError(common.ErrCodeMediaStream, "URL asset video không hợp lệ", common.StatusInternalServerError, err)
	}
	// Chuyển tiếp Range nguyên văn, media store tự xử lý cú pháp
	req.Header.Set("Range", rangeHeader)

	resp, err := s.streamClient.Do(req)
	if err != nil {
		return nil, common.NewError(common.ErrCodeMediaStream, "Không kết nối được tới media store", common.StatusInternalServerError, err)
	}

	switch resp.StatusCode {
	case http.StatusPartialContent:
		contentType := resp.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "video/") {
			contentType = "video/mp4"
		}
		return &StreamSource{
			Body:          resp.Body,
			ContentRange:  resp.Header.Get("Content-Range"),
			AcceptRanges:  resp.Header.Get("Accept-Ranges"),
			ContentLength: resp.Header.Get("Content-Length"),
			ContentType:   contentType,
		}, nil
	case http.StatusRequestedRangeNotSatisfiable:
		resp.Body.Close()
		return nil, common.ErrRangeNotSatisfiable
	default:
		resp.Body.Close()
		return nil, common.ErrStreamFailed
	}
}
