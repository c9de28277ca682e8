// Package mediastore chứa client upload asset (video, ảnh) lên media store
// theo giao thức upload của Cloudinary: multipart POST kèm chữ ký SHA-1.
package mediastore

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"video_tube/config"
	"video_tube/internal/common"
)

// ResourceType loại asset upload lên media store
type ResourceType string

const (
	ResourceVideo ResourceType = "video"
	ResourceImage ResourceType = "image"
)

// UploadResult kết quả upload từ media store
type UploadResult struct {
	PublicID  string  `json:"public_id"`  // ID của asset trên media store
	SecureURL string  `json:"secure_url"` // URL https của asset
	Format    string  `json:"format"`     // Định dạng file (mp4, jpg, ...)
	Bytes     int64   `json:"bytes"`      // Kích thước file
	Duration  float64 `json:"duration"`   // Thời lượng (giây), chỉ có với video
	Width     int     `json:"width"`      // Chiều rộng
	Height    int     `json:"height"`     // Chiều cao
}

// Client upload asset lên media store qua HTTP
type Client struct {
	baseURL    string
	cloudName  string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	// now cho phép test cố định timestamp chữ ký
	now func() time.Time
}

// NewClient khởi tạo client từ cấu hình server
func NewClient(cfg *config.Configuration) *Client {
	timeout := time.Duration(cfg.MediaStore_TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.MediaStore_BaseURL, "/"),
		cloudName:  cfg.MediaStore_CloudName,
		apiKey:     cfg.MediaStore_APIKey,
		apiSecret:  cfg.MediaStore_APISecret,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

// SignParams tạo chữ ký SHA-1 cho các tham số upload.
// Các tham số được sort theo key, nối thành key=value&... rồi append api_secret.
func SignParams(params map[string]string, apiSecret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		// api_key, file và resource_type không tham gia chữ ký
		if k == "api_key" || k == "file" || k == "resource_type" || k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	toSign := strings.Join(pairs, "&") + apiSecret
	sum := sha1.Sum([]byte(toSign))
	return hex.EncodeToString(sum[:])
}

// Upload đẩy một asset lên media store và trả về metadata của asset.
// fileName chỉ dùng làm tên part trong multipart body, không ảnh hưởng public_id.
func (cl *Client) Upload(ctx context.Context, resourceType ResourceType, fileName string, file io.Reader, folder string) (*UploadResult, error) {
	timestamp := strconv.FormatInt(cl.now().Unix(), 10)

	params := map[string]string{
		"timestamp": timestamp,
	}
	if folder != "" {
		params["folder"] = folder
	}
	signature := SignParams(params, cl.apiSecret)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, common.NewError(common.ErrCodeMediaUpload, common.MsgInternalError, common.StatusInternalServerError, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, common.NewError(common.ErrCodeMediaUpload, "Lỗi đọc dữ liệu file upload", common.StatusInternalServerError, err)
	}

	fields := map[string]string{
		"api_key":   cl.apiKey,
		"timestamp": timestamp,
		"signature": signature,
	}
	if folder != "" {
		fields["folder"] = folder
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, common.NewError(common.ErrCodeMediaUpload, common.MsgInternalError, common.StatusInternalServerError, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, common.NewError(common.ErrCodeMediaUpload, common.MsgInternalError, common.StatusInternalServerError, err)
	}

	uploadURL := fmt.Sprintf("%s/%s/%s/upload", cl.baseURL, cl.cloudName, resourceType)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &body)
	if err != nil {
		return nil, common.NewError(common.ErrCodeMediaUpload, common.MsgInternalError, common.StatusInternalServerError, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := cl.httpClient.Do(req)
	if err != nil {
		return nil, common.NewError(common.ErrCodeMediaUpload, "Không kết nối được media store", common.StatusBadGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, common.NewError(
			common.ErrCodeMediaUpload,
			fmt.Sprintf("Media store trả về lỗi %d", resp.StatusCode),
			common.StatusBadGateway,
			string(respBody),
		)
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, common.NewError(common.ErrCodeMediaUpload, "Response từ media store không đúng định dạng JSON", common.StatusBadGateway, err)
	}

	return &result, nil
}

// UploadVideo upload một video, trả về metadata kèm duration
func (cl *Client) UploadVideo(ctx context.Context, fileName string, file io.Reader, folder string) (*UploadResult, error) {
	return cl.Upload(ctx, ResourceVideo, fileName, file, folder)
}

// UploadImage upload một ảnh (thumbnail, avatar, cover)
func (cl *Client) UploadImage(ctx context.Context, fileName string, file io.Reader, folder string) (*UploadResult, error) {
	return cl.Upload(ctx, ResourceImage, fileName, file, folder)
}
