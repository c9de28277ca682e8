package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng.
// Bao gồm thông tin server, cơ sở dữ liệu và media store.
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:"8080"`                 // Cổng server
	JwtSecret             string `env:"JWT_SECRET,required"`                       // Bí mật JWT (xác thực Bearer token)
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`                   // Tên cơ sở dữ liệu chính
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting

	// Media Store Configuration (upload video/ảnh lên remote storage)
	// Các giá trị này được inject vào mediastore.Client lúc khởi tạo, không dùng global
	MediaStore_BaseURL      string `env:"MEDIA_STORE_BASE_URL" envDefault:"https://api.cloudinary.com/v1_1"` // Base URL của upload API
	MediaStore_CloudName    string `env:"MEDIA_STORE_CLOUD_NAME,required"`                                   // Tên cloud (định danh tài khoản)
	MediaStore_APIKey       string `env:"MEDIA_STORE_API_KEY,required"`                                      // API key
	MediaStore_APISecret    string `env:"MEDIA_STORE_API_SECRET,required"`                                   // API secret (ký request)
	MediaStore_VideoFolder  string `env:"MEDIA_STORE_VIDEO_FOLDER" envDefault:"videos"`                      // Folder chứa video
	MediaStore_ImageFolder  string `env:"MEDIA_STORE_IMAGE_FOLDER" envDefault:"thumbnails"`                  // Folder chứa thumbnail
	MediaStore_TimeoutSec   int    `env:"MEDIA_STORE_TIMEOUT" envDefault:"120"`                              // Timeout upload (giây)
	Stream_UpstreamTimeout  int    `env:"STREAM_UPSTREAM_TIMEOUT" envDefault:"60"`                           // Timeout request range lên upstream (giây)
	Upload_MaxVideoSizeMiB  int    `env:"UPLOAD_MAX_VIDEO_SIZE_MIB" envDefault:"100"`                        // Giới hạn kích thước video (MiB)

	// Frontend URL (dựng stream URL trả về cho client)
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"` // URL public của chính server

	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn đến file certificate (.crt hoặc .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn đến file private key (.key)
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Tìm thư mục config
	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env, đi lên dần từ working directory
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			envPath := filepath.Join(envDir, fmt.Sprintf("%s.env", env))
			return envPath
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env được cung cấp
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	err := godotenv.Load(envPath)
	if err != nil {
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	err = env.Parse(&cfg)
	if err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
