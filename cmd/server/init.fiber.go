package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	authroutes "video_tube/internal/api/auth/router"
	basehdl "video_tube/internal/api/base/handler"
	commentroutes "video_tube/internal/api/comment/router"
	likeroutes "video_tube/internal/api/like/router"
	playlistroutes "video_tube/internal/api/playlist/router"
	apirouter "video_tube/internal/api/router"
	subscriptionroutes "video_tube/internal/api/subscription/router"
	tweetroutes "video_tube/internal/api/tweet/router"
	videoroutes "video_tube/internal/api/video/router"
	"video_tube/internal/common"
	"video_tube/internal/global"
	"video_tube/internal/logger"
)

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết
func InitFiberApp() *fiber.App {
	cfg := global.ServerConfig

	// Body limit phải chứa được video tối đa + thumbnail + overhead multipart
	bodyLimit := (cfg.Upload_MaxVideoSizeMiB + 10) * 1024 * 1024

	app := fiber.New(fiber.Config{
		// =========================================
		// 1. CẤU HÌNH CƠ BẢN
		// =========================================
		AppName:       "VideoTube API", // Tên ứng dụng hiển thị
		ServerHeader:  "VideoTube API", // Header server trong response
		StrictRouting: true,            // /foo và /foo/ là khác nhau
		CaseSensitive: true,            // /Foo và /foo là khác nhau
		UnescapePath:  true,            // Tự động decode URL-encoded paths
		Immutable:     false,           // Tính năng immutable cho ctx

		// =========================================
		// 2. CẤU HÌNH PERFORMANCE
		// =========================================
		BodyLimit:       bodyLimit,  // Max size của request body (chứa upload video)
		Concurrency:     256 * 1024, // Số lượng goroutines tối đa
		ReadBufferSize:  4096,       // Buffer size cho request reading
		WriteBufferSize: 4096,       // Buffer size cho response writing

		// =========================================
		// 3. CẤU HÌNH TIMEOUT
		// =========================================
		// Đọc request chứa nguyên file video nên read timeout phải rộng
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,

		// =========================================
		// 4. CẤU HÌNH ERROR HANDLING
		// =========================================
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"
			errorCode := common.ErrCodeInternalServer.Code

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
				switch code {
				case fiber.StatusBadRequest:
					errorCode = common.ErrCodeValidationInput.Code
				case fiber.StatusUnauthorized:
					errorCode = common.ErrCodeAuthToken.Code
				case fiber.StatusForbidden:
					errorCode = common.ErrCodeAuthOwnership.Code
				case fiber.StatusNotFound:
					errorCode = common.ErrCodeDatabaseQuery.Code
				case fiber.StatusConflict:
					errorCode = common.ErrCodeDatabaseQuery.Code
				case fiber.StatusRequestEntityTooLarge:
					errorCode = common.ErrCodeValidationInput.Code
				}
			}

			// TLS handshake gửi tới HTTP server bắt đầu bằng 0x16 0x03 0x01
			errMsg := err.Error()
			isTLSHandshake := strings.Contains(errMsg, "unsupported http request method") &&
				(strings.Contains(errMsg, "\\x16\\x03\\x01") ||
					strings.Contains(errMsg, "\x16\x03\x01") ||
					strings.Contains(errMsg, "error when reading request headers"))

			if isTLSHandshake {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"code":    common.ErrCodeValidationInput.Code,
					"message": "Server chỉ hỗ trợ HTTP. Vui lòng sử dụng http:// thay vì https://",
					"status":  "error",
				})
			}

			logger.WithRequest(c).WithFields(map[string]interface{}{
				"code":      code,
				"errorCode": errorCode,
				"message":   message,
			}).Error("Request error")

			return c.Status(code).JSON(fiber.Map{
				"code":    errorCode,
				"message": message,
				"status":  "error",
			})
		},
	})

	// =========================================
	// MIDDLEWARE STACK
	// =========================================

	// 1. Request ID Middleware - Tạo ID duy nhất cho mỗi request để trace
	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return fmt.Sprintf("%d", time.Now().UnixNano())
		},
	}))

	// 2. CORS Middleware - đặt trước các middleware khác để xử lý preflight
	corsOrigins := cfg.CORS_Origins
	var allowOrigins []string
	if corsOrigins == "*" {
		allowOrigins = []string{"*"}
	} else {
		allowOrigins = strings.Split(corsOrigins, ",")
		for i, origin := range allowOrigins {
			allowOrigins[i] = strings.TrimSpace(origin)
		}
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Request-ID",
			"X-Requested-With",
			"Range", // Client gửi Range khi stream video
		},
		AllowCredentials: cfg.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", "Content-Range", "Accept-Ranges", "X-Request-ID"},
		MaxAge:           24 * 60 * 60, // Cache preflight requests (24 giờ)
	}))

	// 3. Security Headers Middleware
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// 4. Rate Limiting Middleware
	if cfg.RateLimit_Enabled && cfg.RateLimit_Max > 0 {
		rateLimitWindow := time.Duration(cfg.RateLimit_Window) * time.Second
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit_Max,
			Expiration: rateLimitWindow,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"code":    common.ErrCodeBusinessOperation.Code,
					"message": "Quá nhiều yêu cầu, vui lòng thử lại sau",
					"status":  "error",
				})
			},
			Next: func(c fiber.Ctx) bool {
				// Bỏ qua health check, preflight và stream (player gửi nhiều range request)
				return c.Path() == "/health" ||
					c.Path() == "/api/v1/system/health" ||
					c.Method() == "OPTIONS" ||
					strings.HasPrefix(c.Path(), "/api/v1/videos/stream/")
			},
		}))
		logger.GetAppLogger().Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
	} else {
		logger.GetAppLogger().Info("Rate limiting disabled")
	}

	// 5. Recover Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithFields(map[string]interface{}{
				"panic": e,
			}).Error("Panic recovered")

			c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"code":    common.ErrCodeInternalServer.Code,
				"message": "Internal Server Error",
				"status":  "error",
			})
		},
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/api/v1/system/health"
		},
	}))

	// Health check
	systemHandler, err := basehdl.NewSystemHandler()
	if err != nil {
		logger.GetAppLogger().Fatalf("Failed to create system handler: %v", err)
	}
	app.Get("/health", systemHandler.HandleHealth)
	app.Get("/api/v1/system/health", systemHandler.HandleHealth)

	// Đăng ký routes của tất cả các domain
	if err := apirouter.SetupRoutes(app,
		authroutes.Register,
		videoroutes.Register,
		commentroutes.Register,
		likeroutes.Register,
		tweetroutes.Register,
		playlistroutes.Register,
		subscriptionroutes.Register,
	); err != nil {
		logger.GetAppLogger().Fatalf("Failed to setup routes: %v", err)
	}

	return app
}
