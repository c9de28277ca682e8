package middleware

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	models "video_tube/internal/api/auth/models"
	authsvc "video_tube/internal/api/auth/service"
	"video_tube/internal/common"
	"video_tube/internal/global"
	"video_tube/internal/logger"
	"video_tube/internal/utility"
)

// AuthManager quản lý xác thực người dùng qua JWT Bearer token
type AuthManager struct {
	UserCRUD *authsvc.UserService
	Cache    *utility.Cache
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager trả về instance duy nhất của AuthManager (singleton pattern)
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		var err error
		authManagerInstance, err = newAuthManager()
		if err != nil {
			panic(err)
		}
	})
	return authManagerInstance
}

// newAuthManager khởi tạo một instance mới của AuthManager (private constructor)
func newAuthManager() (*AuthManager, error) {
	newManager := new(AuthManager)

	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	newManager.UserCRUD = userService

	// Cache kết quả lookup user theo token, thời gian sống 5 phút, dọn dẹp mỗi 10 phút
	newManager.Cache = utility.NewCache(5*time.Minute, 10*time.Minute)

	return newManager, nil
}

// AuthMiddleware middleware xác thực cho Fiber.
// Xác thực JWT (chữ ký + hạn token) rồi lookup user theo token trong database.
// Thông tin user được lưu vào Locals "user_id" và "user" cho các handler phía sau.
func AuthMiddleware() fiber.Handler {
	authManager := GetAuthManager()

	return func(c fiber.Ctx) error {
		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("[AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		tokenStr := parts[1]

		// Verify chữ ký và hạn token
		claims := &models.JwtToken{}
		parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("phương thức ký không hợp lệ: %v", t.Header["alg"])
			}
			return []byte(global.ServerConfig.JwtSecret), nil
		})
		if err != nil {
			if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
				HandleErrorResponse(c, common.ErrTokenExpired)
				return nil
			}
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}
		if !parsed.Valid {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Lookup user theo token, ưu tiên cache để giảm tải database
		var user models.User
		cacheKey := "auth_token:" + tokenStr
		if cached, found := authManager.Cache.Get(cacheKey); found {
			user = cached.(models.User)
		} else {
			user, err = authManager.UserCRUD.FindOne(context.Background(), bson.M{"token": tokenStr}, nil)
			if err != nil {
				logger.GetAppLogger().WithFields(logrus.Fields{
					"path":  c.Path(),
					"error": err.Error(),
				}).Warn("[AUTH] Token not found in database")
				HandleErrorResponse(c, common.ErrTokenInvalid)
				return nil
			}
			authManager.Cache.Set(cacheKey, user)
		}

		// Kiểm tra user có bị block không
		if user.IsBlock {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuth,
				"Tài khoản đã bị khóa: "+user.BlockNote,
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		// Lưu thông tin user vào context
		c.Locals("user_id", user.ID.Hex())
		c.Locals("user", user)

		return c.Next()
	}
}

// RequireUserID helper lấy ObjectID của user đã xác thực từ Locals.
// Trả về lỗi ErrTokenMissing nếu middleware auth chưa chạy trên route này.
func RequireUserID(c fiber.Ctx) (string, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok || userIDStr == "" {
		return "", common.ErrTokenMissing
	}
	return userIDStr, nil
}
