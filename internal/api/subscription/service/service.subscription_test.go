package subscriptionsvc

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToggleTuChoiTuDangKyChinhMinh(t *testing.T) {
	// Kiểm tra tự-đăng-ký đứng trước mọi truy vấn database
	s := &SubscriptionService{}
	userID := primitive.NewObjectID()

	result, err := s.Toggle(context.Background(), userID, userID)
	if err == nil {
		t.Fatalf("Tự đăng ký kênh của chính mình phải bị từ chối")
	}
	if result != nil {
		t.Errorf("Kết quả phải là nil khi toggle bị từ chối, got %+v", result)
	}
}
