package utility

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// String2ObjectID chuyển đổi chuỗi hex thành ObjectID.
// Trả về NilObjectID nếu chuỗi không hợp lệ, caller tự kiểm tra IsZero khi cần.
func String2ObjectID(id string) primitive.ObjectID {
	objectId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return objectId
}

// ObjectID2String chuyển đổi ObjectID thành chuỗi hex
func ObjectID2String(id primitive.ObjectID) string {
	return id.Hex()
}

// P2Int64 parse chuỗi thành int64, trả về 0 nếu không parse được.
// Dùng cho các tham số phân trang từ query string.
func P2Int64(s string) int64 {
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return value
}

// Contains kiểm tra một phần tử có tồn tại trong slice không
func Contains[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}
