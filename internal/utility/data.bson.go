package utility

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ****************************************************  Bson *******************************************
// Các thao tác Bson tùy chỉnh

// CustomBson dùng để thực hiện các thao tác bson tùy chỉnh
// như set, push, unset, addToSet bằng cách sử dụng các struct.
// Điều này rất hữu ích khi cần tạo bản đồ bson từ struct.
type CustomBson struct{}

// BsonWrapper chứa các thao tác bson cơ bản
// như $set, $push, $addToSet.
// Nó rất hữu ích để chuyển đổi struct thành bson.
type BsonWrapper struct {

	// Set sẽ đặt dữ liệu trong db.
	// Ví dụ - nếu cần đặt "title":"Go tutorial", tạo một struct chứa trường title và gán struct đó vào trường này.
	// Sau khi mã hóa thành bson, nó sẽ như { $set : {title : "Go tutorial"}}
	Set interface{} `json:"$set,omitempty" bson:"$set,omitempty"`

	// Toán tử Unset xóa một trường cụ thể.
	// Nếu trường không tồn tại, thì Unset không làm gì cả.
	Unset interface{} `json:"$unset,omitempty" bson:"$unset,omitempty"`

	// Toán tử Push thêm một giá trị cụ thể vào một mảng.
	// Nếu trường không phải là một mảng, thao tác sẽ thất bại.
	Push interface{} `json:"$push,omitempty" bson:"$push,omitempty"`

	// Toán tử AddToSet thêm một giá trị vào một mảng trừ khi giá trị đã có,
	// trong trường hợp đó AddToSet không làm gì với mảng đó.
	// Dùng cho watchHistory: mỗi video chỉ xuất hiện một lần trong lịch sử xem.
	AddToSet interface{} `json:"$addToSet,omitempty" bson:"$addToSet,omitempty"`

	// Toán tử Pull gỡ mọi phần tử khớp giá trị khỏi một mảng.
	// Dùng khi gỡ video khỏi playlist.
	Pull interface{} `json:"$pull,omitempty" bson:"$pull,omitempty"`
}

// ToMap chuyển đổi interface thành bản đồ thông qua bson marshal/unmarshal.
func ToMap(s interface{}) (map[string]interface{}, error) {
	var stringInterfaceMap map[string]interface{}
	itr, err := bson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("bson marshal failed: %w", err)
	}
	err = bson.Unmarshal(itr, &stringInterfaceMap)
	if err != nil {
		return nil, fmt.Errorf("bson unmarshal failed: %w", err)
	}
	return stringInterfaceMap, err
}

// Set tạo truy vấn để thay thế giá trị của một trường bằng giá trị cụ thể
func (customBson *CustomBson) Set(data interface{}) (map[string]interface{}, error) {
	s := BsonWrapper{Set: data}
	return ToMap(s)
}

// Push tạo truy vấn để thêm một giá trị cụ thể vào một trường mảng
func (customBson *CustomBson) Push(data interface{}) (map[string]interface{}, error) {
	s := BsonWrapper{Push: data}
	return ToMap(s)
}

// Unset tạo truy vấn để xóa một trường cụ thể
func (customBson *CustomBson) Unset(data interface{}) (map[string]interface{}, error) {
	s := BsonWrapper{Unset: data}
	return ToMap(s)
}

// AddToSet tạo truy vấn để thêm một giá trị vào một mảng trừ khi giá trị đã có.
func (customBson *CustomBson) AddToSet(data interface{}) (map[string]interface{}, error) {
	s := BsonWrapper{AddToSet: data}
	return ToMap(s)
}

// Pull tạo truy vấn để gỡ các phần tử khớp giá trị khỏi một trường mảng
func (customBson *CustomBson) Pull(data interface{}) (map[string]interface{}, error) {
	s := BsonWrapper{Pull: data}
	return ToMap(s)
}

// ****************************************************  Bson End  *******************************************
