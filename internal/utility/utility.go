package utility

import (
	"encoding/json"
)

// ConvertStruct chuyển đổi một struct sang struct khác thông qua JSON round-trip.
// Dùng khi map dữ liệu input (DTO) sang model trước khi ghi xuống database.
func ConvertStruct(source interface{}, target interface{}) (interface{}, error) {
	jsonData, err := json.Marshal(source)
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(jsonData, target)
	if err != nil {
		return nil, err
	}

	return target, nil
}
