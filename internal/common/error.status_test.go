package common

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestConvertMongoErrorNilGiuNguyen(t *testing.T) {
	if got := ConvertMongoError(nil); got != nil {
		t.Errorf("nil phải giữ nguyên nil, got %v", got)
	}
}

func TestConvertMongoErrorNoDocuments(t *testing.T) {
	got := ConvertMongoError(mongo.ErrNoDocuments)
	if !errors.Is(got, ErrNotFound) {
		t.Errorf("ErrNoDocuments phải convert thành ErrNotFound, got %v", got)
	}
}

func TestConvertMongoErrorNotFoundKhongConvertLai(t *testing.T) {
	got := ConvertMongoError(ErrNotFound)
	if !errors.Is(got, ErrNotFound) {
		t.Errorf("ErrNotFound phải được giữ nguyên, got %v", got)
	}
}

func TestConvertMongoErrorDuplicateKey(t *testing.T) {
	// Lỗi duplicate key từ unique index (code 11000)
	dup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{
			{Code: 11000, Message: "E11000 duplicate key error"},
		},
	}

	got := ConvertMongoError(dup)
	if !errors.Is(got, ErrMongoDuplicate) {
		t.Errorf("Duplicate key phải convert thành ErrMongoDuplicate, got %v", got)
	}

	var customErr *Error
	if !errors.As(got, &customErr) {
		t.Fatalf("Lỗi convert phải là *common.Error, got %T", got)
	}
	if customErr.StatusCode != StatusConflict {
		t.Errorf("Duplicate key phải trả về status %d, got %d", StatusConflict, customErr.StatusCode)
	}
}
