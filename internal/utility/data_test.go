package utility

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCustomBsonSinhDungToanTu(t *testing.T) {
	customBson := &CustomBson{}

	set, err := customBson.Set(map[string]interface{}{"title": "Go tutorial"})
	assert.NoError(t, err)
	assert.Len(t, set, 1, "Set chỉ được sinh một toán tử")
	assert.Contains(t, set, "$set")

	push, err := customBson.Push(map[string]interface{}{"videos": "abc"})
	assert.NoError(t, err)
	assert.Contains(t, push, "$push")
	assert.NotContains(t, push, "$set")

	addToSet, err := customBson.AddToSet(map[string]interface{}{"watchHistory": "abc"})
	assert.NoError(t, err)
	assert.Contains(t, addToSet, "$addToSet")

	pull, err := customBson.Pull(map[string]interface{}{"videos": "abc"})
	assert.NoError(t, err)
	assert.Len(t, pull, 1)
	assert.Contains(t, pull, "$pull")
}

func TestParseTransformTag(t *testing.T) {
	config, err := ParseTransformTag("str_objectid,map=Owner,optional")
	assert.NoError(t, err)
	assert.Equal(t, "str_objectid", config.Type)
	assert.Equal(t, "Owner", config.MapTo)
	assert.True(t, config.Optional)
	assert.False(t, config.Required)

	config, err = ParseTransformTag("str_time,format=2006-01-02")
	assert.NoError(t, err)
	assert.Equal(t, "str_time", config.Type)
	assert.Equal(t, "2006-01-02", config.Format)

	// Tag rỗng giữ format mặc định
	config, err = ParseTransformTag("")
	assert.NoError(t, err)
	assert.Equal(t, "2006-01-02T15:04:05", config.Format)
}

func TestTransformFieldValueObjectID(t *testing.T) {
	config, err := ParseTransformTag("str_objectid")
	assert.NoError(t, err)

	idHex := primitive.NewObjectID().Hex()
	targetType := reflect.TypeOf(primitive.ObjectID{})

	got, err := TransformFieldValue(idHex, config, targetType)
	assert.NoError(t, err)
	want, _ := primitive.ObjectIDFromHex(idHex)
	assert.Equal(t, want, got)

	// Hex không hợp lệ phải báo lỗi
	_, err = TransformFieldValue("khong-phai-hex", config, targetType)
	assert.Error(t, err)
}

func TestTransformFieldValueGiaTriRong(t *testing.T) {
	targetType := reflect.TypeOf(primitive.ObjectID{})

	// Optional: rỗng thì bỏ qua, không báo lỗi
	config, err := ParseTransformTag("str_objectid,optional")
	assert.NoError(t, err)
	got, err := TransformFieldValue("", config, targetType)
	assert.NoError(t, err)
	assert.Nil(t, got)

	// Required: rỗng phải báo lỗi
	config, err = ParseTransformTag("str_objectid,required")
	assert.NoError(t, err)
	_, err = TransformFieldValue("", config, targetType)
	assert.Error(t, err)

	// Default được áp dụng khi input rỗng
	config, err = ParseTransformTag("str_int64,default=10")
	assert.NoError(t, err)
	got, err = TransformFieldValue("", config, reflect.TypeOf(int64(0)))
	assert.NoError(t, err)
	assert.Equal(t, int64(10), got)
}
