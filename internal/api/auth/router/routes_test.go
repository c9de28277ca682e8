package router

import (
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/mongo"

	apirouter "video_tube/internal/api/router"
	"video_tube/internal/global"
)

func TestRegisterChiMoRouteDocChoUsers(t *testing.T) {
	global.MongoDB_ColNames.Users = "users"
	if _, err := global.RegistryCollections.Register(global.MongoDB_ColNames.Users, &mongo.Collection{}); err != nil {
		t.Fatalf("Không đăng ký được collection users: %v", err)
	}

	app := fiber.New()
	v1 := app.Group("/api/v1")
	if err := Register(v1, apirouter.NewRouter(app)); err != nil {
		t.Fatalf("Register trả về lỗi: %v", err)
	}

	paths := map[string]bool{}
	for _, route := range app.GetRoutes() {
		paths[route.Method+" "+route.Path] = true
	}

	// Không có RBAC theo permission nên mặt ghi chung không được mở:
	// user đã đăng nhập bất kỳ sẽ sửa/xóa được user khác
	forbidden := []string{
		"POST /api/v1/users/insert-one",
		"POST /api/v1/users/insert-many",
		"POST /api/v1/users/upsert-one",
		"PUT /api/v1/users/update-one",
		"PUT /api/v1/users/update-by-id/:id",
		"DELETE /api/v1/users/delete-one",
		"DELETE /api/v1/users/delete-by-id/:id",
	}
	for _, p := range forbidden {
		if paths[p] {
			t.Errorf("Route ghi %q không được đăng ký cho /users", p)
		}
	}

	wanted := []string{
		"GET /api/v1/users/me",
		"GET /api/v1/users/watch-history",
		"GET /api/v1/users/find",
		"GET /api/v1/users/find-by-id/:id",
	}
	for _, p := range wanted {
		if !paths[p] {
			var registered []string
			for k := range paths {
				if strings.Contains(k, "/users") {
					registered = append(registered, k)
				}
			}
			t.Errorf("Route đọc %q phải được đăng ký, các route /users hiện có: %v", p, registered)
		}
	}
}
