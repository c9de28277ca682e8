package database

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"video_tube/internal/global"
)

func findCatalogIndex(t *testing.T, name string) catalogIndex {
	t.Helper()
	for _, spec := range catalogIndexSpecs() {
		if spec.Model.Options != nil && spec.Model.Options.Name != nil && *spec.Model.Options.Name == name {
			return spec
		}
	}
	t.Fatalf("Không tìm thấy index %q trong catalogIndexSpecs", name)
	return catalogIndex{}
}

func indexKeys(t *testing.T, spec catalogIndex) []string {
	t.Helper()
	keys, ok := spec.Model.Keys.(bson.D)
	if !ok {
		t.Fatalf("Keys của index phải là bson.D, got %T", spec.Model.Keys)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, k.Key)
	}
	return names
}

func TestCatalogIndexLikeIdentityDuyNhat(t *testing.T) {
	global.MongoDB_ColNames.Likes = "likes"

	spec := findCatalogIndex(t, "like_identity")
	if spec.Collection != "likes" {
		t.Errorf("Index like_identity phải nằm trên collection likes, got %q", spec.Collection)
	}
	if spec.Model.Options.Unique == nil || !*spec.Model.Options.Unique {
		t.Errorf("Index like_identity phải là unique để chặn like trùng khi toggle đồng thời")
	}

	keys := indexKeys(t, spec)
	want := []string{"targetId", "targetType", "likedBy"}
	if len(keys) != len(want) {
		t.Fatalf("Index like_identity phải có %d key, got %v", len(want), keys)
	}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("Key thứ %d của like_identity phải là %q, got %q", i, k, keys[i])
		}
	}
}

func TestCatalogIndexDangKyVaPhienXemDuyNhat(t *testing.T) {
	global.MongoDB_ColNames.Subscriptions = "subscriptions"
	global.MongoDB_ColNames.WatchSessions = "watch_sessions"

	sub := findCatalogIndex(t, "subscription_identity")
	if sub.Model.Options.Unique == nil || !*sub.Model.Options.Unique {
		t.Errorf("Index subscription_identity phải là unique")
	}

	watch := findCatalogIndex(t, "watch_session_identity")
	if watch.Model.Options.Unique == nil || !*watch.Model.Options.Unique {
		t.Errorf("Index watch_session_identity phải là unique")
	}
	if got := indexKeys(t, watch); len(got) != 3 {
		t.Errorf("Index watch_session_identity phải có 3 key, got %v", got)
	}
}
