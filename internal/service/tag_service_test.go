package service

import (
	"testing"

	"recipe-hub-server/internal/common"
)

// 测试内容：验证标签创建的格式校验与唯一性约束。
func TestCreateTag(t *testing.T) {
	setupTestDB(t)

	if _, err := CreateTag("早餐", "红色", "breakfast"); err == nil {
		t.Fatal("期望非法颜色被拒绝")
	}
	if _, err := CreateTag("早餐", "#E26C2D", "早 餐"); err == nil {
		t.Fatal("期望非法 slug 被拒绝")
	}

	tag, err := CreateTag("早餐", "#E26C2D", "breakfast")
	if err != nil {
		t.Fatalf("创建标签失败: %v", err)
	}
	if tag.ID == 0 {
		t.Fatal("期望标签已持久化")
	}

	// slug 冲突
	_, err = CreateTag("别的", "#49B64E", "breakfast")
	serviceErr, ok := common.AsServiceError(err)
	if !ok || serviceErr.Code != common.ErrorCodeConflict {
		t.Fatalf("期望 slug 冲突错误，实际为 %v", err)
	}
}

// 测试内容：验证标签列表按 ID 升序返回。
func TestListTags(t *testing.T) {
	setupTestDB(t)
	createTestTag(t, "早餐", "#E26C2D", "breakfast")
	createTestTag(t, "午餐", "#49B64E", "lunch")

	tags, err := ListTags()
	if err != nil {
		t.Fatalf("获取标签失败: %v", err)
	}
	if len(tags) != 2 || tags[0].Slug != "breakfast" {
		t.Fatalf("标签列表异常: %+v", tags)
	}
}
