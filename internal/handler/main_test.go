package handler

import (
	"os"
	"testing"

	"recipe-hub-server/internal/config"
	"recipe-hub-server/internal/testutils"

	"github.com/gin-gonic/gin"
)

// 测试内容：为 handler 包测试初始化配置环境并在结束时清理。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	tmpDir, err := os.MkdirTemp("", "recipe-hub-config-*")
	if err != nil {
		panic(err)
	}
	uploadDir, err := os.MkdirTemp("", "recipe-hub-uploads-*")
	if err != nil {
		panic(err)
	}
	avatarDir, err := os.MkdirTemp("", "recipe-hub-avatars-*")
	if err != nil {
		panic(err)
	}

	envs := []testutils.SavedEnv{
		testutils.SetEnv("RECIPE_HUB_SERVER_MODE", "debug"),
		testutils.SetEnv("RECIPE_HUB_JWT_SECRET", "test_secret"),
		testutils.SetEnv("RECIPE_HUB_REDIS_ENABLED", "false"),
		testutils.SetEnv("RECIPE_HUB_UPLOAD_PATH", uploadDir),
		testutils.SetEnv("RECIPE_HUB_UPLOAD_AVATAR_PATH", avatarDir),
	}
	config.InitConfig(tmpDir)

	code := m.Run()

	testutils.RestoreEnv(envs)
	_ = os.RemoveAll(tmpDir)
	_ = os.RemoveAll(uploadDir)
	_ = os.RemoveAll(avatarDir)
	os.Exit(code)
}
