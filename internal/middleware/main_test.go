package middleware

import (
	"os"
	"testing"

	"recipe-hub-server/internal/config"
	"recipe-hub-server/internal/testutils"
)

// 测试内容：为 middleware 包测试初始化配置环境。
func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "recipe-hub-config-*")
	if err != nil {
		panic(err)
	}

	envs := []testutils.SavedEnv{
		testutils.SetEnv("RECIPE_HUB_SERVER_MODE", "debug"),
		testutils.SetEnv("RECIPE_HUB_JWT_SECRET", "test_secret"),
		testutils.SetEnv("RECIPE_HUB_REDIS_ENABLED", "false"),
	}
	config.InitConfig(tmpDir)

	code := m.Run()

	testutils.RestoreEnv(envs)
	_ = os.RemoveAll(tmpDir)
	os.Exit(code)
}
