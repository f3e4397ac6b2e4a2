package service

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"recipe-hub-server/internal/common"
	"recipe-hub-server/internal/config"
	"recipe-hub-server/internal/utils"
	"strings"

	"github.com/google/uuid"
)

// 图片以 base64 data URI 内联在 JSON 请求体中提交，
// 本文件负责解码落盘与物理文件清理。数据库只存相对路径。

// SaveBase64Image 解码内联图片并写入 rootDir，返回相对文件名。
// 超出 limits.max_image_mb 的图片会被拒绝。
func SaveBase64Image(data string, rootDir string) (string, error) {
	raw, ext, err := utils.DecodeBase64Image(data)
	if err != nil {
		return "", common.NewValidationError("图片编码无效，请提交 base64 data URI 格式的图片")
	}

	maxMB := config.Get().Limits.MaxImageMB
	if maxMB > 0 && int64(len(raw)) > int64(maxMB)*1024*1024 {
		return "", common.NewValidationError(fmt.Sprintf("图片大小不能超过 %dMB", maxMB))
	}

	rootAbs, err := filepath.Abs(rootDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve image root: %w", err)
	}
	if err := utils.EnsurePathNotSymlink(rootAbs); err != nil {
		return "", fmt.Errorf("image root symlink risk: %w", err)
	}
	if err := os.MkdirAll(rootAbs, 0o755); err != nil {
		return "", fmt.Errorf("failed to create image dir: %w", err)
	}

	filename := uuid.NewString() + ext
	fullPath, err := utils.SecureJoin(rootAbs, filename)
	if err != nil {
		return "", fmt.Errorf("failed to build image path: %w", err)
	}

	if err := os.WriteFile(fullPath, raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return filename, nil
}

// DeleteStoredImage 删除 rootDir 下的图片文件。
// 文件不存在不视为错误，路径越界或链路不安全时跳过删除。
func DeleteStoredImage(rootDir string, relPath string) error {
	if relPath == "" {
		return nil
	}

	rootAbs, err := filepath.Abs(rootDir)
	if err != nil {
		return fmt.Errorf("failed to resolve image root: %w", err)
	}

	fullPath, err := utils.SecureJoin(rootAbs, filepath.FromSlash(relPath))
	if err != nil {
		return fmt.Errorf("unsafe image path %q: %w", relPath, err)
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image file: %w", err)
	}
	return nil
}

// RecipeImageURL 把数据库里的相对路径拼接为对外访问 URL。
func RecipeImageURL(relPath string) string {
	if relPath == "" {
		return ""
	}
	prefix := config.Get().Upload.URLPrefix
	if prefix == "" {
		prefix = "/media/recipes/"
	}
	return joinURL(prefix, relPath)
}

// AvatarURL 把头像相对路径拼接为对外访问 URL。
func AvatarURL(relPath string) string {
	if relPath == "" {
		return ""
	}
	prefix := config.Get().Upload.AvatarURLPrefix
	if prefix == "" {
		prefix = "/media/avatars/"
	}
	return joinURL(prefix, relPath)
}

func joinURL(prefix, rel string) string {
	return strings.TrimSuffix(prefix, "/") + "/" + path.Clean(strings.TrimPrefix(rel, "/"))
}
