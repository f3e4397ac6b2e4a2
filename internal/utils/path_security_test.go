package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// 测试内容：验证安全拼接拒绝越界与绝对路径。
func TestSecureJoin(t *testing.T) {
	base := t.TempDir()

	joined, err := SecureJoin(base, "a/b.txt")
	if err != nil {
		t.Fatalf("合法路径拼接失败: %v", err)
	}
	if filepath.Dir(filepath.Dir(joined)) != filepath.Clean(base) {
		t.Fatalf("拼接结果不在基目录下: %s", joined)
	}

	if _, err := SecureJoin(base, "../escape.txt"); err == nil {
		t.Fatal("期望 .. 越界被拒绝")
	}
	if _, err := SecureJoin(base, string(os.PathSeparator)+"etc"+string(os.PathSeparator)+"passwd"); err == nil {
		t.Fatal("期望绝对路径被拒绝")
	}
}

// 测试内容：验证符号链接节点被识别为风险。
func TestEnsurePathNotSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("windows 下符号链接需要特权")
	}

	base := t.TempDir()

	// 不存在的路径视为安全
	if err := EnsurePathNotSymlink(filepath.Join(base, "missing")); err != nil {
		t.Fatalf("不存在的路径不应报错: %v", err)
	}

	target := filepath.Join(base, "target")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	link := filepath.Join(base, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	if err := EnsurePathNotSymlink(link); err == nil {
		t.Fatal("期望符号链接被识别为风险")
	}
	if err := EnsurePathNotSymlink(target); err != nil {
		t.Fatalf("普通目录不应报错: %v", err)
	}
}

// 测试内容：验证链路检查能发现中间层的符号链接。
func TestEnsureNoSymlinkBetween(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("windows 下符号链接需要特权")
	}

	base := t.TempDir()
	outside := t.TempDir()

	link := filepath.Join(base, "sub")
	if err := os.Symlink(outside, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	if err := EnsureNoSymlinkBetween(base, filepath.Join(link, "file.txt")); err == nil {
		t.Fatal("期望链路上的符号链接被发现")
	}

	normal := filepath.Join(base, "normal", "file.txt")
	if err := EnsureNoSymlinkBetween(base, normal); err != nil {
		t.Fatalf("普通链路不应报错: %v", err)
	}
}
