package utils

import (
	"encoding/base64"
	"errors"
	"strings"
)

// 支持的内联图片格式与落盘扩展名
var allowedImageExts = map[string]string{
	"jpeg": ".jpg",
	"jpg":  ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"webp": ".webp",
	"bmp":  ".bmp",
}

var ErrInvalidImageEncoding = errors.New("图片编码无效")

// DecodeBase64Image 解析 data URI 形式的内联图片
// （如 "data:image/png;base64,...."），返回解码后的字节与落盘扩展名。
// 任何不符合该格式的输入都视为编码错误，由调用方终止本次请求。
func DecodeBase64Image(data string) ([]byte, string, error) {
	if !strings.HasPrefix(data, "data:image/") {
		return nil, "", ErrInvalidImageEncoding
	}

	meta, payload, found := strings.Cut(data, ";base64,")
	if !found || payload == "" {
		return nil, "", ErrInvalidImageEncoding
	}

	format := strings.TrimPrefix(meta, "data:image/")
	ext, ok := allowedImageExts[strings.ToLower(format)]
	if !ok {
		return nil, "", ErrInvalidImageEncoding
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", ErrInvalidImageEncoding
	}
	if len(raw) == 0 {
		return nil, "", ErrInvalidImageEncoding
	}

	return raw, ext, nil
}
