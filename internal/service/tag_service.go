package service

import (
	"errors"
	"fmt"
	"recipe-hub-server/internal/common"
	"recipe-hub-server/internal/consts"
	"recipe-hub-server/internal/db"
	"recipe-hub-server/internal/model"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var (
	tagColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	tagSlugPattern  = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// ListTags 返回全部标签，按 ID 升序。标签总量很小，不分页。
func ListTags() ([]model.Tag, error) {
	var tags []model.Tag
	if err := db.DB.Order("id ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetTag 按 ID 获取标签。
func GetTag(id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := db.DB.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("标签不存在")
		}
		return nil, err
	}
	return &tag, nil
}

// CreateTag 新建标签（管理员操作），name/color/slug 三者各自全局唯一。
func CreateTag(name, color, slug string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > consts.MaxNameLength {
		return nil, common.NewValidationError(fmt.Sprintf("标签名不能为空且不超过 %d 个字符", consts.MaxNameLength))
	}
	if !tagColorPattern.MatchString(color) {
		return nil, common.NewValidationError("颜色必须是 #RRGGBB 格式的十六进制值")
	}
	if slug == "" || len(slug) > consts.MaxSlugLength || !tagSlugPattern.MatchString(slug) {
		return nil, common.NewValidationError("slug 只允许字母、数字、下划线和连字符")
	}

	tag := model.Tag{Name: name, Color: color, Slug: slug}
	if err := db.DB.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, common.NewConflictError("标签名、颜色或 slug 已存在")
		}
		return nil, err
	}
	return &tag, nil
}

// tagsByIDs 批量查出标签并校验每个 ID 都存在。
func tagsByIDs(tx *gorm.DB, ids []uint) ([]model.Tag, error) {
	var tags []model.Tag
	if err := tx.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		found := make(map[uint]struct{}, len(tags))
		for _, t := range tags {
			found[t.ID] = struct{}{}
		}
		for _, id := range ids {
			if _, ok := found[id]; !ok {
				return nil, common.NewValidationError(fmt.Sprintf("标签不存在 (id=%d)", id))
			}
		}
	}
	return tags, nil
}
