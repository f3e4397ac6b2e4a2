package utils

import (
	"fmt"
	"recipe-hub-server/internal/consts"
	"regexp"
)

// 本文件的校验函数都是纯函数，必须在任何写库操作之前执行

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// ValidateUsername 校验用户名。
// reservedAlias 为路由占用的保留用户名（如 "me"），由调用方显式传入，便于测试。
func ValidateUsername(username string, reservedAlias string) (bool, string) {
	if username == "" {
		return false, "用户名不能为空"
	}
	if username == reservedAlias {
		return false, fmt.Sprintf("禁止使用用户名 %q", reservedAlias)
	}
	if !usernamePattern.MatchString(username) {
		return false, "用户名包含非法字符，只允许字母、数字和 @/./+/-/_"
	}
	if len(username) > consts.MaxUsernameLength {
		return false, fmt.Sprintf("用户名长度不能超过 %d 个字符", consts.MaxUsernameLength)
	}
	return true, ""
}

// ValidatePassword checks if the password meets the requirements.
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "密码最少8位"
	}

	if matched, _ := regexp.MatchString(`^[a-zA-Z0-9[:punct:]]+$`, password); !matched {
		return false, "密码只能包含英文大小写、数字和符号"
	}

	hasLetter, _ := regexp.MatchString(`[a-zA-Z]`, password)
	hasNum, _ := regexp.MatchString(`[0-9]`, password)
	if !hasLetter || !hasNum {
		return false, "密码必须包含至少一个字母和一个数字"
	}

	return true, ""
}

// ValidateCookingTime 校验做菜时长（分钟）。
func ValidateCookingTime(minutes int) (bool, string) {
	if minutes < consts.MinCookingTime {
		return false, fmt.Sprintf("做菜时长不能少于 %d 分钟", consts.MinCookingTime)
	}
	if minutes > consts.MaxCookingTime {
		return false, fmt.Sprintf("做菜时长不能超过 %d 分钟", consts.MaxCookingTime)
	}
	return true, ""
}

// ValidateIngredientAmount 校验单行食材用量。
func ValidateIngredientAmount(amount int) (bool, string) {
	if amount < consts.MinIngredientAmount {
		return false, fmt.Sprintf("食材用量不能少于 %d", consts.MinIngredientAmount)
	}
	if amount > consts.MaxIngredientAmount {
		return false, fmt.Sprintf("食材用量不能超过 %d", consts.MaxIngredientAmount)
	}
	return true, ""
}

// ValidateUniqueIngredients 校验一次提交内的食材 ID 不重复。
// 按提交顺序扫描，遇到第一个重复项即失败。
func ValidateUniqueIngredients(ids []uint) (bool, string) {
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return false, fmt.Sprintf("食材不能重复提交 (id=%d)", id)
		}
		seen[id] = struct{}{}
	}
	return true, ""
}
