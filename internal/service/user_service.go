package service

import (
	"errors"
	"recipe-hub-server/internal/common"
	"recipe-hub-server/internal/config"
	"recipe-hub-server/internal/consts"
	"recipe-hub-server/internal/db"
	"recipe-hub-server/internal/model"
	"recipe-hub-server/internal/utils"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterUser 注册新用户，用户名与邮箱全局唯一。
// 先做存在性预检以返回友好错误，最终一致性由数据库唯一索引兜底。
func RegisterUser(username, email, password, firstName, lastName string) (*model.User, error) {
	if ok, msg := utils.ValidateUsername(username, consts.ReservedProfileAlias); !ok {
		return nil, common.NewValidationError(msg)
	}
	if ok, msg := utils.ValidatePassword(password); !ok {
		return nil, common.NewValidationError(msg)
	}
	if email == "" || len(email) > consts.MaxEmailLength {
		return nil, common.NewValidationError("邮箱不合法")
	}
	if len(firstName) > consts.MaxUsernameLength || len(lastName) > consts.MaxUsernameLength {
		return nil, common.NewValidationError("姓名过长")
	}

	if taken, err := IsUsernameTaken(username, nil); err != nil {
		return nil, err
	} else if taken {
		return nil, common.NewConflictError("用户名已被占用")
	}
	if taken, err := IsEmailTaken(email, nil); err != nil {
		return nil, err
	} else if taken {
		return nil, common.NewConflictError("邮箱已被注册")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Username:  username,
		Email:     email,
		Password:  string(hashed),
		FirstName: firstName,
		LastName:  lastName,
		Status:    model.UserStatusNormal,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 并发注册撞上唯一索引
			return nil, common.NewConflictError("用户名或邮箱已被占用")
		}
		return nil, err
	}
	return &user, nil
}

// LoginUser 邮箱+密码登录，返回登录 Token。
func LoginUser(email, password string) (string, *model.User, error) {
	var user model.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 不区分"用户不存在"和"密码错误"，避免撞库探测
			return "", nil, common.NewUnauthorizedError("邮箱或密码错误")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, common.NewUnauthorizedError("邮箱或密码错误")
	}

	if user.Status == model.UserStatusBanned {
		return "", nil, common.NewForbiddenError("账号已被封禁")
	}

	expirationHours := config.Get().JWT.ExpirationHours
	if expirationHours <= 0 {
		expirationHours = 24
	}
	token, err := utils.GenerateLoginToken(user.ID, user.Username, user.Admin, time.Duration(expirationHours)*time.Hour)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// LogoutUser 将当前 Token 加入黑名单，TTL 为其剩余有效期。
func LogoutUser(token string) error {
	claims, err := utils.ParseLoginToken(token)
	if err != nil {
		// 本就无效的 Token 无需拉黑
		return nil
	}

	ttl := time.Hour
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	BlacklistToken(token, ttl)
	return nil
}

// GetUserByID 按 ID 获取用户。
func GetUserByID(id uint) (*model.User, error) {
	var user model.User
	if err := db.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("用户不存在")
		}
		return nil, err
	}
	return &user, nil
}

// SetPassword 修改密码，需先验证当前密码。
func SetPassword(userID uint, currentPassword, newPassword string) error {
	if ok, msg := utils.ValidatePassword(newPassword); !ok {
		return common.NewValidationError(msg)
	}

	user, err := GetUserByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return common.NewValidationError("当前密码错误")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.DB.Model(&model.User{}).Where("id = ?", userID).Update("password", string(hashed)).Error
}

// SetAvatar 解码并保存头像，返回对外访问 URL。旧头像文件会被清理。
func SetAvatar(userID uint, base64Data string) (string, error) {
	user, err := GetUserByID(userID)
	if err != nil {
		return "", err
	}

	cfg := config.Get()
	avatarRoot := cfg.Upload.AvatarPath
	if avatarRoot == "" {
		avatarRoot = "uploads/avatars"
	}

	filename, err := SaveBase64Image(base64Data, avatarRoot)
	if err != nil {
		return "", err
	}

	oldAvatar := user.Avatar
	if err := db.DB.Model(&model.User{}).Where("id = ?", userID).Update("avatar", filename).Error; err != nil {
		_ = DeleteStoredImage(avatarRoot, filename)
		return "", err
	}

	if oldAvatar != "" {
		_ = DeleteStoredImage(avatarRoot, oldAvatar)
	}
	return AvatarURL(filename), nil
}

// DeleteAvatar 清除头像字段并删除物理文件。
func DeleteAvatar(userID uint) error {
	user, err := GetUserByID(userID)
	if err != nil {
		return err
	}
	if user.Avatar == "" {
		return common.NewValidationError("尚未设置头像")
	}

	if err := db.DB.Model(&model.User{}).Where("id = ?", userID).Update("avatar", "").Error; err != nil {
		return err
	}

	avatarRoot := config.Get().Upload.AvatarPath
	if avatarRoot == "" {
		avatarRoot = "uploads/avatars"
	}
	_ = DeleteStoredImage(avatarRoot, user.Avatar)
	return nil
}

// ListUsers 分页列出用户，按 ID 升序。
func ListUsers(page, pageSize int) ([]model.User, int64, error) {
	var total int64
	if err := db.DB.Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	offset := (page - 1) * pageSize
	if err := db.DB.Order("id ASC").Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// AdminSetUserStatus 管理员封禁/解封用户。
// 调用方负责清理登录态缓存（middleware.ClearUserStatusCache）。
func AdminSetUserStatus(userID uint, status int) error {
	if status != model.UserStatusNormal && status != model.UserStatusBanned {
		return common.NewValidationError("无效的用户状态")
	}

	user, err := GetUserByID(userID)
	if err != nil {
		return err
	}
	if user.Admin && status == model.UserStatusBanned {
		return common.NewForbiddenError("不能封禁管理员账号")
	}

	return db.DB.Model(&model.User{}).Where("id = ?", userID).Update("status", status).Error
}
