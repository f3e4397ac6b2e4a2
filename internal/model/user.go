package model

import "time"

// 用户状态
const (
	UserStatusNormal = 1
	UserStatusBanned = 2
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Username  string    `json:"username" gorm:"unique;not null;size:150"`
	Email     string    `json:"email" gorm:"unique;not null;size:254"`
	Password  string    `json:"-" gorm:"not null"`
	FirstName string    `json:"first_name" gorm:"size:150"`
	LastName  string    `json:"last_name" gorm:"size:150"`
	Avatar    string    `json:"avatar"`
	Admin     bool      `json:"admin" gorm:"not null"`
	Status    int       `json:"status" gorm:"default:1"` // 1: 正常, 2: 封禁
	Recipes   []Recipe  `json:"-" gorm:"foreignKey:AuthorID"`
}
