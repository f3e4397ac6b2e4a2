package model

// Tag 菜谱标签，name/color/slug 三者各自全局唯一
type Tag struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"unique;not null;size:256"`
	Color string `json:"color" gorm:"unique;not null;size:7"` // 十六进制颜色值，如 #49B64E
	Slug  string `json:"slug" gorm:"unique;not null;size:200;index"`
}
