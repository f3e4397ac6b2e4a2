package service

import (
	"recipe-hub-server/internal/db"
	"recipe-hub-server/internal/model"
	"runtime"
)

type SystemInfo struct {
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	GoVersion    string `json:"go_version"`
	NumCPU       int    `json:"num_cpu"`
	NumGoroutine int    `json:"num_goroutine"`
}

type ServerStats struct {
	UserCount       int64      `json:"user_count"`
	RecipeCount     int64      `json:"recipe_count"`
	TagCount        int64      `json:"tag_count"`
	IngredientCount int64      `json:"ingredient_count"`
	FollowCount     int64      `json:"follow_count"`
	SystemInfo      SystemInfo `json:"system_info"`
}

// AdminGetServerStats 获取后台仪表盘统计数据。
func AdminGetServerStats() (*ServerStats, error) {
	stats := &ServerStats{
		SystemInfo: SystemInfo{
			OS:           runtime.GOOS,
			Arch:         runtime.GOARCH,
			GoVersion:    runtime.Version(),
			NumCPU:       runtime.NumCPU(),
			NumGoroutine: runtime.NumGoroutine(),
		},
	}

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&model.User{}, &stats.UserCount},
		{&model.Recipe{}, &stats.RecipeCount},
		{&model.Tag{}, &stats.TagCount},
		{&model.Ingredient{}, &stats.IngredientCount},
		{&model.Follow{}, &stats.FollowCount},
	}
	for _, c := range counts {
		if err := db.DB.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	return stats, nil
}
