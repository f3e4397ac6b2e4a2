package consts

const (
	ApplicationName    = "Recipe Hub Server"
	ApplicationVersion = "1.0.2"
)

// ReservedProfileAlias 是 /users/me 路由占用的保留用户名
const ReservedProfileAlias = "me"

// 菜谱与食材数值边界
const (
	MinCookingTime      = 1
	MaxCookingTime      = 20000
	MinIngredientAmount = 1
	MaxIngredientAmount = 20000
)

// 分页默认值
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// 字段长度上限
const (
	MaxUsernameLength        = 150
	MaxEmailLength           = 254
	MaxNameLength            = 256
	MaxSlugLength            = 200
	MaxColorLength           = 7
	MaxMeasurementUnitLength = 200
)
