package enums

// PostStatus 表示帖子的生命周期状态。
// 这是一个封闭的枚举集合：四种状态之外的值一律视为非法。
// 状态迁移只发生在 Lua 原子单元内（浏览/举报脚本）和清扫脚本里，
// 其余代码只读不写。Blinded / Expired / HallOfFame 都是吸收态。
type PostStatus int

const (
	// StatusActive 活跃：可被浏览、推荐、举报，到期会被清扫。
	StatusActive PostStatus = 0
	// StatusBlinded 已拉黑：举报数达到阈值后被隐藏，仅保留用于合规归档。
	StatusBlinded PostStatus = 1
	// StatusExpired 已过期：清扫任务判定到期后的终态。
	StatusExpired PostStatus = 2
	// StatusHallOfFame 名人堂：浏览量达到阈值，清除过期时间，永久保留。
	StatusHallOfFame PostStatus = 3
)

// IsValid 校验取值是否落在封闭集合内。
func (s PostStatus) IsValid() bool {
	return s >= StatusActive && s <= StatusHallOfFame
}

// String 返回对外展示用的状态名，与历史 API 的取值保持一致。
func (s PostStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusBlinded:
		return "blinded"
	case StatusExpired:
		return "expired"
	case StatusHallOfFame:
		return "hall_of_fame"
	default:
		return "unknown"
	}
}
