package dto

import "time"

// CreatePostRequest 定义了发布帖子的API请求体。
type CreatePostRequest struct {
	// Content 帖子内容。
	// - binding:"required,max=200"`: 必填，最长 200 个字符。
	// - 服务层还会去除首尾空白后再校验非空（纯空白内容视为空）。
	Content string `json:"content" binding:"required,max=200"`
}

// GetTimelineRequestDTO 定义了获取时间线列表的API请求参数。
// - 游标分页：首页不带游标，之后携带上一页最后一条的 (创建时间, 帖子ID)。
// - 相比 offset 分页，并发的新增/清扫不会造成跨页的跳过或重复。
type GetTimelineRequestDTO struct {
	// LastCreatedAt 上一页最后一条记录的创建时间。
	// - binding:"omitempty"`: 可选，RFC3339 格式。
	LastCreatedAt *time.Time `form:"lastCreatedAt" binding:"omitempty" time_format:"2006-01-02T15:04:05Z07:00"`

	// LastPostID 上一页最后一条记录的帖子 ID，创建时间相同的帖子靠它断开。
	LastPostID *string `form:"lastPostId" binding:"omitempty,max=64"`

	// PageSize 每页数量。
	// - binding:"required,gte=1,lte=100"`: 必填，1~100。
	PageSize int `form:"pageSize" binding:"required,gte=1,lte=100"`
}

// GetRankingRequestDTO 定义了获取排行榜的API请求参数。
type GetRankingRequestDTO struct {
	// Limit 返回的条目数，默认 10，最大 50。
	Limit int `form:"limit" binding:"omitempty,gte=1,lte=50"`
}
