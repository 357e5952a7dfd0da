package vo

// --- 用于成功响应且包含具体 Data 的包装器 ---

// PostResponseWrapper 对应 response.APIResponse[vo.PostVO]
type PostResponseWrapper struct {
	Code    int    `json:"code" example:"0"`
	Message string `json:"message,omitempty" example:"success"`
	Data    PostVO `json:"data"` // 使用具体的 vo.PostVO
}

// TimelinePageResponseWrapper 对应 response.APIResponse[vo.TimelinePageVO]
// 用于 GetTimeline 接口的成功响应。
type TimelinePageResponseWrapper struct {
	Code    int            `json:"code" example:"0"`
	Message string         `json:"message,omitempty" example:"success"`
	Data    TimelinePageVO `json:"data"` // 实际的时间线分页数据
}

// RankingResponseWrapper 对应 response.APIResponse[[]vo.PostVO]
// 用于排行榜接口的成功响应。
type RankingResponseWrapper struct {
	Code    int      `json:"code" example:"0"`
	Message string   `json:"message,omitempty" example:"success"`
	Data    []PostVO `json:"data"`
}

// RecommendResponseWrapper 对应 response.APIResponse[vo.RecommendVO]
type RecommendResponseWrapper struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message,omitempty" example:"success"`
	Data    RecommendVO `json:"data"`
}

// ReportResponseWrapper 对应 response.APIResponse[vo.ReportVO]
type ReportResponseWrapper struct {
	Code    int      `json:"code" example:"0"`
	Message string   `json:"message,omitempty" example:"success"`
	Data    ReportVO `json:"data"`
}

// --- 用于错误响应 或 简单成功响应（只有 Code 和 Message） ---

// BaseResponseWrapper 代表一个只包含 Code 和 Message 的响应。
// 适用于错误情况（RespondError 返回时 Data 为 nil 且 omitempty）。
type BaseResponseWrapper struct {
	Code    int    `json:"code" example:"0"`          // 成功时为 0, 错误时为具体错误码
	Message string `json:"message" example:"success"` // 成功或错误消息
}
