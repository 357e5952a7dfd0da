package vo

import (
	"time"

	"github.com/Xushengqwer/bamboo_service/models/entities"
)

// PostVO 定义了帖子对外暴露的响应数据结构
type PostVO struct {
	ID               string    `json:"id"`                // 帖子ID
	Content          string    `json:"content"`           // 帖子内容
	CreatedAt        time.Time `json:"created_at"`        // 创建时间
	SecondsRemaining int64     `json:"seconds_remaining"` // 距过期的剩余秒数，0 表示已过期或永久保留
	Tags             []string  `json:"tags"`              // 分类标签，由打标服务异步生成
	Views            int64     `json:"views"`             // 浏览量
	Recommendations  int64     `json:"recommendations"`   // 推荐数
	Reports          int64     `json:"reports"`           // 举报数
	Status           string    `json:"status"`            // 状态: active / blinded / expired / hall_of_fame
}

// TimelinePageVO 定义了时间线游标分页查询的响应结构。
// - 包含当前页的帖子列表和下一页的游标信息。
type TimelinePageVO struct {
	Posts         []*PostVO  `json:"posts"`         // 当前页的帖子列表
	Total         int64      `json:"total"`         // 时间线中的活跃帖子总数
	NextCreatedAt *time.Time `json:"nextCreatedAt"` // 下一页游标：创建时间，nil 表示没有下一页
	NextPostID    *string    `json:"nextPostId"`    // 下一页游标：帖子ID，nil 表示没有下一页
}

// RecommendVO 定义了推荐操作的响应结构。
type RecommendVO struct {
	Recommendations  int64 `json:"recommendations"`   // 更新后的推荐数
	SecondsRemaining int64 `json:"seconds_remaining"` // 更新后的剩余存活秒数
	Extended         bool  `json:"extended"`          // 本次推荐是否触发了续命
}

// ReportVO 定义了举报操作的响应结构。
type ReportVO struct {
	Reports int64 `json:"reports"` // 更新后的举报数
	Blinded bool  `json:"blinded"` // 本次举报是否触发了拉黑
}

// MapPostToVO 将帖子实体转换为响应 VO，剩余秒数以 now 为基准派生。
func MapPostToVO(post *entities.Post, now time.Time) *PostVO {
	if post == nil {
		return nil
	}
	tags := post.Tags
	if tags == nil {
		tags = []string{} // 返回空切片而不是 nil，便于前端处理
	}
	return &PostVO{
		ID:               post.ID,
		Content:          post.Content,
		CreatedAt:        post.CreatedAt,
		SecondsRemaining: post.SecondsRemaining(now),
		Tags:             tags,
		Views:            post.Views,
		Recommendations:  post.Recommendations,
		Reports:          post.Reports,
		Status:           post.Status.String(),
	}
}

// MapPostsToVOs 批量转换帖子实体列表。
func MapPostsToVOs(posts []*entities.Post, now time.Time) []*PostVO {
	if len(posts) == 0 {
		return []*PostVO{}
	}
	vos := make([]*PostVO, 0, len(posts))
	for _, post := range posts {
		if post == nil {
			continue
		}
		vos = append(vos, MapPostToVO(post, now))
	}
	return vos
}
