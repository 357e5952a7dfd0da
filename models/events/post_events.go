package events

import (
	"time"

	"github.com/Xushengqwer/bamboo_service/models/entities"
)

// 帖子生命周期相关的 Kafka 事件定义。
// 打标服务与归档网关都部署在本服务之外，事件结构是双方的契约；
// 字段新增必须向后兼容，已有字段不得改名。

// 归档原因取值。
const (
	ArchiveReasonBlinded    = "blinded"
	ArchiveReasonExpired    = "expired"
	ArchiveReasonHallOfFame = "hall_of_fame"
)

// PostData 事件中携带的帖子核心数据快照。
type PostData struct {
	ID               string    `json:"id"`
	Content          string    `json:"content"`
	CreatedAt        time.Time `json:"created_at"`
	ExpireAt         *time.Time `json:"expire_at,omitempty"` // 名人堂帖子为 nil
	Views            int64     `json:"views"`
	Recommendations  int64     `json:"recommendations"`
	Reports          int64     `json:"reports"`
	Tags             []string  `json:"tags"`
	Status           string    `json:"status"`
}

// SnapshotFromPost 把帖子记录转成事件快照。
func SnapshotFromPost(post *entities.Post) PostData {
	data := PostData{
		ID:              post.ID,
		Content:         post.Content,
		CreatedAt:       post.CreatedAt,
		Views:           post.Views,
		Recommendations: post.Recommendations,
		Reports:         post.Reports,
		Tags:            post.Tags,
		Status:          post.Status.String(),
	}
	if post.HasExpiry() {
		expireAt := post.ExpireAt
		data.ExpireAt = &expireAt
	}
	return data
}

// PostCreatedEvent 帖子创建成功后发布，供打标服务消费。
type PostCreatedEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	PostID    string    `json:"post_id"`
	Content   string    `json:"content"`
}

// PostTaggedEvent 打标服务完成后回调发布，本服务消费并写回标签。
type PostTaggedEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	PostID    string    `json:"post_id"`
	Tags      []string  `json:"tags"`
}

// PostArchivedEvent 帖子进入拉黑/过期/名人堂时发布，归档网关消费后落入永久存储。
type PostArchivedEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	Reason    string    `json:"reason"` // blinded / expired / hall_of_fame
	Post      PostData  `json:"post"`
}
