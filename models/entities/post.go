package entities

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/Xushengqwer/bamboo_service/models/enums"
)

// Redis Hash 字段名常量。
// Lua 脚本里以字面量引用同名字段，修改时必须同步 repo/redis 下的脚本。
const (
	FieldID              = "id"
	FieldContent         = "content"
	FieldCreatedAt       = "created_at"     // RFC3339，供展示层使用
	FieldCreatedAtMs     = "created_at_ms"  // 毫秒时间戳，与时间线索引分数一致
	FieldExpireAtMs      = "expire_at_ms"   // 绝对过期时间（毫秒），名人堂帖子删除该字段
	FieldViews           = "views"
	FieldRecommendations = "recommendations"
	FieldReports         = "reports"
	FieldTags            = "tags" // JSON 数组，由外部打标服务回调时一次性写入
	FieldStatus          = "status"
)

// Post 帖子记录实体
// - 使用场景: 表示 Redis Hash `post:{id}` 中的一条帖子记录，是计数器与状态的唯一权威来源。
// - 所有索引 (时间线/过期/排行) 都是由该记录派生的投影。
type Post struct {
	// 帖子 ID，创建时分配，形如 "post_1a2b3c4d5e6f"，之后不可变
	ID string

	// 帖子内容，1~200 个字符，创建后不可变
	Content string

	// 创建时间，不可变
	CreatedAt time.Time

	// 绝对过期时间
	// - 创建时为 CreatedAt + 默认 TTL，推荐续命时单调后移
	// - 进入名人堂后被整体清除，此时为零值
	ExpireAt time.Time

	// 浏览量，单调递增；每次 get 都会原子 +1
	Views int64

	// 推荐数，单调递增；每跨过一个 100 的整数倍触发一次续命
	Recommendations int64

	// 举报数，单调递增；达到 50 时帖子被拉黑
	Reports int64

	// 分类标签，初始为空，由外部打标服务异步回调写入，至多一次
	Tags []string

	// 生命周期状态，见 enums.PostStatus
	Status enums.PostStatus
}

// HasExpiry 返回帖子是否仍带有过期时间（名人堂帖子没有）。
func (p *Post) HasExpiry() bool {
	return !p.ExpireAt.IsZero()
}

// SecondsRemaining 返回距离过期的剩余秒数，已过期或无过期时间时为 0。
func (p *Post) SecondsRemaining(now time.Time) int64 {
	if !p.HasExpiry() {
		return 0
	}
	remaining := p.ExpireAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int64(remaining / time.Second)
}

// ToHash 将帖子实体展开为写入 Redis Hash 的字段映射。
// 仅在创建帖子时使用；后续的字段变更全部发生在 Lua 脚本内。
func (p *Post) ToHash() map[string]interface{} {
	tagsJSON, _ := json.Marshal(p.Tags)
	fields := map[string]interface{}{
		FieldID:              p.ID,
		FieldContent:         p.Content,
		FieldCreatedAt:       p.CreatedAt.UTC().Format(time.RFC3339),
		FieldCreatedAtMs:     strconv.FormatInt(p.CreatedAt.UnixMilli(), 10),
		FieldViews:           strconv.FormatInt(p.Views, 10),
		FieldRecommendations: strconv.FormatInt(p.Recommendations, 10),
		FieldReports:         strconv.FormatInt(p.Reports, 10),
		FieldTags:            string(tagsJSON),
		FieldStatus:          strconv.Itoa(int(p.Status)),
	}
	if p.HasExpiry() {
		fields[FieldExpireAtMs] = strconv.FormatInt(p.ExpireAt.UnixMilli(), 10)
	}
	return fields
}

// PostFromHash 从 Redis Hash 的字段映射还原帖子实体。
// 字段缺失或损坏时采用零值而不是报错：索引与记录之间允许短暂竞态，
// 读取路径必须对半删除的记录保持容忍。
func PostFromHash(fields map[string]string) *Post {
	post := &Post{
		ID:      fields[FieldID],
		Content: fields[FieldContent],
		Tags:    []string{},
	}

	if raw := fields[FieldCreatedAtMs]; raw != "" {
		if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
			post.CreatedAt = time.UnixMilli(ms).UTC()
		}
	}
	if raw := fields[FieldExpireAtMs]; raw != "" {
		if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
			post.ExpireAt = time.UnixMilli(ms).UTC()
		}
	}

	post.Views, _ = strconv.ParseInt(fields[FieldViews], 10, 64)
	post.Recommendations, _ = strconv.ParseInt(fields[FieldRecommendations], 10, 64)
	post.Reports, _ = strconv.ParseInt(fields[FieldReports], 10, 64)

	if raw := fields[FieldTags]; raw != "" {
		var tags []string
		if err := json.Unmarshal([]byte(raw), &tags); err == nil && tags != nil {
			post.Tags = tags
		}
	}

	if raw := fields[FieldStatus]; raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && enums.PostStatus(v).IsValid() {
			post.Status = enums.PostStatus(v)
		}
	}
	return post
}
