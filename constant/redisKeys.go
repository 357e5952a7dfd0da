package constant

// Redis Key 相关常量 (导出)
//
// 记录存储与全部索引共用同一个 postID 空间：
// 帖子本体是 Hash，四个索引都是 ZSet。索引只是可丢弃的投影，
// 任何时刻都可以从帖子 Hash 全量扫描重建。
const (
	// --- Key 前缀 (用于动态生成 Key) ---

	// PostKeyPrefix 是帖子记录的 Key 前缀。
	// 每个帖子对应一个 Hash，保存帖子的全部可变字段（计数器、状态、expire_at 等）。
	// 示例 Key: "post:post_1a2b3c4d5e6f"
	// Redis 类型: Hash
	PostKeyPrefix = "post:"

	// --- 固定 Key 名称 (全局使用的 Key) ---

	// TimelineKey 是时间线索引的 Key 名称。
	// 成员是帖子 ID，分数是创建时间（毫秒时间戳），支持按时间倒序的游标分页。
	// 被举报拉黑 (Blinded) 的帖子会在拉黑那一刻从该索引移除，不再出现在公开信息流中。
	// Redis 类型: Sorted Set
	TimelineKey = "posts:timeline"

	// ExpireIndexKey 是过期索引的 Key 名称。
	// 成员是帖子 ID，分数是绝对过期时间（毫秒时间戳），供清扫任务查询已到期的帖子。
	// 进入名人堂 (HallOfFame) 的帖子会从该索引移除，永不过期。
	// Redis 类型: Sorted Set
	ExpireIndexKey = "posts:expiring"

	// ViewsRankKey 是浏览量排行榜的 Key 名称。
	// 成员是帖子 ID，分数是最新浏览量，由浏览计数的 Lua 脚本在同一原子单元内更新。
	// Redis 类型: Sorted Set
	ViewsRankKey = "posts:rank:views"

	// RecsRankKey 是推荐数排行榜的 Key 名称。
	// 成员是帖子 ID，分数是最新推荐数，由推荐的 Lua 脚本在同一原子单元内更新。
	// Redis 类型: Sorted Set
	RecsRankKey = "posts:rank:recs"
)
