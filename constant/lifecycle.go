package constant

import "time"

// 服务标识，用于链路追踪与日志。
const (
	ServiceName    = "bamboo_service"
	ServiceVersion = "1.0.0"
)

// 帖子生命周期默认参数常量。
// 配置文件可以覆盖这些值 (config.LifecycleConfig)，为零时回落到这里的默认值。
const (
	// PostDefaultTTL 是帖子创建时获得的初始存活时长。
	PostDefaultTTL time.Duration = 600 * time.Second

	// RecommendExtension 是推荐数每跨过一个 RecommendExtensionThreshold
	// 的整数倍时，expire_at 顺延的时长。
	RecommendExtension time.Duration = 300 * time.Second

	// RecommendExtensionThreshold 推荐数续命阈值：每第 100 个推荐触发一次续命。
	RecommendExtensionThreshold int64 = 100

	// ReportBlindThreshold 举报拉黑阈值：举报数达到 50 时帖子被拉黑。
	ReportBlindThreshold int64 = 50

	// HallOfFameViewThreshold 名人堂阈值：浏览量达到 100000 时帖子永久保留。
	HallOfFameViewThreshold int64 = 100000

	// ArchiveGrace 是帖子逻辑过期后，Redis Key 物理保留的宽限时长。
	// 逻辑过期一律以 Hash 中的绝对 expire_at 判定；宽限窗口只是为了让
	// 清扫任务还能读到完整记录并移交归档网关。物理 TTL 仅作为清扫任务
	// 长时间不可用时的兜底回收手段。
	ArchiveGrace time.Duration = time.Hour
)

// 清扫任务默认参数。
const (
	// SweepCronSpec 是过期清扫任务的默认调度表达式。
	SweepCronSpec = "@every 15s"

	// SweepBatchSize 是单次清扫从过期索引取出的最大条目数。
	SweepBatchSize int64 = 256
)
