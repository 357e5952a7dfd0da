package config

import (
	"time"

	"github.com/Xushengqwer/bamboo_service/constant"
)

// LifecycleConfig 包含帖子生命周期阈值相关的配置。
// 所有字段为零时回落到 constant 包中的默认值，便于测试环境缩短窗口。
type LifecycleConfig struct {
	// DefaultTTLSeconds 帖子创建时的初始存活秒数 (默认 600)。
	DefaultTTLSeconds int `mapstructure:"defaultTtlSeconds" json:"defaultTtlSeconds" yaml:"defaultTtlSeconds"`

	// ExtensionSeconds 推荐数每跨过一个阈值整数倍时 expire_at 顺延的秒数 (默认 300)。
	ExtensionSeconds int `mapstructure:"extensionSeconds" json:"extensionSeconds" yaml:"extensionSeconds"`

	// ExtensionThreshold 推荐续命阈值 (默认 100)。
	ExtensionThreshold int64 `mapstructure:"extensionThreshold" json:"extensionThreshold" yaml:"extensionThreshold"`

	// BlindThreshold 举报拉黑阈值 (默认 50)。
	BlindThreshold int64 `mapstructure:"blindThreshold" json:"blindThreshold" yaml:"blindThreshold"`

	// HallOfFameThreshold 名人堂浏览量阈值 (默认 100000)。
	HallOfFameThreshold int64 `mapstructure:"hallOfFameThreshold" json:"hallOfFameThreshold" yaml:"hallOfFameThreshold"`

	// ArchiveGraceSeconds 逻辑过期后 Redis Key 物理保留的宽限秒数 (默认 3600)。
	ArchiveGraceSeconds int `mapstructure:"archiveGraceSeconds" json:"archiveGraceSeconds" yaml:"archiveGraceSeconds"`
}

// DefaultTTL 返回生效的初始存活时长。
func (c LifecycleConfig) DefaultTTL() time.Duration {
	if c.DefaultTTLSeconds > 0 {
		return time.Duration(c.DefaultTTLSeconds) * time.Second
	}
	return constant.PostDefaultTTL
}

// Extension 返回生效的单次续命时长。
func (c LifecycleConfig) Extension() time.Duration {
	if c.ExtensionSeconds > 0 {
		return time.Duration(c.ExtensionSeconds) * time.Second
	}
	return constant.RecommendExtension
}

// ExtensionEvery 返回生效的推荐续命阈值。
func (c LifecycleConfig) ExtensionEvery() int64 {
	if c.ExtensionThreshold > 0 {
		return c.ExtensionThreshold
	}
	return constant.RecommendExtensionThreshold
}

// BlindAt 返回生效的举报拉黑阈值。
func (c LifecycleConfig) BlindAt() int64 {
	if c.BlindThreshold > 0 {
		return c.BlindThreshold
	}
	return constant.ReportBlindThreshold
}

// HallOfFameAt 返回生效的名人堂阈值。
func (c LifecycleConfig) HallOfFameAt() int64 {
	if c.HallOfFameThreshold > 0 {
		return c.HallOfFameThreshold
	}
	return constant.HallOfFameViewThreshold
}

// ArchiveGrace 返回生效的物理保留宽限时长。
func (c LifecycleConfig) ArchiveGrace() time.Duration {
	if c.ArchiveGraceSeconds > 0 {
		return time.Duration(c.ArchiveGraceSeconds) * time.Second
	}
	return constant.ArchiveGrace
}

// SweeperConfig 包含过期清扫任务相关的配置。
type SweeperConfig struct {
	// CronSpec 清扫调度表达式 (默认 "@every 15s")。
	CronSpec string `mapstructure:"cronSpec" json:"cronSpec" yaml:"cronSpec"`

	// BatchSize 单次清扫从过期索引取出的最大条目数 (默认 256)。
	BatchSize int64 `mapstructure:"batchSize" json:"batchSize" yaml:"batchSize"`
}

// Spec 返回生效的调度表达式。
func (c SweeperConfig) Spec() string {
	if c.CronSpec != "" {
		return c.CronSpec
	}
	return constant.SweepCronSpec
}

// Batch 返回生效的批量大小。
func (c SweeperConfig) Batch() int64 {
	if c.BatchSize > 0 {
		return c.BatchSize
	}
	return constant.SweepBatchSize
}
