package tasks

import (
	"context"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Xushengqwer/bamboo_service/config"
	"github.com/Xushengqwer/bamboo_service/models/events"
	"github.com/Xushengqwer/bamboo_service/mq/producer"
	"github.com/Xushengqwer/bamboo_service/repo/redis"
)

// ExpirationSweeperTask 负责定时清扫已到期的帖子。
// 清扫只是保洁：逻辑过期由记录里的 expire_at 字段判定，读路径不依赖
// 清扫的及时性，所以清扫晚到、漏跑一轮都不影响正确性。
type ExpirationSweeperTask struct {
	expirationRepo redis.ExpirationRepository // Redis 仓库，提供到期查询与原子下线
	kafkaSvc       *producer.KafkaProducer    // Kafka 生产者，向归档网关发快照
	cron           *cron.Cron                 // cron V3 实例
	sweeperCfg     config.SweeperConfig
	logger         *core.ZapLogger
}

// NewExpirationSweeperTask 初始化并启动过期清扫的定时任务。
func NewExpirationSweeperTask(
	expirationRepo redis.ExpirationRepository,
	kafkaSvc *producer.KafkaProducer,
	sweeperCfg config.SweeperConfig,
	logger *core.ZapLogger,
) *ExpirationSweeperTask {
	// 清扫间隔是秒级的，需要支持秒字段的解析器
	cronV3 := cron.New(cron.WithSeconds())
	task := &ExpirationSweeperTask{
		expirationRepo: expirationRepo,
		kafkaSvc:       kafkaSvc,
		cron:           cronV3,
		sweeperCfg:     sweeperCfg,
		logger:         logger,
	}
	task.startCronJob()
	return task
}

// startCronJob 配置并启动 cron 作业。
func (t *ExpirationSweeperTask) startCronJob() {
	schedule := t.sweeperCfg.Spec()
	t.logger.Info("准备启动帖子过期清扫定时任务", zap.String("schedule", schedule))

	entryID, err := t.cron.AddFunc(schedule, func() {
		startTime := time.Now()
		// 单轮清扫的超时：一批最多几百个帖子，一分钟绰绰有余
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		t.sweepOnce(ctx)

		duration := time.Since(startTime)
		t.logger.Debug("帖子过期清扫执行完毕", zap.Duration("duration", duration))
	})

	if err != nil {
		t.logger.Fatal("添加帖子过期清扫 cron 作业失败", zap.Error(err), zap.String("schedule", schedule))
	}

	t.cron.Start()
	t.logger.Info("帖子过期清扫定时任务已启动", zap.Uint("cronEntryID", uint(entryID)))
}

// sweepOnce 执行一轮清扫。
// 1. 从过期索引取一批到期的帖子 ID。
// 2. 逐个原子下线；单个帖子出错只记日志，不中断整批。
// 3. 真正完成下线的帖子，把最终快照交给归档网关。
func (t *ExpirationSweeperTask) sweepOnce(ctx context.Context) {
	now := time.Now()
	ids, err := t.expirationRepo.DuePostIDs(ctx, now, t.sweeperCfg.Batch())
	if err != nil {
		t.logger.Error("获取到期帖子列表失败，本轮清扫中止", zap.Error(err))
		return
	}
	if len(ids) == 0 {
		return
	}
	t.logger.Info("发现到期帖子，开始清扫", zap.Int("count", len(ids)))

	retired := 0
	for _, postID := range ids {
		snapshot, retireErr := t.expirationRepo.RetirePost(ctx, postID, now)
		if retireErr != nil {
			// 留在索引里，下一轮重试
			t.logger.Error("下线到期帖子失败", zap.Error(retireErr), zap.String("postID", postID))
			continue
		}
		if snapshot == nil {
			// 已被续命，或记录已被其他路径处理，索引清理已在脚本内完成
			continue
		}
		retired++

		// 帖子已下线，归档是尽力而为的旁路；未接入 Kafka 或发送失败都只记日志
		if t.kafkaSvc == nil {
			t.logger.Warn("未接入 Kafka，到期帖子归档快照被放弃", zap.String("postID", postID))
			continue
		}
		if sendErr := t.kafkaSvc.SendPostArchivedEvent(ctx, events.ArchiveReasonExpired, events.SnapshotFromPost(snapshot)); sendErr != nil {
			t.logger.Error("发送到期帖子归档事件失败", zap.Error(sendErr), zap.String("postID", postID))
		}
	}

	t.logger.Info("本轮清扫完成",
		zap.Int("due", len(ids)),
		zap.Int("retired", retired))
}

// Stop 优雅地停止 cron 调度器。
// 返回一个 context，调用者可以使用它来等待正在运行的清扫完成。
func (t *ExpirationSweeperTask) Stop() context.Context {
	t.logger.Info("正在停止帖子过期清扫定时任务...")
	stopCtx := t.cron.Stop()
	t.logger.Info("帖子过期清扫定时任务已停止调度。等待正在执行的清扫完成...")
	return stopCtx
}
