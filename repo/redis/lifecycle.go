package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/bamboo_service/config"
	"github.com/Xushengqwer/bamboo_service/constant"
	"github.com/Xushengqwer/bamboo_service/models/entities"
	"github.com/Xushengqwer/bamboo_service/myErrors"
)

// RecommendResult 推荐操作的结果。
type RecommendResult struct {
	Recommendations int64     // 自增后的推荐数
	ExpireAt        time.Time // 生效中的绝对过期时间（含本次续命）
	Crossings       int64     // 本次跨过的阈值整数倍个数，>0 表示发生了续命
}

// ReportResult 举报操作的结果。
type ReportResult struct {
	Reports  int64          // 自增后的举报数
	Blinded  bool           // 本次举报是否恰好触发了拉黑
	Snapshot *entities.Post // 触发拉黑时的完整记录快照（供归档），否则为 nil
}

// PostLifecycleRepository 定义了帖子状态机的原子操作接口。
// - 每个带阈值分支的读改写都是单个服务端 Lua 脚本：在同一帖子上不存在
//   可被其他操作观测到的中间状态，阈值跨越恰好触发一次。
// - 阈值一律用自增后的值判定，绝不重新读取，避免 TOCTOU 间隙。
type PostLifecycleRepository interface {
	// RecommendPost 原子地将推荐数 +1。
	// - 设 before/after 为自增前后的值，crossings = floor(after/100) - floor(before/100)；
	//   crossings > 0 时在同一脚本内将 expire_at 顺延 crossings * 300s 并同步过期索引，
	//   因此即使一阵并发推荐一次跨过多个整数倍，续命总量也恰好是 floor(total/100) 次。
	// - 帖子缺失或已逻辑过期返回 ErrPostNotFound；状态非 Active 返回 ErrOperationRejected。
	RecommendPost(ctx context.Context, postID string) (*RecommendResult, error)

	// ReportPost 原子地将举报数 +1。
	// - Active 帖子达到拉黑阈值时，同一脚本内置状态为 Blinded 并移出时间线索引，
	//   返回 Blinded = true 连同记录快照；状态翻转在脚本内完成，拉黑恰好触发一次。
	// - 名人堂帖子接受计数（可观测性）但永不改变状态；Blinded/Expired 返回 ErrOperationRejected。
	ReportPost(ctx context.Context, postID string) (*ReportResult, error)
}

// postLifecycleRepository 是 PostLifecycleRepository 接口的 Redis 实现。
type postLifecycleRepository struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
	lifecycle   appConfig.LifecycleConfig
}

// NewPostLifecycleRepository 创建 PostLifecycleRepository 实例。
func NewPostLifecycleRepository(redisClient *redis.Client, logger *core.ZapLogger, lifecycle appConfig.LifecycleConfig) PostLifecycleRepository {
	return &postLifecycleRepository{
		redisClient: redisClient,
		logger:      logger,
		lifecycle:   lifecycle,
	}
}

// recommendScript 推荐路径的原子单元。
// 状态取值: 0=Active 1=Blinded 2=Expired 3=HallOfFame
var recommendScript = redis.NewScript(`
	-- KEYS[1] 帖子 Hash; KEYS[2] 推荐数排行; KEYS[3] 过期索引
	-- ARGV[1] postID; ARGV[2] 当前毫秒; ARGV[3] 阈值; ARGV[4] 单次续命毫秒; ARGV[5] 宽限毫秒
	if redis.call("EXISTS", KEYS[1]) == 0 then
		return {-1}
	end
	local status = tonumber(redis.call("HGET", KEYS[1], "status"))
	local expireAt = tonumber(redis.call("HGET", KEYS[1], "expire_at_ms") or "0")
	if status ~= 3 and expireAt > 0 and tonumber(ARGV[2]) >= expireAt then
		return {-1}
	end
	if status ~= 0 then
		return {-2}
	end
	local after = redis.call("HINCRBY", KEYS[1], "recommendations", 1)
	local before = after - 1
	local every = tonumber(ARGV[3])
	local crossings = math.floor(after / every) - math.floor(before / every)
	if crossings > 0 then
		expireAt = expireAt + crossings * tonumber(ARGV[4])
		redis.call("HSET", KEYS[1], "expire_at_ms", expireAt)
		redis.call("ZADD", KEYS[3], expireAt, ARGV[1])
		redis.call("PEXPIREAT", KEYS[1], expireAt + tonumber(ARGV[5]))
	end
	redis.call("ZADD", KEYS[2], after, ARGV[1])
	return {after, expireAt, crossings}
`)

// reportScript 举报路径的原子单元。
var reportScript = redis.NewScript(`
	-- KEYS[1] 帖子 Hash; KEYS[2] 时间线索引
	-- ARGV[1] postID; ARGV[2] 当前毫秒; ARGV[3] 拉黑阈值
	if redis.call("EXISTS", KEYS[1]) == 0 then
		return {-1}
	end
	local status = tonumber(redis.call("HGET", KEYS[1], "status"))
	local expireAt = tonumber(redis.call("HGET", KEYS[1], "expire_at_ms") or "0")
	if status ~= 3 and expireAt > 0 and tonumber(ARGV[2]) >= expireAt then
		return {-1}
	end
	if status == 1 or status == 2 then
		return {-2}
	end
	local reports = redis.call("HINCRBY", KEYS[1], "reports", 1)
	local blinded = 0
	-- 名人堂帖子只计数，状态是吸收态，永不被拉黑
	if status == 0 and reports >= tonumber(ARGV[3]) then
		redis.call("HSET", KEYS[1], "status", 1)
		redis.call("ZREM", KEYS[2], ARGV[1])
		blinded = 1
	end
	local reply = {reports, blinded}
	if blinded == 1 then
		local data = redis.call("HGETALL", KEYS[1])
		for i = 1, #data do
			reply[#reply+1] = data[i]
		end
	end
	return reply
`)

// RecommendPost 实现推荐操作。
func (r *postLifecycleRepository) RecommendPost(ctx context.Context, postID string) (*RecommendResult, error) {
	postKey := constant.PostKeyPrefix + postID

	raw, err := recommendScript.Run(ctx, r.redisClient,
		[]string{postKey, constant.RecsRankKey, constant.ExpireIndexKey},
		postID,
		time.Now().UnixMilli(),
		r.lifecycle.ExtensionEvery(),
		r.lifecycle.Extension().Milliseconds(),
		r.lifecycle.ArchiveGrace().Milliseconds(),
	).Slice()
	if err != nil {
		r.logger.Error("推荐帖子 Lua 脚本执行失败", zap.Error(err), zap.String("postID", postID))
		return nil, fmt.Errorf("推荐帖子 (ID: %s) 失败: %w", postID, err)
	}

	code, _ := raw[0].(int64)
	switch code {
	case -1:
		return nil, myErrors.ErrPostNotFound
	case -2:
		return nil, myErrors.ErrOperationRejected
	}

	result := &RecommendResult{Recommendations: code}
	if expireMs, ok := raw[1].(int64); ok && expireMs > 0 {
		result.ExpireAt = time.UnixMilli(expireMs).UTC()
	}
	if crossings, ok := raw[2].(int64); ok {
		result.Crossings = crossings
	}

	if result.Crossings > 0 {
		r.logger.Info("推荐触发续命",
			zap.String("postID", postID),
			zap.Int64("recommendations", result.Recommendations),
			zap.Int64("crossings", result.Crossings),
			zap.Time("newExpireAt", result.ExpireAt),
		)
	}
	return result, nil
}

// ReportPost 实现举报操作。
func (r *postLifecycleRepository) ReportPost(ctx context.Context, postID string) (*ReportResult, error) {
	postKey := constant.PostKeyPrefix + postID

	raw, err := reportScript.Run(ctx, r.redisClient,
		[]string{postKey, constant.TimelineKey},
		postID,
		time.Now().UnixMilli(),
		r.lifecycle.BlindAt(),
	).Slice()
	if err != nil {
		r.logger.Error("举报帖子 Lua 脚本执行失败", zap.Error(err), zap.String("postID", postID))
		return nil, fmt.Errorf("举报帖子 (ID: %s) 失败: %w", postID, err)
	}

	code, _ := raw[0].(int64)
	switch code {
	case -1:
		return nil, myErrors.ErrPostNotFound
	case -2:
		return nil, myErrors.ErrOperationRejected
	}

	result := &ReportResult{Reports: code}
	if flag, ok := raw[1].(int64); ok && flag == 1 {
		result.Blinded = true
		result.Snapshot = entities.PostFromHash(flatPairsToMap(raw[2:]))
		r.logger.Warn("帖子达到举报阈值，已拉黑",
			zap.String("postID", postID),
			zap.Int64("reports", result.Reports),
		)
	}
	return result, nil
}
