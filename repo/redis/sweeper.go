package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/bamboo_service/constant"
	"github.com/Xushengqwer/bamboo_service/models/entities"
)

// ExpirationRepository 定义了过期清扫的存储接口。
// 清扫器只是索引的清洁工：逻辑过期由 expire_at_ms 字段判定，读路径
// 从不依赖清扫的及时性。
type ExpirationRepository interface {
	// DuePostIDs 返回过期索引中到期时间 <= now 的一批帖子 ID。
	DuePostIDs(ctx context.Context, now time.Time, limit int64) ([]string, error)

	// RetirePost 原子地下线一个到期帖子：置状态为 Expired、取回记录快照、
	// 从所有索引移除成员并删除记录本体。
	// - 帖子可能在到期和清扫之间被推荐续命，脚本内重新校验 expire_at_ms，
	//   未到期则只返回 nil（索引已被续命时更新，无需清理）。
	// - 记录已被物理 TTL 回收或已是终态时做幂等的索引清理，返回 nil。
	// - 返回非 nil 的快照当且仅当本次调用完成了 Active -> Expired 的翻转。
	RetirePost(ctx context.Context, postID string, now time.Time) (*entities.Post, error)
}

// expirationRepository 是 ExpirationRepository 接口的 Redis 实现。
type expirationRepository struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
}

// NewExpirationRepository 创建 ExpirationRepository 实例。
func NewExpirationRepository(redisClient *redis.Client, logger *core.ZapLogger) ExpirationRepository {
	return &expirationRepository{
		redisClient: redisClient,
		logger:      logger,
	}
}

// retireScript 下线到期帖子的原子单元。
// 返回码: 0=记录已消失(清索引) 1=本次完成下线(附快照) 2=已被续命(不动) 3=已是终态(清索引)
var retireScript = redis.NewScript(`
	-- KEYS[1] 帖子 Hash; KEYS[2] 时间线; KEYS[3] 过期索引; KEYS[4] 浏览榜; KEYS[5] 推荐榜
	-- ARGV[1] postID; ARGV[2] 当前毫秒
	local function scrub(full)
		redis.call("ZREM", KEYS[3], ARGV[1])
		if full then
			redis.call("ZREM", KEYS[2], ARGV[1])
			redis.call("ZREM", KEYS[4], ARGV[1])
			redis.call("ZREM", KEYS[5], ARGV[1])
		end
	end
	if redis.call("EXISTS", KEYS[1]) == 0 then
		scrub(true)
		return {0}
	end
	local status = tonumber(redis.call("HGET", KEYS[1], "status"))
	if status ~= 0 then
		-- Blinded/Expired 的索引清理，名人堂帖子只需离开过期索引
		scrub(status ~= 3)
		return {3}
	end
	local expireAt = tonumber(redis.call("HGET", KEYS[1], "expire_at_ms") or "0")
	if expireAt == 0 or tonumber(ARGV[2]) < expireAt then
		return {2}
	end
	redis.call("HSET", KEYS[1], "status", 2)
	local reply = {1}
	local data = redis.call("HGETALL", KEYS[1])
	for i = 1, #data do
		reply[#reply+1] = data[i]
	end
	scrub(true)
	redis.call("DEL", KEYS[1])
	return reply
`)

// DuePostIDs 实现到期成员的批量查询。
func (r *expirationRepository) DuePostIDs(ctx context.Context, now time.Time, limit int64) ([]string, error) {
	ids, err := r.redisClient.ZRangeByScore(ctx, constant.ExpireIndexKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.UnixMilli(), 10),
		Count: limit,
	}).Result()
	if err != nil {
		r.logger.Error("查询过期索引失败", zap.Error(err))
		return nil, fmt.Errorf("查询过期索引失败: %w", err)
	}
	return ids, nil
}

// RetirePost 实现到期帖子的原子下线。
func (r *expirationRepository) RetirePost(ctx context.Context, postID string, now time.Time) (*entities.Post, error) {
	postKey := constant.PostKeyPrefix + postID

	raw, err := retireScript.Run(ctx, r.redisClient,
		[]string{postKey, constant.TimelineKey, constant.ExpireIndexKey, constant.ViewsRankKey, constant.RecsRankKey},
		postID,
		now.UnixMilli(),
	).Slice()
	if err != nil {
		r.logger.Error("下线帖子 Lua 脚本执行失败", zap.Error(err), zap.String("postID", postID))
		return nil, fmt.Errorf("下线帖子 (ID: %s) 失败: %w", postID, err)
	}

	code, _ := raw[0].(int64)
	if code != 1 {
		return nil, nil
	}
	return entities.PostFromHash(flatPairsToMap(raw[1:])), nil
}
