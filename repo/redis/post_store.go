package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/bamboo_service/config"
	"github.com/Xushengqwer/bamboo_service/constant"
	"github.com/Xushengqwer/bamboo_service/models/entities"
	"github.com/Xushengqwer/bamboo_service/models/enums"
	"github.com/Xushengqwer/bamboo_service/myErrors"
)

// PostStoreRepository 定义了帖子记录存储的 Redis 操作接口。
// - 目标: 帖子 Hash 是计数器与状态的唯一权威来源，所有索引都在同一原子单元内随记录更新。
// - 带阈值判定的读改写一律通过服务端 Lua 脚本执行，客户端绝不做 get+put 两段式操作。
type PostStoreRepository interface {
	// CreatePost 创建帖子并在同一事务内写入时间线/过期/排行四个索引。
	// - 内容校验（1~200 字符）由服务层完成，这里只负责持久化。
	CreatePost(ctx context.Context, content string) (*entities.Post, error)

	// GetPost 读取帖子并原子地将浏览量 +1、同步浏览量排行。
	// - 若本次自增使浏览量首次跨过名人堂阈值，同一脚本内将状态置为 HallOfFame、
	//   清除 expire_at 并将帖子移出过期索引，返回 promoted = true（恰好触发一次）。
	// - 帖子不存在或已逻辑过期时返回 myErrors.ErrPostNotFound。
	GetPost(ctx context.Context, postID string) (post *entities.Post, promoted bool, err error)

	// GetPostSnapshots 批量读取帖子快照，不触发浏览计数。
	// - 供时间线/排行查询水合数据；缺失的 ID 被静默跳过（与清扫竞态属正常情况）。
	GetPostSnapshots(ctx context.Context, postIDs []string) ([]*entities.Post, error)

	// SetTags 写入打标服务回调的标签，尽力而为：帖子已消失时为 no-op。
	SetTags(ctx context.Context, postID string, tags []string) error
}

// postStoreRepository 是 PostStoreRepository 接口的 Redis 实现。
type postStoreRepository struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
	lifecycle   appConfig.LifecycleConfig
}

// NewPostStoreRepository 创建 PostStoreRepository 实例。
func NewPostStoreRepository(redisClient *redis.Client, logger *core.ZapLogger, lifecycle appConfig.LifecycleConfig) PostStoreRepository {
	return &postStoreRepository{
		redisClient: redisClient,
		logger:      logger,
		lifecycle:   lifecycle,
	}
}

// getPostScript 浏览路径的原子单元。
// 阈值判定永远使用自增后的值，并且状态翻转发生在同一脚本内，
// 因此名人堂晋升在并发浏览洪峰下也恰好触发一次。
// 状态取值: 0=Active 1=Blinded 2=Expired 3=HallOfFame
var getPostScript = redis.NewScript(`
	-- KEYS[1] 帖子 Hash; KEYS[2] 浏览量排行; KEYS[3] 过期索引
	-- ARGV[1] postID; ARGV[2] 当前毫秒时间戳; ARGV[3] 名人堂阈值
	if redis.call("EXISTS", KEYS[1]) == 0 then
		return {0}
	end
	local status = tonumber(redis.call("HGET", KEYS[1], "status"))
	local expireAt = tonumber(redis.call("HGET", KEYS[1], "expire_at_ms") or "0")
	if status ~= 3 and expireAt > 0 and tonumber(ARGV[2]) >= expireAt then
		-- 逻辑已过期但尚未被清扫，对读取方等同于不存在
		return {0}
	end
	local views = redis.call("HINCRBY", KEYS[1], "views", 1)
	redis.call("ZADD", KEYS[2], views, ARGV[1])
	local promoted = 0
	if status == 0 and views >= tonumber(ARGV[3]) then
		redis.call("HSET", KEYS[1], "status", 3)
		redis.call("HDEL", KEYS[1], "expire_at_ms")
		redis.call("ZREM", KEYS[3], ARGV[1])
		redis.call("PERSIST", KEYS[1])
		promoted = 1
	end
	local data = redis.call("HGETALL", KEYS[1])
	local reply = {1, promoted}
	for i = 1, #data do
		reply[#reply+1] = data[i]
	end
	return reply
`)

// setTagsScript 标签回写，帖子不存在时返回 0 而不报错。
var setTagsScript = redis.NewScript(`
	if redis.call("EXISTS", KEYS[1]) == 0 then
		return 0
	end
	redis.call("HSET", KEYS[1], "tags", ARGV[1])
	return 1
`)

// CreatePost 实现帖子的创建。
// 记录与四个索引在一个 MULTI/EXEC 事务内写入，避免记录和投影出现可观测的分歧。
func (r *postStoreRepository) CreatePost(ctx context.Context, content string) (*entities.Post, error) {
	now := time.Now()
	post := &entities.Post{
		ID:        "post_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
		Content:   content,
		CreatedAt: now,
		ExpireAt:  now.Add(r.lifecycle.DefaultTTL()),
		Tags:      []string{},
		Status:    enums.StatusActive,
	}

	postKey := constant.PostKeyPrefix + post.ID
	createdMs := post.CreatedAt.UnixMilli()
	expireMs := post.ExpireAt.UnixMilli()

	_, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, postKey, post.ToHash())
		// 物理 TTL 在逻辑过期之后多保留一个宽限窗口，详见 constant.ArchiveGrace
		pipe.PExpireAt(ctx, postKey, post.ExpireAt.Add(r.lifecycle.ArchiveGrace()))
		pipe.ZAdd(ctx, constant.TimelineKey, redis.Z{Score: float64(createdMs), Member: post.ID})
		pipe.ZAdd(ctx, constant.ExpireIndexKey, redis.Z{Score: float64(expireMs), Member: post.ID})
		pipe.ZAdd(ctx, constant.ViewsRankKey, redis.Z{Score: 0, Member: post.ID})
		pipe.ZAdd(ctx, constant.RecsRankKey, redis.Z{Score: 0, Member: post.ID})
		return nil
	})
	if err != nil {
		r.logger.Error("创建帖子写入 Redis 失败", zap.Error(err), zap.String("postID", post.ID))
		return nil, fmt.Errorf("创建帖子 (ID: %s) 失败: %w", post.ID, err)
	}

	r.logger.Info("帖子创建成功",
		zap.String("postID", post.ID),
		zap.Time("expireAt", post.ExpireAt),
	)
	return post, nil
}

// GetPost 实现浏览路径：计数、排行更新与名人堂晋升在一个 Lua 脚本内完成。
func (r *postStoreRepository) GetPost(ctx context.Context, postID string) (*entities.Post, bool, error) {
	postKey := constant.PostKeyPrefix + postID

	raw, err := getPostScript.Run(ctx, r.redisClient,
		[]string{postKey, constant.ViewsRankKey, constant.ExpireIndexKey},
		postID,
		time.Now().UnixMilli(),
		r.lifecycle.HallOfFameAt(),
	).Slice()
	if err != nil {
		r.logger.Error("浏览帖子 Lua 脚本执行失败", zap.Error(err), zap.String("postID", postID))
		return nil, false, fmt.Errorf("浏览帖子 (ID: %s) 失败: %w", postID, err)
	}

	code, _ := raw[0].(int64)
	if code == 0 {
		return nil, false, myErrors.ErrPostNotFound
	}

	promoted := false
	if flag, ok := raw[1].(int64); ok && flag == 1 {
		promoted = true
	}

	post := entities.PostFromHash(flatPairsToMap(raw[2:]))
	if promoted {
		r.logger.Info("帖子晋升名人堂，过期时间已清除",
			zap.String("postID", postID),
			zap.Int64("views", post.Views),
		)
	}
	return post, promoted, nil
}

// GetPostSnapshots 通过 pipeline 批量 HGETALL，缺失的帖子跳过。
func (r *postStoreRepository) GetPostSnapshots(ctx context.Context, postIDs []string) ([]*entities.Post, error) {
	if len(postIDs) == 0 {
		return []*entities.Post{}, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(postIDs))
	_, err := r.redisClient.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range postIDs {
			cmds[i] = pipe.HGetAll(ctx, constant.PostKeyPrefix+id)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("批量获取帖子快照失败", zap.Error(err), zap.Int("idCount", len(postIDs)))
		return nil, fmt.Errorf("批量获取帖子快照 (%d 个) 失败: %w", len(postIDs), err)
	}

	posts := make([]*entities.Post, 0, len(postIDs))
	missCount := 0
	for i, cmd := range cmds {
		fields, cmdErr := cmd.Result()
		if cmdErr != nil || len(fields) == 0 {
			// 索引里的 ID 可能刚被清扫掉，属正常竞态
			missCount++
			continue
		}
		post := entities.PostFromHash(fields)
		if post.ID == "" {
			post.ID = postIDs[i]
		}
		posts = append(posts, post)
	}

	if missCount > 0 {
		r.logger.Debug("部分帖子快照未命中 (可能已被清扫)",
			zap.Int("requested", len(postIDs)),
			zap.Int("missed", missCount),
		)
	}
	return posts, nil
}

// SetTags 实现标签回写。
func (r *postStoreRepository) SetTags(ctx context.Context, postID string, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("序列化标签失败 (PostID: %s): %w", postID, err)
	}

	applied, err := setTagsScript.Run(ctx, r.redisClient,
		[]string{constant.PostKeyPrefix + postID},
		string(tagsJSON),
	).Int64()
	if err != nil {
		r.logger.Error("写入帖子标签失败", zap.Error(err), zap.String("postID", postID))
		return fmt.Errorf("写入帖子 (ID: %s) 标签失败: %w", postID, err)
	}
	if applied == 0 {
		r.logger.Debug("标签回写时帖子已不存在，忽略", zap.String("postID", postID))
	}
	return nil
}

// flatPairsToMap 将 Lua 返回的 field/value 扁平列表还原为映射。
func flatPairsToMap(flat []interface{}) map[string]string {
	fields := make(map[string]string, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		k, kOK := flat[i].(string)
		v, vOK := flat[i+1].(string)
		if kOK && vOK {
			fields[k] = v
		}
	}
	return fields
}
