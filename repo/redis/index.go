package redis

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/bamboo_service/constant"
	"github.com/Xushengqwer/bamboo_service/models/entities"
	"github.com/Xushengqwer/bamboo_service/models/enums"
)

// cursorSlack 游标翻页时为同分成员预留的额外抓取量。
// 同一毫秒内创建的帖子共享 ZSet 分数，翻页需要在分数相同的成员内
// 按成员名逆序跳过游标之前的部分；多抓一些避免同分簇恰好截断。
const cursorSlack = 32

// TimelinePage 时间线的一页结果。
type TimelinePage struct {
	Posts         []*entities.Post // 本页记录，按创建时间降序
	Total         int64            // 时间线索引中的总数
	NextCreatedAt *time.Time       // 下一页游标，nil 表示没有下一页
	NextPostID    *string
}

// RankKind 排行榜的维度。
type RankKind string

const (
	RankByViews           RankKind = "views"
	RankByRecommendations RankKind = "recommendations"
)

// PostIndexRepository 定义了时间线与排行榜的只读查询接口。
// 索引只存成员和分数，记录本体在每页命中后批量水合；索引与记录的
// 清理异步进行，读路径对二者之间的短暂不一致做防御性过滤。
type PostIndexRepository interface {
	// GetTimelinePage 按创建时间降序取一页帖子。
	// - 游标是 (lastCreatedAt, lastPostID) 二元组，两者要么都传要么都不传；
	//   同一毫秒内创建的帖子按 ID 逆序稳定排列，翻页不丢不重。
	// - 已拉黑或已逻辑过期但索引尚未清理的成员被静默跳过。
	GetTimelinePage(ctx context.Context, lastCreatedAt *time.Time, lastPostID *string, pageSize int) (*TimelinePage, error)

	// GetTopN 按指定维度取前 N 名。
	// - 同分时按创建时间升序（更早的在前）、再按 ID 升序稳定排序。
	GetTopN(ctx context.Context, kind RankKind, limit int) ([]*entities.Post, error)
}

// postIndexRepository 是 PostIndexRepository 接口的 Redis 实现。
type postIndexRepository struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
	store       PostStoreRepository
}

// NewPostIndexRepository 创建 PostIndexRepository 实例。
func NewPostIndexRepository(redisClient *redis.Client, logger *core.ZapLogger, store PostStoreRepository) PostIndexRepository {
	return &postIndexRepository{
		redisClient: redisClient,
		logger:      logger,
		store:       store,
	}
}

// GetTimelinePage 实现游标翻页的时间线查询。
func (r *postIndexRepository) GetTimelinePage(ctx context.Context, lastCreatedAt *time.Time, lastPostID *string, pageSize int) (*TimelinePage, error) {
	now := time.Now()

	maxScore := "+inf"
	if lastCreatedAt != nil {
		// 包含游标所在的分数档，再在同分成员内按名字跳过游标自身及其之前的成员
		maxScore = strconv.FormatInt(lastCreatedAt.UnixMilli(), 10)
	}

	total, err := r.redisClient.ZCard(ctx, constant.TimelineKey).Result()
	if err != nil {
		r.logger.Error("统计时间线总数失败", zap.Error(err))
		return nil, fmt.Errorf("统计时间线总数失败: %w", err)
	}

	// 多取一条判断有没有下一页，再加同分簇的余量。单个窗口里的残留成员
	// 可能多于余量，凑不满一页时带偏移量继续取下一个窗口，直到页满或
	// 索引被取尽。
	fetch := int64(pageSize + 1 + cursorSlack)
	page := &TimelinePage{Posts: make([]*entities.Post, 0, pageSize), Total: total}
	var offset int64
	for len(page.Posts) < pageSize+1 {
		members, rangeErr := r.redisClient.ZRevRangeByScoreWithScores(ctx, constant.TimelineKey, &redis.ZRangeBy{
			Min:    "-inf",
			Max:    maxScore,
			Offset: offset,
			Count:  fetch,
		}).Result()
		if rangeErr != nil {
			r.logger.Error("查询时间线索引失败", zap.Error(rangeErr))
			return nil, fmt.Errorf("查询时间线索引失败: %w", rangeErr)
		}
		if len(members) == 0 {
			break
		}
		offset += int64(len(members))

		// ZREVRANGEBYSCORE 在同分内按成员名逆序；游标分数档里名字 >= lastPostID
		// 的成员（含游标自身）都在上一页，跳过
		ids := make([]string, 0, len(members))
		for _, z := range members {
			if lastCreatedAt != nil && lastPostID != nil &&
				int64(z.Score) == lastCreatedAt.UnixMilli() && z.Member.(string) >= *lastPostID {
				continue
			}
			ids = append(ids, z.Member.(string))
		}
		if len(ids) == 0 {
			continue
		}

		posts, hydrateErr := r.store.GetPostSnapshots(ctx, ids)
		if hydrateErr != nil {
			return nil, hydrateErr
		}
		for _, post := range posts {
			// 索引清理是异步的，这里过滤掉已离开时间线的残留成员；
			// 名人堂帖子永驻时间线
			if post.Status != enums.StatusActive && post.Status != enums.StatusHallOfFame {
				continue
			}
			if post.Status == enums.StatusActive && post.HasExpiry() && !now.Before(post.ExpireAt) {
				continue
			}
			page.Posts = append(page.Posts, post)
			if len(page.Posts) == pageSize+1 {
				break
			}
		}
	}

	if len(page.Posts) > pageSize {
		page.Posts = page.Posts[:pageSize]
		last := page.Posts[len(page.Posts)-1]
		nextAt := last.CreatedAt
		nextID := last.ID
		page.NextCreatedAt = &nextAt
		page.NextPostID = &nextID
	}
	return page, nil
}

// GetTopN 实现排行榜查询。
func (r *postIndexRepository) GetTopN(ctx context.Context, kind RankKind, limit int) ([]*entities.Post, error) {
	rankKey := constant.ViewsRankKey
	if kind == RankByRecommendations {
		rankKey = constant.RecsRankKey
	}

	members, err := r.redisClient.ZRevRangeWithScores(ctx, rankKey, 0, int64(limit-1)).Result()
	if err != nil {
		r.logger.Error("查询排行榜索引失败", zap.Error(err), zap.String("kind", string(kind)))
		return nil, fmt.Errorf("查询排行榜 (%s) 失败: %w", kind, err)
	}
	if len(members) == 0 {
		return []*entities.Post{}, nil
	}

	ids := make([]string, 0, len(members))
	for _, z := range members {
		ids = append(ids, z.Member.(string))
	}
	posts, err := r.store.GetPostSnapshots(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 排行榜允许展示名人堂帖子，只过滤记录已不存在的残留成员，
	// 然后在客户端做稳定的同分排序
	sort.SliceStable(posts, func(i, j int) bool {
		ci, cj := rankCounter(posts[i], kind), rankCounter(posts[j], kind)
		if ci != cj {
			return ci > cj
		}
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.Before(posts[j].CreatedAt)
		}
		return posts[i].ID < posts[j].ID
	})
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func rankCounter(post *entities.Post, kind RankKind) int64 {
	if kind == RankByRecommendations {
		return post.Recommendations
	}
	return post.Views
}
