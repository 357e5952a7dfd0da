package service

import (
	"context"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/bamboo_service/models/dto"
	"github.com/Xushengqwer/bamboo_service/models/vo"
	"github.com/Xushengqwer/bamboo_service/repo/redis"
)

// DefaultRankingLimit 排行榜未指定条数时的默认值。
const DefaultRankingLimit = 10

// FeedService 定义了帖子列表查询的业务逻辑接口。
type FeedService interface {
	// GetTimeline 按创建时间降序取一页活跃帖子。
	// - 游标分页，响应中附带下一页游标；游标为 nil 表示已到末页。
	GetTimeline(ctx context.Context, req *dto.GetTimelineRequestDTO) (*vo.TimelinePageVO, error)

	// GetViewsRanking 按浏览量取排行榜前 N 名。
	GetViewsRanking(ctx context.Context, req *dto.GetRankingRequestDTO) ([]*vo.PostVO, error)

	// GetRecommendationsRanking 按推荐数取排行榜前 N 名。
	GetRecommendationsRanking(ctx context.Context, req *dto.GetRankingRequestDTO) ([]*vo.PostVO, error)
}

// feedService 是 FeedService 接口的具体实现。
type feedService struct {
	indexRepo redis.PostIndexRepository // 负责时间线与排行榜索引的 Redis 查询
	logger    *core.ZapLogger
}

// NewFeedService 是 feedService 的构造函数。
func NewFeedService(indexRepo redis.PostIndexRepository, logger *core.ZapLogger) FeedService {
	return &feedService{
		indexRepo: indexRepo,
		logger:    logger,
	}
}

// GetTimeline 实现时间线查询。
func (s *feedService) GetTimeline(ctx context.Context, req *dto.GetTimelineRequestDTO) (*vo.TimelinePageVO, error) {
	page, err := s.indexRepo.GetTimelinePage(ctx, req.LastCreatedAt, req.LastPostID, req.PageSize)
	if err != nil {
		s.logger.Error("查询时间线失败", zap.Error(err))
		return nil, err
	}

	return &vo.TimelinePageVO{
		Posts:         vo.MapPostsToVOs(page.Posts, time.Now()),
		Total:         page.Total,
		NextCreatedAt: page.NextCreatedAt,
		NextPostID:    page.NextPostID,
	}, nil
}

// GetViewsRanking 实现浏览量排行榜查询。
func (s *feedService) GetViewsRanking(ctx context.Context, req *dto.GetRankingRequestDTO) ([]*vo.PostVO, error) {
	return s.ranking(ctx, redis.RankByViews, req.Limit)
}

// GetRecommendationsRanking 实现推荐数排行榜查询。
func (s *feedService) GetRecommendationsRanking(ctx context.Context, req *dto.GetRankingRequestDTO) ([]*vo.PostVO, error) {
	return s.ranking(ctx, redis.RankByRecommendations, req.Limit)
}

func (s *feedService) ranking(ctx context.Context, kind redis.RankKind, limit int) ([]*vo.PostVO, error) {
	if limit <= 0 {
		limit = DefaultRankingLimit
	}
	posts, err := s.indexRepo.GetTopN(ctx, kind, limit)
	if err != nil {
		s.logger.Error("查询排行榜失败", zap.Error(err), zap.String("kind", string(kind)))
		return nil, err
	}
	return vo.MapPostsToVOs(posts, time.Now()), nil
}
