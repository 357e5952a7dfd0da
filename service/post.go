package service

import (
	"context"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/bamboo_service/models/dto"
	"github.com/Xushengqwer/bamboo_service/models/entities"
	"github.com/Xushengqwer/bamboo_service/models/events"
	"github.com/Xushengqwer/bamboo_service/models/vo"
	"github.com/Xushengqwer/bamboo_service/mq/producer"
	"github.com/Xushengqwer/bamboo_service/myErrors"
	"github.com/Xushengqwer/bamboo_service/repo/redis"
)

// asyncEventTimeout 请求路径派生的异步通知的最长耗时。
const asyncEventTimeout = 5 * time.Second

// PostService 定义了处理帖子核心业务逻辑的接口。
type PostService interface {
	// CreatePost 处理用户发布新帖子的业务流程。
	// - 对内容做首尾去空白与长度校验（空内容返回 myErrors.ErrInvalidContent）。
	// - 写入存储成功后，异步触发 Kafka 事件通知打标服务；通知失败只记日志，
	//   不影响发帖结果。
	// - 返回 VO，包含成功创建的帖子的基本信息。
	CreatePost(ctx context.Context, req *dto.CreatePostRequest) (*vo.PostVO, error)

	// GetPostByID 获取单个帖子的详细信息。
	// - 读取本身就是一次浏览，浏览计数在存储层原子自增。
	// - 本次读取恰好把帖子送进名人堂时，异步向归档网关发送快照。
	GetPostByID(ctx context.Context, postID string) (*vo.PostVO, error)

	// RecommendPost 处理用户推荐帖子的操作。
	// - 推荐数与可能的续命在存储层原子完成，返回更新后的推荐数和剩余秒数。
	RecommendPost(ctx context.Context, postID string) (*vo.RecommendVO, error)

	// ReportPost 处理用户举报帖子的操作。
	// - 举报数与可能的拉黑在存储层原子完成。
	// - 本次举报触发拉黑时，异步向归档网关发送快照。
	ReportPost(ctx context.Context, postID string) (*vo.ReportVO, error)

	// SetPostTags 写回打标服务生成的分类标签。
	// - 标签只写一次，帖子已离开活跃区时静默忽略（打标是尽力而为的增强）。
	SetPostTags(ctx context.Context, postID string, tags []string) error
}

// postService 是 PostService 接口的具体实现。
type postService struct {
	postStore     redis.PostStoreRepository     // 负责帖子记录的 Redis 操作
	lifecycleRepo redis.PostLifecycleRepository // 负责推荐/举报的原子状态机操作
	kafkaSvc      *producer.KafkaProducer       // Kafka 生产者，用于发送异步消息
	logger        *core.ZapLogger               // 日志记录器，用于记录关键信息和错误
}

// NewPostService 是 postService 的构造函数，通过依赖注入初始化服务实例。
// - 这种方式便于单元测试和组件替换。
func NewPostService(postStore redis.PostStoreRepository, lifecycleRepo redis.PostLifecycleRepository, kafkaSvc *producer.KafkaProducer, logger *core.ZapLogger) PostService {
	return &postService{
		postStore:     postStore,
		lifecycleRepo: lifecycleRepo,
		kafkaSvc:      kafkaSvc,
		logger:        logger,
	}
}

// CreatePost 实现发帖流程。
func (s *postService) CreatePost(ctx context.Context, req *dto.CreatePostRequest) (*vo.PostVO, error) {
	// 1. 归一化并校验内容（binding 只约束了最大长度，纯空白在这里拦截）
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, myErrors.ErrInvalidContent
	}

	// 2. 写入存储，帖子带默认生存期落地
	post, err := s.postStore.CreatePost(ctx, content)
	if err != nil {
		s.logger.Error("创建帖子失败", zap.Error(err))
		return nil, err
	}

	// 3. 异步通知打标服务，失败不影响发帖结果；未接入 Kafka 时直接跳过
	if s.kafkaSvc != nil {
		go func() {
			asyncCtx, cancel := context.WithTimeout(context.Background(), asyncEventTimeout)
			defer cancel()
			if sendErr := s.kafkaSvc.SendPostCreatedEvent(asyncCtx, post.ID, post.Content); sendErr != nil {
				s.logger.Error("发送帖子创建事件失败", zap.Error(sendErr), zap.String("postID", post.ID))
			}
		}()
	}

	return vo.MapPostToVO(post, time.Now()), nil
}

// GetPostByID 实现帖子详情查询。
func (s *postService) GetPostByID(ctx context.Context, postID string) (*vo.PostVO, error) {
	post, promoted, err := s.postStore.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if promoted {
		s.logger.Info("帖子浏览量达标，晋升名人堂",
			zap.String("postID", post.ID),
			zap.Int64("views", post.Views))
		s.archiveAsync(events.ArchiveReasonHallOfFame, post)
	}

	return vo.MapPostToVO(post, time.Now()), nil
}

// RecommendPost 实现推荐流程。
func (s *postService) RecommendPost(ctx context.Context, postID string) (*vo.RecommendVO, error) {
	result, err := s.lifecycleRepo.RecommendPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	remaining := int64(time.Until(result.ExpireAt).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	return &vo.RecommendVO{
		Recommendations:  result.Recommendations,
		SecondsRemaining: remaining,
		Extended:         result.Crossings > 0,
	}, nil
}

// ReportPost 实现举报流程。
func (s *postService) ReportPost(ctx context.Context, postID string) (*vo.ReportVO, error) {
	result, err := s.lifecycleRepo.ReportPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if result.Blinded && result.Snapshot != nil {
		s.archiveAsync(events.ArchiveReasonBlinded, result.Snapshot)
	}

	return &vo.ReportVO{
		Reports: result.Reports,
		Blinded: result.Blinded,
	}, nil
}

// SetPostTags 实现标签写回。
func (s *postService) SetPostTags(ctx context.Context, postID string, tags []string) error {
	return s.postStore.SetTags(ctx, postID, tags)
}

// archiveAsync 在请求路径之外把帖子快照交给归档网关。
func (s *postService) archiveAsync(reason string, post *entities.Post) {
	if s.kafkaSvc == nil {
		s.logger.Warn("未接入 Kafka，帖子归档快照被放弃",
			zap.String("postID", post.ID),
			zap.String("reason", reason))
		return
	}
	go func() {
		asyncCtx, cancel := context.WithTimeout(context.Background(), asyncEventTimeout)
		defer cancel()
		if err := s.kafkaSvc.SendPostArchivedEvent(asyncCtx, reason, events.SnapshotFromPost(post)); err != nil {
			s.logger.Error("发送帖子归档事件失败",
				zap.Error(err),
				zap.String("postID", post.ID),
				zap.String("reason", reason))
		}
	}()
}
