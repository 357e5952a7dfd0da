package service

import (
	"context"
	"errors"
	"testing"
	"time"

	commonConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appConfig "github.com/Xushengqwer/bamboo_service/config"
	"github.com/Xushengqwer/bamboo_service/models/dto"
	"github.com/Xushengqwer/bamboo_service/models/entities"
	"github.com/Xushengqwer/bamboo_service/models/enums"
	"github.com/Xushengqwer/bamboo_service/mq/producer"
	"github.com/Xushengqwer/bamboo_service/myErrors"
	redisrepo "github.com/Xushengqwer/bamboo_service/repo/redis"
)

// --- 测试替身 ---

type fakePostStore struct {
	createdContent string
	createErr      error
	getPost        *entities.Post
	getPromoted    bool
	getErr         error
	setTagsPostID  string
	setTagsTags    []string
	setTagsErr     error
}

func (f *fakePostStore) CreatePost(_ context.Context, content string) (*entities.Post, error) {
	f.createdContent = content
	if f.createErr != nil {
		return nil, f.createErr
	}
	now := time.Now()
	return &entities.Post{
		ID:        "post_fake00000001",
		Content:   content,
		CreatedAt: now,
		ExpireAt:  now.Add(10 * time.Minute),
		Tags:      []string{},
		Status:    enums.StatusActive,
	}, nil
}

func (f *fakePostStore) GetPost(_ context.Context, _ string) (*entities.Post, bool, error) {
	return f.getPost, f.getPromoted, f.getErr
}

func (f *fakePostStore) GetPostSnapshots(_ context.Context, _ []string) ([]*entities.Post, error) {
	return nil, nil
}

func (f *fakePostStore) SetTags(_ context.Context, postID string, tags []string) error {
	f.setTagsPostID = postID
	f.setTagsTags = tags
	return f.setTagsErr
}

type fakeLifecycleRepo struct {
	recommendResult *redisrepo.RecommendResult
	recommendErr    error
	reportResult    *redisrepo.ReportResult
	reportErr       error
}

func (f *fakeLifecycleRepo) RecommendPost(_ context.Context, _ string) (*redisrepo.RecommendResult, error) {
	return f.recommendResult, f.recommendErr
}

func (f *fakeLifecycleRepo) ReportPost(_ context.Context, _ string) (*redisrepo.ReportResult, error) {
	return f.reportResult, f.reportErr
}

func newTestLogger(t *testing.T) *core.ZapLogger {
	t.Helper()
	logger, err := core.NewZapLogger(commonConfig.ZapConfig{Level: "error", Encoding: "console"})
	require.NoError(t, err)
	return logger
}

// 指向不可达 broker 的真实生产者：发送路径只会记录错误，不影响被测逻辑。
func newTestProducer(t *testing.T) *producer.KafkaProducer {
	t.Helper()
	return producer.NewKafkaProducer(appConfig.KafkaConfig{
		Brokers: []string{"127.0.0.1:1"},
		Topics: appConfig.Topics{
			PostCreated:  "test.post.created",
			PostTagged:   "test.post.tagged",
			PostArchived: "test.post.archived",
		},
	}, newTestLogger(t))
}

// --- PostService 测试 ---

func TestCreatePost_RejectsBlankContent(t *testing.T) {
	store := &fakePostStore{}
	svc := NewPostService(store, &fakeLifecycleRepo{}, newTestProducer(t), newTestLogger(t))

	_, err := svc.CreatePost(context.Background(), &dto.CreatePostRequest{Content: "   \t\n  "})
	assert.ErrorIs(t, err, myErrors.ErrInvalidContent)
	assert.Empty(t, store.createdContent, "内容非法时不应触达存储层")
}

func TestCreatePost_TrimsContentAndReturnsVO(t *testing.T) {
	store := &fakePostStore{}
	svc := NewPostService(store, &fakeLifecycleRepo{}, newTestProducer(t), newTestLogger(t))

	postVO, err := svc.CreatePost(context.Background(), &dto.CreatePostRequest{Content: "  竹子发芽了  "})
	require.NoError(t, err)
	assert.Equal(t, "竹子发芽了", store.createdContent)
	assert.Equal(t, "post_fake00000001", postVO.ID)
	assert.Equal(t, "active", postVO.Status)
	assert.InDelta(t, 600, postVO.SecondsRemaining, 2)
	assert.NotNil(t, postVO.Tags)
}

func TestCreatePost_PropagatesStoreError(t *testing.T) {
	storeErr := errors.New("redis unavailable")
	store := &fakePostStore{createErr: storeErr}
	svc := NewPostService(store, &fakeLifecycleRepo{}, newTestProducer(t), newTestLogger(t))

	_, err := svc.CreatePost(context.Background(), &dto.CreatePostRequest{Content: "内容"})
	assert.ErrorIs(t, err, storeErr)
}

func TestGetPostByID_MapsNotFound(t *testing.T) {
	store := &fakePostStore{getErr: myErrors.ErrPostNotFound}
	svc := NewPostService(store, &fakeLifecycleRepo{}, newTestProducer(t), newTestLogger(t))

	_, err := svc.GetPostByID(context.Background(), "post_gone")
	assert.ErrorIs(t, err, myErrors.ErrPostNotFound)
}

func TestGetPostByID_ReturnsVOOnPromotion(t *testing.T) {
	now := time.Now()
	store := &fakePostStore{
		getPost: &entities.Post{
			ID:        "post_hof",
			Content:   "名人堂帖子",
			CreatedAt: now.Add(-time.Hour),
			Views:     100000,
			Tags:      []string{"热门"},
			Status:    enums.StatusHallOfFame,
		},
		getPromoted: true,
	}
	svc := NewPostService(store, &fakeLifecycleRepo{}, newTestProducer(t), newTestLogger(t))

	postVO, err := svc.GetPostByID(context.Background(), "post_hof")
	require.NoError(t, err)
	assert.Equal(t, "hall_of_fame", postVO.Status)
	assert.Equal(t, int64(0), postVO.SecondsRemaining, "名人堂帖子没有剩余秒数")
}

func TestRecommendPost_MapsExtension(t *testing.T) {
	lifecycle := &fakeLifecycleRepo{
		recommendResult: &redisrepo.RecommendResult{
			Recommendations: 100,
			ExpireAt:        time.Now().Add(8 * time.Minute),
			Crossings:       1,
		},
	}
	svc := NewPostService(&fakePostStore{}, lifecycle, newTestProducer(t), newTestLogger(t))

	recVO, err := svc.RecommendPost(context.Background(), "post_x")
	require.NoError(t, err)
	assert.Equal(t, int64(100), recVO.Recommendations)
	assert.True(t, recVO.Extended)
	assert.InDelta(t, 480, recVO.SecondsRemaining, 2)
}

func TestRecommendPost_MapsRejection(t *testing.T) {
	lifecycle := &fakeLifecycleRepo{recommendErr: myErrors.ErrOperationRejected}
	svc := NewPostService(&fakePostStore{}, lifecycle, newTestProducer(t), newTestLogger(t))

	_, err := svc.RecommendPost(context.Background(), "post_x")
	assert.ErrorIs(t, err, myErrors.ErrOperationRejected)
}

func TestReportPost_MapsBlind(t *testing.T) {
	lifecycle := &fakeLifecycleRepo{
		reportResult: &redisrepo.ReportResult{
			Reports: 50,
			Blinded: true,
			Snapshot: &entities.Post{
				ID:      "post_bad",
				Content: "被拉黑的帖子",
				Reports: 50,
				Status:  enums.StatusBlinded,
			},
		},
	}
	svc := NewPostService(&fakePostStore{}, lifecycle, newTestProducer(t), newTestLogger(t))

	repVO, err := svc.ReportPost(context.Background(), "post_bad")
	require.NoError(t, err)
	assert.Equal(t, int64(50), repVO.Reports)
	assert.True(t, repVO.Blinded)
}

func TestSetPostTags_PassesThrough(t *testing.T) {
	store := &fakePostStore{}
	svc := NewPostService(store, &fakeLifecycleRepo{}, newTestProducer(t), newTestLogger(t))

	require.NoError(t, svc.SetPostTags(context.Background(), "post_x", []string{"生活"}))
	assert.Equal(t, "post_x", store.setTagsPostID)
	assert.Equal(t, []string{"生活"}, store.setTagsTags)
}

// Kafka 未配置（生产者为 nil）时，主流程必须照常成功，事件只是被跳过。
func TestPostService_WorksWithoutKafka(t *testing.T) {
	now := time.Now()
	store := &fakePostStore{
		getPost: &entities.Post{
			ID:        "post_hof",
			Content:   "名人堂帖子",
			CreatedAt: now.Add(-time.Hour),
			Views:     100000,
			Tags:      []string{},
			Status:    enums.StatusHallOfFame,
		},
		getPromoted: true,
	}
	lifecycle := &fakeLifecycleRepo{
		reportResult: &redisrepo.ReportResult{
			Reports: 3,
			Blinded: true,
			Snapshot: &entities.Post{
				ID:      "post_bad",
				Content: "被拉黑的帖子",
				Reports: 3,
				Status:  enums.StatusBlinded,
			},
		},
	}
	svc := NewPostService(store, lifecycle, nil, newTestLogger(t))
	ctx := context.Background()

	postVO, err := svc.CreatePost(ctx, &dto.CreatePostRequest{Content: "没有 Kafka 也能发帖"})
	require.NoError(t, err)
	assert.Equal(t, "没有 Kafka 也能发帖", postVO.Content)

	hofVO, err := svc.GetPostByID(ctx, "post_hof")
	require.NoError(t, err)
	assert.Equal(t, "hall_of_fame", hofVO.Status)

	repVO, err := svc.ReportPost(ctx, "post_bad")
	require.NoError(t, err)
	assert.True(t, repVO.Blinded)
}
