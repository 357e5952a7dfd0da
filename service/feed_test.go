package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/bamboo_service/models/dto"
	"github.com/Xushengqwer/bamboo_service/models/entities"
	"github.com/Xushengqwer/bamboo_service/models/enums"
	redisrepo "github.com/Xushengqwer/bamboo_service/repo/redis"
)

type fakeIndexRepo struct {
	page      *redisrepo.TimelinePage
	pageErr   error
	topN      []*entities.Post
	topNErr   error
	gotKind   redisrepo.RankKind
	gotLimit  int
	gotCursor *time.Time
}

func (f *fakeIndexRepo) GetTimelinePage(_ context.Context, lastCreatedAt *time.Time, _ *string, _ int) (*redisrepo.TimelinePage, error) {
	f.gotCursor = lastCreatedAt
	return f.page, f.pageErr
}

func (f *fakeIndexRepo) GetTopN(_ context.Context, kind redisrepo.RankKind, limit int) ([]*entities.Post, error) {
	f.gotKind = kind
	f.gotLimit = limit
	return f.topN, f.topNErr
}

func activePost(id string) *entities.Post {
	now := time.Now()
	return &entities.Post{
		ID:        id,
		Content:   "内容 " + id,
		CreatedAt: now.Add(-time.Minute),
		ExpireAt:  now.Add(9 * time.Minute),
		Tags:      []string{},
		Status:    enums.StatusActive,
	}
}

func TestGetTimeline_MapsPageToVO(t *testing.T) {
	nextAt := time.Now().Add(-time.Minute)
	nextID := "post_b"
	index := &fakeIndexRepo{
		page: &redisrepo.TimelinePage{
			Posts:         []*entities.Post{activePost("post_a"), activePost("post_b")},
			Total:         7,
			NextCreatedAt: &nextAt,
			NextPostID:    &nextID,
		},
	}
	svc := NewFeedService(index, newTestLogger(t))

	pageVO, err := svc.GetTimeline(context.Background(), &dto.GetTimelineRequestDTO{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, pageVO.Posts, 2)
	assert.Equal(t, "post_a", pageVO.Posts[0].ID)
	assert.Equal(t, int64(7), pageVO.Total)
	require.NotNil(t, pageVO.NextPostID)
	assert.Equal(t, "post_b", *pageVO.NextPostID)
}

func TestRankings_DefaultLimitAndKind(t *testing.T) {
	index := &fakeIndexRepo{topN: []*entities.Post{activePost("post_a")}}
	svc := NewFeedService(index, newTestLogger(t))

	vos, err := svc.GetViewsRanking(context.Background(), &dto.GetRankingRequestDTO{})
	require.NoError(t, err)
	assert.Len(t, vos, 1)
	assert.Equal(t, redisrepo.RankByViews, index.gotKind)
	assert.Equal(t, DefaultRankingLimit, index.gotLimit, "未指定 limit 时使用默认值")

	_, err = svc.GetRecommendationsRanking(context.Background(), &dto.GetRankingRequestDTO{Limit: 25})
	require.NoError(t, err)
	assert.Equal(t, redisrepo.RankByRecommendations, index.gotKind)
	assert.Equal(t, 25, index.gotLimit)
}
