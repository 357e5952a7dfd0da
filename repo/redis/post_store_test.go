package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/bamboo_service/constant"
	"github.com/Xushengqwer/bamboo_service/models/enums"
	"github.com/Xushengqwer/bamboo_service/myErrors"
)

func TestCreatePost_WritesRecordAndAllIndexes(t *testing.T) {
	mr, client := newTestClient(t)
	repo := NewPostStoreRepository(client, newTestLogger(t), testLifecycle())
	ctx := context.Background()

	post, err := repo.CreatePost(ctx, "竹林里的第一条帖子")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(post.ID, "post_"))
	assert.Equal(t, enums.StatusActive, post.Status)
	assert.Equal(t, 10*time.Minute, post.ExpireAt.Sub(post.CreatedAt))

	// 记录本体存在并带物理 TTL
	require.True(t, mr.Exists(constant.PostKeyPrefix+post.ID))
	assert.Greater(t, mr.TTL(constant.PostKeyPrefix+post.ID), 10*time.Minute)

	// 四个索引都包含该帖子
	for _, key := range []string{constant.TimelineKey, constant.ExpireIndexKey, constant.ViewsRankKey, constant.RecsRankKey} {
		score, scoreErr := client.ZScore(ctx, key, post.ID).Result()
		require.NoError(t, scoreErr, "索引 %s 应包含新帖子", key)
		if key == constant.TimelineKey {
			assert.Equal(t, float64(post.CreatedAt.UnixMilli()), score)
		}
		if key == constant.ExpireIndexKey {
			assert.Equal(t, float64(post.ExpireAt.UnixMilli()), score)
		}
	}
}

func TestGetPost_IncrementsViewsAndSyncsRank(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewPostStoreRepository(client, newTestLogger(t), testLifecycle())
	ctx := context.Background()

	created, err := repo.CreatePost(ctx, "浏览计数测试")
	require.NoError(t, err)

	got, promoted, err := repo.GetPost(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, promoted)
	assert.Equal(t, int64(1), got.Views)
	assert.Equal(t, created.Content, got.Content)
	assert.Equal(t, enums.StatusActive, got.Status)

	got, _, err = repo.GetPost(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Views)

	score, err := client.ZScore(ctx, constant.ViewsRankKey, created.ID).Result()
	require.NoError(t, err)
	assert.Equal(t, float64(2), score)
}

func TestGetPost_NotFound(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewPostStoreRepository(client, newTestLogger(t), testLifecycle())

	_, _, err := repo.GetPost(context.Background(), "post_missing")
	assert.ErrorIs(t, err, myErrors.ErrPostNotFound)
}

func TestGetPost_LogicallyExpiredBehavesAsMissing(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewPostStoreRepository(client, newTestLogger(t), testLifecycle())
	ctx := context.Background()

	created, err := repo.CreatePost(ctx, "已过期的帖子")
	require.NoError(t, err)

	// 把 expire_at 拨回过去：物理 Key 仍在（宽限窗口），但逻辑上已过期
	past := time.Now().Add(-time.Minute).UnixMilli()
	require.NoError(t, client.HSet(ctx, constant.PostKeyPrefix+created.ID, "expire_at_ms", past).Err())

	_, _, err = repo.GetPost(ctx, created.ID)
	assert.ErrorIs(t, err, myErrors.ErrPostNotFound)
}

func TestGetPost_HallOfFamePromotionExactlyOnce(t *testing.T) {
	_, client := newTestClient(t)
	lifecycle := testLifecycle() // 名人堂阈值 4
	repo := NewPostStoreRepository(client, newTestLogger(t), lifecycle)
	ctx := context.Background()

	created, err := repo.CreatePost(ctx, "即将晋升名人堂")
	require.NoError(t, err)

	promotions := 0
	var last = created
	for i := 0; i < 6; i++ {
		got, promoted, getErr := repo.GetPost(ctx, created.ID)
		require.NoError(t, getErr)
		if promoted {
			promotions++
			assert.Equal(t, lifecycle.HallOfFameThreshold, got.Views, "晋升应发生在恰好跨过阈值的那次浏览")
		}
		last = got
	}

	assert.Equal(t, 1, promotions, "晋升只能触发一次")
	assert.Equal(t, enums.StatusHallOfFame, last.Status)
	assert.False(t, last.HasExpiry(), "名人堂帖子不再有过期时间")

	// 已离开过期索引，且物理 TTL 被清除
	err = client.ZScore(ctx, constant.ExpireIndexKey, created.ID).Err()
	assert.Error(t, err, "名人堂帖子应离开过期索引")
	ttl, err := client.TTL(ctx, constant.PostKeyPrefix+created.ID).Result()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl, "名人堂帖子的 Key 应为永久")
}

func TestSetTags_WritesOnceAndTolerateMissing(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewPostStoreRepository(client, newTestLogger(t), testLifecycle())
	ctx := context.Background()

	created, err := repo.CreatePost(ctx, "等待打标的帖子")
	require.NoError(t, err)

	require.NoError(t, repo.SetTags(ctx, created.ID, []string{"生活", "吐槽"}))

	got, _, err := repo.GetPost(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"生活", "吐槽"}, got.Tags)

	// 帖子不存在时写标签是 no-op，不报错
	assert.NoError(t, repo.SetTags(ctx, "post_gone", []string{"x"}))
}

func TestGetPostSnapshots_SkipsMissingWithoutCountingViews(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewPostStoreRepository(client, newTestLogger(t), testLifecycle())
	ctx := context.Background()

	first, err := repo.CreatePost(ctx, "快照一")
	require.NoError(t, err)
	second, err := repo.CreatePost(ctx, "快照二")
	require.NoError(t, err)

	posts, err := repo.GetPostSnapshots(ctx, []string{first.ID, "post_gone", second.ID})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, first.ID, posts[0].ID)
	assert.Equal(t, second.ID, posts[1].ID)

	// 快照读取不增加浏览量
	for _, p := range posts {
		assert.Equal(t, int64(0), p.Views)
	}
}
