package redis

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/bamboo_service/constant"
	"github.com/Xushengqwer/bamboo_service/models/enums"
	"github.com/Xushengqwer/bamboo_service/myErrors"
)

func TestRecommendPost_CountsAndSyncsRank(t *testing.T) {
	_, client := newTestClient(t)
	logger := newTestLogger(t)
	store := NewPostStoreRepository(client, logger, testLifecycle())
	repo := NewPostLifecycleRepository(client, logger, testLifecycle())
	ctx := context.Background()

	created, err := store.CreatePost(ctx, "推荐计数测试")
	require.NoError(t, err)

	result, err := repo.RecommendPost(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Recommendations)
	assert.Equal(t, int64(0), result.Crossings)
	assert.Equal(t, created.ExpireAt.UnixMilli(), result.ExpireAt.UnixMilli(), "未跨阈值时过期时间不变")

	score, err := client.ZScore(ctx, constant.RecsRankKey, created.ID).Result()
	require.NoError(t, err)
	assert.Equal(t, float64(1), score)
}

func TestRecommendPost_ExtendsOnEveryThresholdMultiple(t *testing.T) {
	_, client := newTestClient(t)
	logger := newTestLogger(t)
	lifecycle := testLifecycle() // 阈值 5，每次续命 300s
	store := NewPostStoreRepository(client, logger, lifecycle)
	repo := NewPostLifecycleRepository(client, logger, lifecycle)
	ctx := context.Background()

	created, err := store.CreatePost(ctx, "推荐续命测试")
	require.NoError(t, err)
	baseExpire := created.ExpireAt

	extensions := 0
	var lastExpire time.Time
	for i := 1; i <= 12; i++ {
		result, recErr := repo.RecommendPost(ctx, created.ID)
		require.NoError(t, recErr)
		assert.Equal(t, int64(i), result.Recommendations)
		if result.Crossings > 0 {
			extensions += int(result.Crossings)
			assert.Zero(t, i%int(lifecycle.ExtensionThreshold), "续命只能发生在阈值整数倍")
		}
		lastExpire = result.ExpireAt
	}

	// 12 次推荐 = floor(12/5) = 2 次续命
	assert.Equal(t, 2, extensions)
	expected := baseExpire.Add(2 * lifecycle.Extension())
	assert.Equal(t, expected.UnixMilli(), lastExpire.UnixMilli())

	// 过期索引的分数跟随新的过期时间
	score, err := client.ZScore(ctx, constant.ExpireIndexKey, created.ID).Result()
	require.NoError(t, err)
	assert.Equal(t, float64(expected.UnixMilli()), score)
}

func TestRecommendPost_MissingAndExpired(t *testing.T) {
	_, client := newTestClient(t)
	logger := newTestLogger(t)
	store := NewPostStoreRepository(client, logger, testLifecycle())
	repo := NewPostLifecycleRepository(client, logger, testLifecycle())
	ctx := context.Background()

	_, err := repo.RecommendPost(ctx, "post_missing")
	assert.ErrorIs(t, err, myErrors.ErrPostNotFound)

	created, err := store.CreatePost(ctx, "过期后不可推荐")
	require.NoError(t, err)
	past := time.Now().Add(-time.Minute).UnixMilli()
	require.NoError(t, client.HSet(ctx, constant.PostKeyPrefix+created.ID, "expire_at_ms", past).Err())

	_, err = repo.RecommendPost(ctx, created.ID)
	assert.ErrorIs(t, err, myErrors.ErrPostNotFound)
}

func TestReportPost_BlindsExactlyAtThreshold(t *testing.T) {
	_, client := newTestClient(t)
	logger := newTestLogger(t)
	lifecycle := testLifecycle() // 拉黑阈值 3
	store := NewPostStoreRepository(client, logger, lifecycle)
	repo := NewPostLifecycleRepository(client, logger, lifecycle)
	ctx := context.Background()

	created, err := store.CreatePost(ctx, "将被拉黑的帖子")
	require.NoError(t, err)

	for i := int64(1); i < lifecycle.BlindThreshold; i++ {
		result, repErr := repo.ReportPost(ctx, created.ID)
		require.NoError(t, repErr)
		assert.Equal(t, i, result.Reports)
		assert.False(t, result.Blinded)
		assert.Nil(t, result.Snapshot)
	}

	// 第 3 次举报触发拉黑，并带回完整快照
	result, err := repo.ReportPost(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, result.Blinded)
	require.NotNil(t, result.Snapshot)
	assert.Equal(t, created.ID, result.Snapshot.ID)
	assert.Equal(t, enums.StatusBlinded, result.Snapshot.Status)
	assert.Equal(t, lifecycle.BlindThreshold, result.Snapshot.Reports)

	// 已从时间线移除
	err = client.ZScore(ctx, constant.TimelineKey, created.ID).Err()
	assert.Error(t, err)

	// 拉黑后既不能再举报也不能推荐
	_, err = repo.ReportPost(ctx, created.ID)
	assert.ErrorIs(t, err, myErrors.ErrOperationRejected)
	_, err = repo.RecommendPost(ctx, created.ID)
	assert.ErrorIs(t, err, myErrors.ErrOperationRejected)
}

func TestReportPost_HallOfFameCountsButNeverBlinds(t *testing.T) {
	_, client := newTestClient(t)
	logger := newTestLogger(t)
	lifecycle := testLifecycle() // 名人堂阈值 4, 拉黑阈值 3
	store := NewPostStoreRepository(client, logger, lifecycle)
	repo := NewPostLifecycleRepository(client, logger, lifecycle)
	ctx := context.Background()

	created, err := store.CreatePost(ctx, "名人堂帖子骂不倒")
	require.NoError(t, err)
	for i := int64(0); i < lifecycle.HallOfFameThreshold; i++ {
		_, _, getErr := store.GetPost(ctx, created.ID)
		require.NoError(t, getErr)
	}

	// 远超拉黑阈值的举报也只是计数
	for i := int64(1); i <= lifecycle.BlindThreshold+2; i++ {
		result, repErr := repo.ReportPost(ctx, created.ID)
		require.NoError(t, repErr)
		assert.Equal(t, i, result.Reports)
		assert.False(t, result.Blinded)
	}

	got, _, err := store.GetPost(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.StatusHallOfFame, got.Status)
}

// 并发推荐下计数与续命都不能多算或漏算：N 个并发请求落账后推荐数恰为 N，
// 续命总次数恰为 floor(N/阈值)，与交错顺序无关。
func TestRecommendPost_ConcurrentCountsAndExtensions(t *testing.T) {
	_, client := newTestClient(t)
	logger := newTestLogger(t)
	lifecycle := testLifecycle() // 阈值 5，每次续命 300s
	store := NewPostStoreRepository(client, logger, lifecycle)
	repo := NewPostLifecycleRepository(client, logger, lifecycle)
	ctx := context.Background()

	created, err := store.CreatePost(ctx, "并发推荐测试")
	require.NoError(t, err)
	baseExpire := created.ExpireAt

	const workers = 23 // floor(23/5) = 4 次续命
	var wg sync.WaitGroup
	var totalCrossings atomic.Int64
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, recErr := repo.RecommendPost(ctx, created.ID)
			if recErr != nil {
				errs <- recErr
				return
			}
			totalCrossings.Add(result.Crossings)
		}()
	}
	wg.Wait()
	close(errs)
	for recErr := range errs {
		require.NoError(t, recErr)
	}

	assert.Equal(t, int64(4), totalCrossings.Load(), "续命总次数与交错无关")

	recs, err := client.HGet(ctx, constant.PostKeyPrefix+created.ID, "recommendations").Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(workers), recs)

	expected := baseExpire.Add(4 * lifecycle.Extension())
	expireAt, err := client.HGet(ctx, constant.PostKeyPrefix+created.ID, "expire_at_ms").Int64()
	require.NoError(t, err)
	assert.Equal(t, expected.UnixMilli(), expireAt)

	score, err := client.ZScore(ctx, constant.ExpireIndexKey, created.ID).Result()
	require.NoError(t, err)
	assert.Equal(t, float64(expected.UnixMilli()), score)

	rankScore, err := client.ZScore(ctx, constant.RecsRankKey, created.ID).Result()
	require.NoError(t, err)
	assert.Equal(t, float64(workers), rankScore)
}
