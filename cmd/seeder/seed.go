package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/Xushengqwer/go-common/core"
	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"

	"github.com/Xushengqwer/bamboo_service/models/dto"
	"github.com/Xushengqwer/bamboo_service/service"
)

// maxSeedContentLen 帖子内容的长度上限，与 CreatePostRequest 的 binding 约束一致。
const maxSeedContentLen = 200

// Seed 通过服务层批量生成测试帖子，并对其中一部分制造推荐/举报活动，
// 让时间线、排行榜和生命周期路径都有数据可看。
func Seed(ctx context.Context, postSvc service.PostService, logger *core.ZapLogger, numPosts int) {
	logger.Info("开始填充测试数据 (通过服务层)...", zap.Int("数量", numPosts))

	var wg sync.WaitGroup
	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for i := 0; i < numPosts; i++ {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(itemIndex int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			content := gofakeit.Sentence(gofakeit.Number(8, 25))
			if len(content) > maxSeedContentLen {
				content = content[:maxSeedContentLen]
			}

			createReq := &dto.CreatePostRequest{
				Content: content,
			}

			resp, err := postSvc.CreatePost(ctx, createReq)
			if err != nil {
				logger.Error(fmt.Sprintf("创建帖子 %d/%d 失败", itemIndex+1, numPosts),
					zap.Error(err))
				return
			}
			logger.Info(fmt.Sprintf("成功创建帖子 %d/%d", itemIndex+1, numPosts),
				zap.String("post_id", resp.ID))

			// 制造一些随机活动：浏览、推荐、偶尔举报
			for v := gofakeit.Number(0, 5); v > 0; v-- {
				if _, viewErr := postSvc.GetPostByID(ctx, resp.ID); viewErr != nil {
					logger.Warn("Seeder: 浏览帖子失败", zap.Error(viewErr), zap.String("post_id", resp.ID))
					break
				}
			}
			for r := gofakeit.Number(0, 8); r > 0; r-- {
				if _, recErr := postSvc.RecommendPost(ctx, resp.ID); recErr != nil {
					logger.Warn("Seeder: 推荐帖子失败", zap.Error(recErr), zap.String("post_id", resp.ID))
					break
				}
			}
			if gofakeit.Bool() {
				if _, repErr := postSvc.ReportPost(ctx, resp.ID); repErr != nil {
					logger.Warn("Seeder: 举报帖子失败", zap.Error(repErr), zap.String("post_id", resp.ID))
				}
			}
		}(i)
	}

	wg.Wait()
	logger.Info("测试数据填充完毕 (通过服务层)。")
}
