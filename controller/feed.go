package controller

import (
	"net/http"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/bamboo_service/models/dto"
	"github.com/Xushengqwer/bamboo_service/service"
)

// FeedController 定义帖子列表控制器的结构体
type FeedController struct {
	feedService service.FeedService
}

// NewFeedController 构造函数，用于创建 FeedController 实例
func NewFeedController(feedService service.FeedService) *FeedController {
	return &FeedController{
		feedService: feedService,
	}
}

// RegisterRoutes 注册帖子列表相关的路由。
func (ctrl *FeedController) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/posts", ctrl.GetTimeline) // GET /api/v1/bamboo/posts
	rankings := group.Group("/rankings")
	{
		rankings.GET("/views", ctrl.GetViewsRanking)                     // GET /api/v1/bamboo/rankings/views
		rankings.GET("/recommendations", ctrl.GetRecommendationsRanking) // GET /api/v1/bamboo/rankings/recommendations
	}
}

// GetTimeline 获取帖子时间线列表 (游标分页)
// @Summary      获取帖子时间线 (公开)
// @Description  按创建时间倒序获取活跃帖子列表，游标分页。首页不带游标，之后携带响应中的 nextCreatedAt / nextPostId。
// @Tags         feed (列表)
// @Produce      json
// @Param        lastCreatedAt query string false "上一页最后一条记录的创建时间 (RFC3339格式, e.g., 2023-01-01T15:04:05Z)" format(date-time)
// @Param        lastPostId query string false "上一页最后一条记录的帖子ID" maxLength(64)
// @Param        pageSize query int true "每页数量" format(int32) minimum(1) maximum(100) default(10)
// @Success      200 {object} vo.TimelinePageResponseWrapper "成功响应，包含帖子列表、总数和下一页游标信息"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/bamboo/posts [get]
func (ctrl *FeedController) GetTimeline(c *gin.Context) {
	var reqDTO dto.GetTimelineRequestDTO
	if err := c.ShouldBindQuery(&reqDTO); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}
	// 游标的两个分量必须成对出现
	if (reqDTO.LastCreatedAt == nil) != (reqDTO.LastPostID == nil) {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "游标参数 lastCreatedAt 与 lastPostId 必须同时提供")
		return
	}

	timelinePageVO, err := ctrl.feedService.GetTimeline(c.Request.Context(), &reqDTO)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "获取帖子时间线失败: "+err.Error())
		return
	}
	response.RespondSuccess(c, timelinePageVO, "帖子时间线获取成功")
}

// GetViewsRanking 获取浏览量排行榜
// @Summary      获取浏览量排行榜
// @Description  按浏览量倒序返回前 N 个帖子，并列时创建更早的在前。
// @Tags         feed (列表)
// @Produce      json
// @Param        limit query int false "返回条目数 (默认 10)" format(int32) minimum(1) maximum(50) default(10)
// @Success      200 {object} vo.RankingResponseWrapper "成功响应，包含排行榜帖子列表"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/bamboo/rankings/views [get]
func (ctrl *FeedController) GetViewsRanking(c *gin.Context) {
	var reqDTO dto.GetRankingRequestDTO
	if err := c.ShouldBindQuery(&reqDTO); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	rankingVO, err := ctrl.feedService.GetViewsRanking(c.Request.Context(), &reqDTO)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "获取浏览量排行榜失败: "+err.Error())
		return
	}
	response.RespondSuccess(c, rankingVO, "浏览量排行榜获取成功")
}

// GetRecommendationsRanking 获取推荐数排行榜
// @Summary      获取推荐数排行榜
// @Description  按推荐数倒序返回前 N 个帖子，并列时创建更早的在前。
// @Tags         feed (列表)
// @Produce      json
// @Param        limit query int false "返回条目数 (默认 10)" format(int32) minimum(1) maximum(50) default(10)
// @Success      200 {object} vo.RankingResponseWrapper "成功响应，包含排行榜帖子列表"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/bamboo/rankings/recommendations [get]
func (ctrl *FeedController) GetRecommendationsRanking(c *gin.Context) {
	var reqDTO dto.GetRankingRequestDTO
	if err := c.ShouldBindQuery(&reqDTO); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	rankingVO, err := ctrl.feedService.GetRecommendationsRanking(c.Request.Context(), &reqDTO)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "获取推荐数排行榜失败: "+err.Error())
		return
	}
	response.RespondSuccess(c, rankingVO, "推荐数排行榜获取成功")
}
