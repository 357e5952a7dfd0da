package controller

import (
	"errors"
	"net/http"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/bamboo_service/models/dto"
	"github.com/Xushengqwer/bamboo_service/myErrors"
	"github.com/Xushengqwer/bamboo_service/service"
)

// PostController 定义帖子控制器的结构体
type PostController struct {
	postService service.PostService // 服务层接口，通过依赖注入传入
}

// NewPostController 构造函数，用于创建 PostController 实例
func NewPostController(postService service.PostService) *PostController {
	return &PostController{
		postService: postService,
	}
}

// CreatePost 处理发布帖子的 HTTP 请求。
// @Summary      发布新帖子 (匿名)
// @Description  发布一条匿名帖子。内容 1~200 字符，纯空白视为空。帖子默认存活 10 分钟，可被推荐续命。
// @Tags         posts (帖子)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreatePostRequest true "帖子内容"
// @Success      200 {object} vo.PostResponseWrapper "成功响应，包含新帖子的完整信息"
// @Failure      400 {object} vo.BaseResponseWrapper "内容为空或超过长度上限"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/bamboo/posts [post]
func (ctrl *PostController) CreatePost(c *gin.Context) {
	// 1. 绑定并验证请求体
	var reqDTO dto.CreatePostRequest
	if err := c.ShouldBindJSON(&reqDTO); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求体: "+err.Error())
		return
	}

	// 2. 调用服务层方法
	postVO, err := ctrl.postService.CreatePost(c.Request.Context(), &reqDTO)
	if err != nil {
		if errors.Is(err, myErrors.ErrInvalidContent) {
			response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "帖子内容不能为空")
			return
		}
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "发布帖子失败: "+err.Error())
		return
	}

	// 3. 成功响应
	response.RespondSuccess(c, postVO, "帖子发布成功")
}

// GetPostByID 处理获取帖子详情的 HTTP 请求。
// @Summary      获取帖子详情
// @Description  获取单个帖子的完整信息。每次成功读取都会使浏览量 +1，浏览量达标的帖子会晋升名人堂并永久保留。
// @Tags         posts (帖子)
// @Produce      json
// @Param        post_id path string true "帖子ID"
// @Success      200 {object} vo.PostResponseWrapper "成功响应，包含帖子的完整信息"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在或已过期"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/bamboo/posts/{post_id} [get]
func (ctrl *PostController) GetPostByID(c *gin.Context) {
	postID := c.Param("post_id")
	if postID == "" {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "帖子ID不能为空")
		return
	}

	postVO, err := ctrl.postService.GetPostByID(c.Request.Context(), postID)
	if err != nil {
		ctrl.respondLifecycleError(c, err, "获取帖子详情失败")
		return
	}

	response.RespondSuccess(c, postVO, "帖子详情获取成功")
}

// RecommendPost 处理推荐帖子的 HTTP 请求。
// @Summary      推荐帖子
// @Description  为帖子的推荐数 +1。推荐数每达到 100 的整数倍，帖子的过期时间顺延 300 秒。
// @Tags         posts (帖子)
// @Produce      json
// @Param        post_id path string true "帖子ID"
// @Success      200 {object} vo.RecommendResponseWrapper "成功响应，包含更新后的推荐数与剩余秒数"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在或已过期"
// @Failure      409 {object} vo.BaseResponseWrapper "帖子当前状态不允许推荐"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/bamboo/posts/{post_id}/recommend [post]
func (ctrl *PostController) RecommendPost(c *gin.Context) {
	postID := c.Param("post_id")
	if postID == "" {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "帖子ID不能为空")
		return
	}

	recommendVO, err := ctrl.postService.RecommendPost(c.Request.Context(), postID)
	if err != nil {
		ctrl.respondLifecycleError(c, err, "推荐帖子失败")
		return
	}

	response.RespondSuccess(c, recommendVO, "推荐成功")
}

// ReportPost 处理举报帖子的 HTTP 请求。
// @Summary      举报帖子
// @Description  为帖子的举报数 +1。活跃帖子举报数达到 50 时被拉黑，从所有列表中消失。
// @Tags         posts (帖子)
// @Produce      json
// @Param        post_id path string true "帖子ID"
// @Success      200 {object} vo.ReportResponseWrapper "成功响应，包含更新后的举报数与是否触发拉黑"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在或已过期"
// @Failure      409 {object} vo.BaseResponseWrapper "帖子当前状态不允许举报"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/bamboo/posts/{post_id}/report [post]
func (ctrl *PostController) ReportPost(c *gin.Context) {
	postID := c.Param("post_id")
	if postID == "" {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "帖子ID不能为空")
		return
	}

	reportVO, err := ctrl.postService.ReportPost(c.Request.Context(), postID)
	if err != nil {
		ctrl.respondLifecycleError(c, err, "举报帖子失败")
		return
	}

	response.RespondSuccess(c, reportVO, "举报成功")
}

// RegisterRoutes 注册帖子写路径相关的路由。
func (ctrl *PostController) RegisterRoutes(group *gin.RouterGroup) {
	posts := group.Group("/posts")
	{
		posts.POST("", ctrl.CreatePost)                     // POST /api/v1/bamboo/posts
		posts.GET("/:post_id", ctrl.GetPostByID)            // GET /api/v1/bamboo/posts/:post_id
		posts.POST("/:post_id/recommend", ctrl.RecommendPost) // POST /api/v1/bamboo/posts/:post_id/recommend
		posts.POST("/:post_id/report", ctrl.ReportPost)     // POST /api/v1/bamboo/posts/:post_id/report
	}
}

// respondLifecycleError 把服务层的生命周期错误映射为对应的 HTTP 响应。
func (ctrl *PostController) respondLifecycleError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, myErrors.ErrPostNotFound):
		response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, "帖子不存在或已过期")
	case errors.Is(err, myErrors.ErrOperationRejected):
		response.RespondError(c, http.StatusConflict, response.ErrCodeClientInvalidInput, "帖子当前状态不允许该操作")
	default:
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, fallbackMsg+": "+err.Error())
	}
}
