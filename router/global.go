package router

import (
	"net/http"
	"time"

	"github.com/Xushengqwer/go-common/core"
	commonMiddleware "github.com/Xushengqwer/go-common/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	otelgin "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	appConfig "github.com/Xushengqwer/bamboo_service/config"
	"github.com/Xushengqwer/bamboo_service/constant"
	"github.com/Xushengqwer/bamboo_service/controller"
)

// SetupRouter 仅负责配置 Gin 引擎、中间件和路由注册。
func SetupRouter(
	logger *core.ZapLogger,
	cfg *appConfig.BambooConfig,
	postController *controller.PostController,
	feedController *controller.FeedController,
) *gin.Engine {
	logger.Info("开始设置 Gin 路由...")

	// 使用 gin.New() 而不是 gin.Default()，因为我们要自定义 Recovery 和 Logger
	router := gin.New()

	// 1. OTel Middleware (最先，处理追踪上下文和 Span)
	router.Use(otelgin.Middleware(constant.ServiceName))

	// 2. Panic Recovery (捕获后续中间件和 handler 的 panic)
	router.Use(commonMiddleware.ErrorHandlingMiddleware(logger))

	// 3. Request Logger (记录访问日志，需要 TraceID)
	if baseLogger := logger.Logger(); baseLogger != nil {
		router.Use(commonMiddleware.RequestLoggerMiddleware(baseLogger))
	} else {
		logger.Warn("无法获取底层的 *zap.Logger，跳过 RequestLoggerMiddleware 注册")
	}

	// 4. Request Timeout (超时控制)
	requestTimeout := time.Duration(cfg.ServerConfig.RequestTimeout) * time.Second
	router.Use(commonMiddleware.RequestTimeoutMiddleware(logger, requestTimeout))

	// 5. User Context (提取网关透传的用户信息，匿名请求时为空值)
	router.Use(commonMiddleware.UserContextMiddleware())

	logger.Debug("已注册全局中间件")

	// --- 创建 API 版本分组 ---
	v1 := router.Group("/api/v1/bamboo")
	logger.Debug("已创建 API/v1/bamboo 分组")

	// --- 注册控制器路由 ---
	postController.RegisterRoutes(v1)
	feedController.RegisterRoutes(v1)
	logger.Info("所有控制器路由已注册到 /api/v1/bamboo 分组")

	// --- 注册 Swagger UI 路由 ---
	// 访问 /swagger/index.html 即可看到 Swagger UI 界面
	swaggerURL := ginSwagger.URL("/swagger/doc.json")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))
	logger.Info("Swagger UI endpoint registered at /swagger/*any")

	// --- 健康检查等路由 ---
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	logger.Info("Gin 路由器设置完成")
	return router
}
