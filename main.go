package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/Xushengqwer/bamboo_service/docs" // 确保导入了 docs 包

	// 导入项目包
	appConfig "github.com/Xushengqwer/bamboo_service/config"
	"github.com/Xushengqwer/bamboo_service/constant"
	"github.com/Xushengqwer/bamboo_service/controller"
	"github.com/Xushengqwer/bamboo_service/dependencies"
	"github.com/Xushengqwer/bamboo_service/mq/consumer"
	"github.com/Xushengqwer/bamboo_service/mq/producer"
	redisrepo "github.com/Xushengqwer/bamboo_service/repo/redis"
	"github.com/Xushengqwer/bamboo_service/router"
	"github.com/Xushengqwer/bamboo_service/service"
	"github.com/Xushengqwer/bamboo_service/tasks"

	// 导入公共模块
	sharedCore "github.com/Xushengqwer/go-common/core"
	sharedTracing "github.com/Xushengqwer/go-common/core/tracing"

	// 导入 OTel HTTP Client Instrumentation
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	// 导入 Zap
	"go.uber.org/zap"
)

// @title           Bamboo Service API
// @version         1.0
// @description     匿名自过期帖子服务。帖子发布后默认存活 10 分钟，靠推荐续命、因举报拉黑、凭浏览量进名人堂。
// @termsOfService  http://swagger.io/terms/

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8083
// API 的主机和端口 (根据开发环境配置)

// @schemes http https
func main() {
	// --- 配置和基础设置 ---
	var configFile string
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "Path to configuration file")
	flag.Parse()

	// 1. 加载配置
	var cfg appConfig.BambooConfig
	if err := sharedCore.LoadConfig(configFile, &cfg); err != nil {
		log.Fatalf("FATAL: 加载配置失败 (%s): %v", configFile, err)
	}

	// 打印最终生效的配置以供调试
	configBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		log.Fatalf("无法序列化配置以进行打印: %v", err)
	}
	log.Printf("✅ 配置加载成功！最终生效的配置如下:\n%s\n", string(configBytes))

	// 2. 初始化 Logger
	logger, loggerErr := sharedCore.NewZapLogger(cfg.ZapConfig)
	if loggerErr != nil {
		log.Fatalf("FATAL: 初始化 ZapLogger 失败: %v", loggerErr)
	}
	defer func() {
		logger.Info("正在同步日志...")
		if err := logger.Logger().Sync(); err != nil {
			log.Printf("WARN: ZapLogger Sync 失败: %v\n", err)
		}
	}()
	logger.Info("Logger 初始化成功")

	// 3. 初始化 TracerProvider
	var tracerShutdown func(context.Context) error // 用于优雅关停
	if cfg.TracerConfig.Enabled {
		var err error
		tracerShutdown, err = sharedTracing.InitTracerProvider(
			constant.ServiceName,
			constant.ServiceVersion,
			cfg.TracerConfig,
		)
		if err != nil {
			logger.Fatal("初始化 TracerProvider 失败", zap.Error(err))
		}
		// 使用 defer 确保追踪系统在程序退出时关闭
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			logger.Info("正在关闭 TracerProvider...")
			if err := tracerShutdown(ctx); err != nil {
				logger.Error("关闭 TracerProvider 失败", zap.Error(err))
			} else {
				logger.Info("TracerProvider 已成功关闭")
			}
		}()
		logger.Info("分布式追踪已初始化")
		// 当前服务不主动发起 HTTP 调用，仅初始化 Transport 备用
		_ = otelhttp.NewTransport(http.DefaultTransport)
		logger.Debug("OTel HTTP Transport 初始化完成 (暂未使用)")

	} else {
		logger.Info("分布式追踪已禁用")
		tracerShutdown = func(ctx context.Context) error { return nil } // 提供一个空操作关闭函数
	}

	// --- 4. 初始化核心依赖 ---
	// 4.1 Redis (帖子记录与所有索引的唯一权威存储)
	rdb, redisErr := dependencies.InitRedis(&cfg.RedisConfig, logger)
	if redisErr != nil {
		logger.Fatal("初始化 Redis 失败", zap.Error(redisErr))
	}
	logger.Info("Redis 连接成功")

	// 4.2 Kafka 生产者
	var kafkaProducer *producer.KafkaProducer
	if len(cfg.KafkaConfig.Brokers) > 0 {
		kafkaProducer = producer.NewKafkaProducer(cfg.KafkaConfig, logger)
		logger.Info("Kafka 生产者已初始化")
	} else {
		logger.Warn("未配置 Kafka brokers，Kafka 生产者将为 nil")
	}

	// --- 5. 初始化数据仓库层 (Repositories) ---
	postStore := redisrepo.NewPostStoreRepository(rdb, logger, cfg.LifecycleConfig)
	lifecycleRepo := redisrepo.NewPostLifecycleRepository(rdb, logger, cfg.LifecycleConfig)
	indexRepo := redisrepo.NewPostIndexRepository(rdb, logger, postStore)
	expirationRepo := redisrepo.NewExpirationRepository(rdb, logger)
	logger.Debug("Redis Repositories 初始化完成")

	// --- 6. 初始化服务层 (Services) ---
	postService := service.NewPostService(postStore, lifecycleRepo, kafkaProducer, logger)
	feedService := service.NewFeedService(indexRepo, logger)
	logger.Debug("Services 初始化完成")

	// --- 7. 初始化控制器层 (Controllers) ---
	postController := controller.NewPostController(postService)
	feedController := controller.NewFeedController(feedService)
	logger.Debug("Controllers 初始化完成")

	// --- 8. 初始化 Kafka 消费者 ---
	var consumers []*consumer.Consumer
	var consumerWg sync.WaitGroup

	// 创建一个可以被取消的 context，用于通知所有消费者停止
	var consumerCtx, consumerCancel = context.WithCancel(context.Background())

	if len(cfg.KafkaConfig.Brokers) > 0 {
		groupID := cfg.KafkaConfig.ConsumerGroupID
		if groupID == "" {
			logger.Warn("Kafka ConsumerGroupID 未在配置中设置，将使用默认值 'bamboo_service_group'")
			groupID = "bamboo_service_group"
		}

		// --- 8.1 初始化并添加打标结果消费者 ---
		taggedTopic := cfg.KafkaConfig.Topics.PostTagged
		if taggedTopic != "" {
			taggedHandler := consumer.NewTaggedHandler(logger, postService)
			taggedConsumer, err := consumer.NewConsumer(
				&cfg.KafkaConfig,
				groupID,
				taggedTopic,
				taggedHandler,
				logger,
			)
			if err != nil {
				logger.Fatal("初始化打标结果 Kafka 消费者失败", zap.Error(err))
			}
			consumers = append(consumers, taggedConsumer)
			logger.Info("打标结果 Kafka 消费者已准备就绪", zap.String("topic", taggedTopic))
		} else {
			logger.Warn("PostTagged topic 未配置，跳过打标结果消费者创建")
		}

		// --- 8.2 启动所有已初始化的消费者 ---
		if len(consumers) > 0 {
			logger.Info(fmt.Sprintf("准备启动 %d 个 Kafka 消费者...", len(consumers)))
			for _, c := range consumers {
				consumerWg.Add(1)
				go func(cons *consumer.Consumer) {
					defer consumerWg.Done()
					cons.Start(consumerCtx)
				}(c)
			}
		} else {
			logger.Warn("没有配置任何有效的 Kafka 消费者。")
		}

	} else {
		logger.Warn("Kafka Brokers 未配置，跳过所有 Kafka 消费者初始化。")
	}

	// --- 9. 初始化定时任务 ---
	sweeperTask := tasks.NewExpirationSweeperTask(expirationRepo, kafkaProducer, cfg.SweeperConfig, logger)
	logger.Info("后台定时任务已初始化并启动")

	// --- 10. 设置 Gin 路由器 ---
	ginRouter := router.SetupRouter(logger, &cfg, postController, feedController)
	logger.Info("Gin 路由器已设置")

	// --- 11. 启动 HTTP 服务器 ---
	serverAddr := fmt.Sprintf(":%s", cfg.ServerConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: ginRouter,
	}

	// 启动 HTTP 服务器 goroutine
	go func() {
		logger.Info("HTTP 服务器开始监听", zap.String("address", serverAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 服务器启动失败", zap.Error(err))
		}
		logger.Info("HTTP 服务器已停止监听")
	}()

	// --- 12. 实现优雅关停 ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	logger.Info("收到关停信号，开始优雅退出...", zap.String("signal", receivedSignal.String()))

	// 创建关停超时 context
	shutdownCtx, shutdownCancelFunc := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancelFunc()

	// a. 停止 HTTP 服务器 (允许处理完当前请求)
	logger.Info("正在关闭 HTTP 服务器...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("关闭 HTTP 服务器失败", zap.Error(err))
	} else {
		logger.Info("HTTP 服务器已成功关闭")
	}

	// b. 关闭 Kafka 消费者
	if consumerCancel != nil {
		logger.Info("正在发送停止信号给 Kafka 消费者...")
		consumerCancel()
	}
	logger.Info("等待 Kafka 消费者停止...")
	consumerWg.Wait()

	for _, c := range consumers {
		if err := c.Close(); err != nil {
			logger.Error("关闭某个 Kafka 消费者时出错", zap.Error(err))
		}
	}
	logger.Info("所有 Kafka 消费者已停止。")

	// c. 停止定时任务调度器 (等待正在执行的清扫结束)
	logger.Info("正在停止定时任务...")
	sweeperStopCtx := sweeperTask.Stop()
	select {
	case <-sweeperStopCtx.Done():
		logger.Info("过期清扫任务已停止")
	case <-shutdownCtx.Done():
		logger.Error("等待过期清扫任务停止超时", zap.Error(shutdownCtx.Err()))
	}

	// d. 关闭 Kafka 生产者
	if kafkaProducer != nil {
		if err := kafkaProducer.Close(); err != nil {
			logger.Error("关闭 Kafka 生产者失败", zap.Error(err))
		} else {
			logger.Info("Kafka 生产者已关闭")
		}
	}

	// e. (其他清理，例如关闭 TracerProvider - 已通过 defer 处理)

	logger.Info("服务已成功关闭")
}
