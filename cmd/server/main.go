// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skfghd/threelinepoem/internal/config"
	"github.com/skfghd/threelinepoem/internal/handler"
	"github.com/skfghd/threelinepoem/internal/middleware"
	"github.com/skfghd/threelinepoem/internal/model"
	"github.com/skfghd/threelinepoem/internal/repository"
	"github.com/skfghd/threelinepoem/internal/service"
	"github.com/skfghd/threelinepoem/pkg/database"
	"github.com/skfghd/threelinepoem/pkg/gemini"
	"github.com/skfghd/threelinepoem/pkg/log"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库和 Redis
	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	if err := database.DB.AutoMigrate(&model.Inquiry{}, &model.InquiryReply{}); err != nil {
		log.Fatal("failed to migrate inquiry tables", err)
	}

	// 4. 初始化 Gemini 客户端（进程启动时构造一次，随依赖注入传递）
	geminiClient, err := gemini.NewClient(context.Background(), cfg.Gemini)
	if err != nil {
		log.Fatal("failed to create gemini client", err)
	}

	// 5. 初始化 Repository 和 Service (依赖注入)
	usageRepo := repository.NewUsageRepository(database.RDB)
	inquiryRepo := repository.NewInquiryRepository(database.DB)
	usageService := service.NewUsageService(usageRepo, cfg.Usage.DailyLimit, cfg.Usage.Timezone, cfg.Usage.ResetHour)
	poemService := service.NewPoemService(geminiClient, usageService)
	inquiryService := service.NewInquiryService(inquiryRepo)

	// 6. 初始化限流后端（单实例用 memory，多实例切换 redis 共享窗口）
	var limiter middleware.RateLimiter
	if cfg.RateLimit.Backend == "redis" {
		limiter = middleware.NewRedisRateLimiter(database.RDB, cfg.RateLimit.RequestsPerMinute)
	} else {
		limiter = middleware.NewMemoryRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	// 7. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(
		middleware.RequestLogger(),
		gin.Recovery(),
		middleware.SecureHeaders(),
		middleware.CORS(),
		middleware.Metrics(),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", middleware.MetricsHandler())

	// 8. 注册路由
	api := r.Group("/api")
	api.Use(middleware.RateLimit(limiter))
	{
		// 三行诗路由组
		poemHandler := handler.NewPoemHandler(poemService)
		poems := api.Group("/poems")
		{
			poems.POST("", poemHandler.Create)
			poems.GET("", poemHandler.List)
		}

		// 用量统计路由
		api.GET("/usage-stats", handler.NewUsageHandler(usageService).Stats)

		// 问询板路由组
		inquiryHandler := handler.NewInquiryHandler(inquiryService)
		inquiries := api.Group("/inquiries")
		{
			inquiries.POST("", inquiryHandler.Create)
			inquiries.GET("", inquiryHandler.List)
			inquiries.GET("/:id", inquiryHandler.GetByID)
			inquiries.POST("/:id/verify", inquiryHandler.VerifyPassword)
			// 管理员回复接口，经过令牌门禁
			inquiries.POST("/:id/reply", middleware.AdminAuthMiddleware(cfg.Admin.Token), inquiryHandler.AddReply)
		}
	}

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 设置一个5秒的超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}
	log.Info("服务已优雅关闭")
}
