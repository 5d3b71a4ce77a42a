package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"intergalactic/internal/config"
	"intergalactic/internal/database"
	"intergalactic/internal/logger"
	"intergalactic/internal/model"
	"intergalactic/internal/router"
	"intergalactic/internal/task"
	"intergalactic/pkg/auth"
	"intergalactic/pkg/cache"
	"intergalactic/pkg/websocket"
)

var configPath string

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "intergalactic",
	Short: "内容发布平台API服务",
	Long:  `内容发布平台的API服务，支持分类发布、点赞点踩、评分、评论和通知推送`,
}

// serveCmd 启动服务命令
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动HTTP服务",
	Run: func(cmd *cobra.Command, args []string) {
		startServer()
	},
}

// migrateCmd 数据库迁移命令
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "执行数据库迁移",
	Run: func(cmd *cobra.Command, args []string) {
		runMigrate()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./config", "配置文件路径")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// initializeSystem 初始化系统
func initializeSystem() error {
	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("配置初始化失败: %v", err)
	}

	if err := logger.Init(); err != nil {
		return fmt.Errorf("日志初始化失败: %v", err)
	}

	db := database.GetDB()
	if db == nil {
		return fmt.Errorf("MySQL数据库连接失败")
	}

	if err := model.InitTables(db); err != nil {
		return fmt.Errorf("初始化数据库表失败: %v", err)
	}

	rdb := database.GetRedis()
	if rdb != nil {
		auth.SetTokenBlacklist(auth.NewRedisBlacklist(rdb))

		// 缓存依赖Redis，没有Redis时服务直接查库
		if err := cache.GetManager().Initialize(rdb, db); err != nil {
			return fmt.Errorf("缓存初始化失败: %v", err)
		}
	}

	// 搜索是可选能力，未启用时GetES返回nil
	if es := database.GetES(); es != nil {
		if err := model.InitESIndices(es); err != nil {
			return fmt.Errorf("初始化Elasticsearch索引失败: %v", err)
		}
	}

	return nil
}

// runMigrate 只做数据库迁移后退出
func runMigrate() {
	if err := config.Init(configPath); err != nil {
		fmt.Printf("配置初始化失败: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(); err != nil {
		fmt.Printf("日志初始化失败: %v\n", err)
		os.Exit(1)
	}

	if err := model.InitTables(database.GetDB()); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}
	logger.Info("数据库迁移完成")
}

// startServer 启动HTTP服务
func startServer() {
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	gin.SetMode(config.GlobalConfig.App.Mode)

	r := initRouter()

	task.Start()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.GlobalConfig.App.Port),
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP服务启动失败", zap.Error(err))
		}
	}()

	logger.Info("服务已启动", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("关闭服务...")

	task.Stop()
	websocket.GetManager().Shutdown()

	if err := cache.GetManager().Close(); err != nil {
		logger.Warnf("保存缓存状态失败: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("服务关闭异常", zap.Error(err))
	}

	logger.Info("服务已关闭")
}

// initRouter 初始化路由
func initRouter() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(logger.GinLogger())
	r.Use(corsMiddleware())

	router.Setup(r)

	return r
}

// corsMiddleware 跨域中间件
func corsMiddleware() gin.HandlerFunc {
	cfg := config.GlobalConfig.App.Cors

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	if len(cfg.AllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.AllowMethods
	}
	if len(cfg.AllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.AllowHeaders
	}
	if len(cfg.ExposeHeaders) > 0 {
		corsConfig.ExposeHeaders = cfg.ExposeHeaders
	}
	// AllowAllOrigins和携带凭证不能同时开
	corsConfig.AllowCredentials = cfg.AllowCredentials && len(cfg.AllowOrigins) > 0

	return cors.New(corsConfig)
}
