package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fabioferrero90/strabello-manager/internal/config"
	"github.com/fabioferrero90/strabello-manager/internal/middleware"
	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
	"github.com/fabioferrero90/strabello-manager/internal/shop/handler"
	"github.com/fabioferrero90/strabello-manager/internal/shop/repository"
	"github.com/fabioferrero90/strabello-manager/internal/shop/service"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 本地开发加载.env，生产环境直接用环境变量
	_ = godotenv.Load()

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting strabello-manager service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// 迁移车间表
	if err := entity.AutoMigrate(db); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// 初始化Redis
	rdb := initRedis(cfg.Redis)

	// 初始化依赖
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg)
	handlers := handler.NewHandlers(services)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// 注册路由
	registerRoutes(router, handlers, cfg, db, rdb)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config, db *gorm.DB, rdb *redis.Client) {
	// 健康检查
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unavailable"})
			return
		}
		if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "redis unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 版本信息
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 认证 (无需登录)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 需要认证的接口
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 材料目录
			materials := authorized.Group("/materials")
			{
				materials.GET("", h.Catalog.ListMaterials)
				materials.POST("", h.Catalog.CreateMaterial)
				materials.PUT("/:id", h.Catalog.UpdateMaterial)
				materials.DELETE("/:id", h.Catalog.DeleteMaterial)
			}

			// 模型目录
			models := authorized.Group("/models")
			{
				models.GET("", h.Catalog.ListModels)
				models.POST("", h.Catalog.CreateModel)
				models.GET("/:id", h.Catalog.GetModel)
				models.DELETE("/:id", h.Catalog.DeleteModel)
			}

			// 配件目录
			accessories := authorized.Group("/accessories")
			{
				accessories.GET("", h.Catalog.ListAccessories)
				accessories.POST("", h.Catalog.CreateAccessory)
			}

			// 销售渠道
			channels := authorized.Group("/channels")
			{
				channels.GET("", h.Catalog.ListChannels)
				channels.POST("", h.Catalog.CreateChannel)
			}

			// 料卷库存
			spools := authorized.Group("/spools")
			{
				spools.GET("", h.Inventory.ListSpools)
				spools.POST("", h.Inventory.AddSpool)
				spools.GET("/low", h.Inventory.LowSpools)
				spools.GET("/default", h.Inventory.DefaultSpool)
				spools.DELETE("/:id", h.Inventory.DiscardSpool)
			}

			// 配件批次
			accessoryLots := authorized.Group("/accessory-lots")
			{
				accessoryLots.GET("", h.Inventory.ListAccessoryLots)
				accessoryLots.POST("", h.Inventory.AddAccessoryLot)
			}

			// 生产订单
			orders := authorized.Group("/orders")
			{
				orders.GET("", h.Order.List)
				orders.POST("", h.Order.Create)
				orders.POST("/preview", h.Order.Preview)
				orders.GET("/:id", h.Order.Get)
				orders.DELETE("/:id", h.Order.Delete)
				orders.PUT("/:id/lots", h.Order.EditLots)
				orders.GET("/:id/usages", h.Order.ListUsages)

				// 销售结账
				orders.POST("/:id/sale", h.Sale.Finalize)
				orders.GET("/:id/sale", h.Sale.GetLatest)
			}

			// 打印队列
			queue := authorized.Group("/queue")
			{
				queue.GET("", h.Queue.Active)
				queue.PUT("/reorder", h.Queue.Reorder)
				queue.PUT("/:id/toggle", h.Queue.Toggle)
				queue.PUT("/:id/available", h.Queue.MarkAvailable)
				queue.PUT("/:id/prioritize", h.Queue.Prioritize)
			}

			// 销售台账
			sales := authorized.Group("/sales")
			{
				sales.GET("", h.Sale.List)
				sales.GET("/export", h.Sale.Export)
			}
		}
	}
}
