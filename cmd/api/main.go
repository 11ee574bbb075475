package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/damoang/pcmall-backend/internal/config"
	"github.com/damoang/pcmall-backend/internal/database"
	"github.com/damoang/pcmall-backend/internal/handler"
	"github.com/damoang/pcmall-backend/internal/middleware"
	"github.com/damoang/pcmall-backend/internal/migration"
	"github.com/damoang/pcmall-backend/internal/repository"
	"github.com/damoang/pcmall-backend/internal/routes"
	"github.com/damoang/pcmall-backend/internal/service"
	pkgcache "github.com/damoang/pcmall-backend/pkg/cache"
	pkges "github.com/damoang/pcmall-backend/pkg/elasticsearch"
	"github.com/damoang/pcmall-backend/pkg/jwt"
	pkglogger "github.com/damoang/pcmall-backend/pkg/logger"
	pkgredis "github.com/damoang/pcmall-backend/pkg/redis"
	pkgstorage "github.com/damoang/pcmall-backend/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           PC Mall Backend API
// @version         1.0
// @description     PC 부품 쇼핑몰 스토어프런트/관리자 API
//
// @host            localhost:8080
// @BasePath        /api
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv(".")

	// 로거 초기화
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s", env)

	// 설정 로드
	configPath := getConfigPath()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		pkglogger.Fatal("Failed to load config: %v", err)
	}
	config.LogResolved(cfg, dotenvFiles)

	// DB 연결 (필수)
	db, err := database.Open(&cfg.Database)
	if err != nil {
		pkglogger.Fatal("Failed to connect to database: %v", err)
	}
	if err := migration.Run(db); err != nil {
		pkglogger.Fatal("Migration failed: %v", err)
	}

	// Redis 연결 (선택: 캐시, 레이트리밋)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = pkgredis.NewClient(pkgredis.Options{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			ConnectTries: 3,
		})
		if err != nil {
			pkglogger.Warn("Failed to connect to Redis: %v (continuing without Redis)", err)
			redisClient = nil
		} else {
			pkglogger.Info("Connected to Redis")
		}
	}
	cacheService := pkgcache.NewService(redisClient)

	// Elasticsearch 연결 (선택: 상품 검색)
	var productSearch service.ProductSearcher
	if cfg.Elasticsearch.Enabled && len(cfg.Elasticsearch.Addresses) > 0 {
		esClient, esErr := pkges.NewClient(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Username, cfg.Elasticsearch.Password)
		if esErr != nil {
			pkglogger.Warn("Elasticsearch connection failed: %v (continuing with SQL search)", esErr)
		} else {
			search := pkges.NewProductSearch(esClient)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := search.EnsureIndex(ctx); err != nil {
				pkglogger.Warn("Elasticsearch index setup failed: %v (continuing with SQL search)", err)
			} else {
				productSearch = search
				pkglogger.Info("Connected to Elasticsearch")
			}
			cancel()
		}
	}

	// S3 호환 스토리지 (선택: 이미지 업로드)
	var uploader pkgstorage.Uploader
	if cfg.Storage.Enabled && cfg.Storage.Bucket != "" {
		s3Client, s3Err := pkgstorage.NewS3Client(pkgstorage.S3Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Bucket:          cfg.Storage.Bucket,
			CDNURL:          cfg.Storage.CDNURL,
			BasePath:        cfg.Storage.BasePath,
			ForcePathStyle:  cfg.Storage.ForcePathStyle,
		})
		if s3Err != nil {
			pkglogger.Warn("S3 storage init failed: %v (uploads disabled)", s3Err)
		} else {
			uploader = s3Client
			pkglogger.Info("Connected to S3 storage")
		}
	}

	// JWT Manager
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn)

	// Repositories
	menuRepo := repository.NewMenuRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	shopRepo := repository.NewShopRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	adminUserRepo := repository.NewAdminUserRepository(db)

	// Services
	menuService := service.NewMenuService(menuRepo, cacheService)
	categoryService := service.NewCategoryService(categoryRepo, cacheService)
	brandService := service.NewBrandService(brandRepo)
	shopService := service.NewShopService(shopRepo)
	productService := service.NewProductService(productRepo, categoryRepo, brandRepo, productSearch)
	settingService := service.NewSettingService(settingRepo, cacheService)
	orderService := service.NewOrderService(orderRepo, productRepo, shopService, settingService)
	authService := service.NewAuthService(adminUserRepo, jwtManager)
	mediaService := service.NewMediaService(uploader, cfg.Storage.MaxUploadMB)
	pcBuilderService := service.NewPCBuilderService(categoryRepo, productRepo, cacheService)

	// 기본 데이터 (빈 테이블에만)
	if err := migration.Seed(db, authService, migration.SeedOptions{
		AdminUsername: cfg.Admin.Username,
		AdminPassword: cfg.Admin.Password,
		AdminEmail:    cfg.Admin.Email,
	}); err != nil {
		pkglogger.Warn("Seed warning: %v", err)
	}

	if err := handler.RegisterValidators(); err != nil {
		pkglogger.Fatal("Failed to register validators: %v", err)
	}

	// Gin 라우터 생성
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS 설정
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.Origins(),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining"},
		MaxAge:           12 * time.Hour,
	}))

	// Middleware
	router.Use(middleware.RequestLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.InputSanitizer())
	router.Use(middleware.Metrics())
	if redisClient != nil && !cfg.IsDevelopment() {
		router.Use(middleware.RateLimit(redisClient, middleware.RateLimitConfig{
			Requests:  cfg.RateLimit.Requests,
			Window:    cfg.RateLimit.Window,
			KeyPrefix: "ratelimit:api:",
		}))
	}

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health Check
	router.GET("/health", handler.NewHealthHandler(db, redisClient).Health)

	// Swagger UI
	if cfg.IsDevelopment() {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	auditLogger := middleware.NewAuditLogger(db)
	routes.Setup(router, &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService, cfg.JWT),
		Menu:      handler.NewMenuHandler(menuService),
		Category:  handler.NewCategoryHandler(categoryService),
		Brand:     handler.NewBrandHandler(brandService),
		Shop:      handler.NewShopHandler(shopService),
		Product:   handler.NewProductHandler(productService),
		Order:     handler.NewOrderHandler(orderService),
		Setting:   handler.NewSettingHandler(settingService),
		Media:     handler.NewMediaHandler(mediaService),
		PCBuilder: handler.NewPCBuilderHandler(pcBuilderService),
		Audit:     handler.NewAuditHandler(auditLogger),
	}, jwtManager, redisClient, auditLogger, cfg)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	// 서버 시작
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		pkglogger.Info("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			pkglogger.Fatal("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	pkglogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		pkglogger.Error("Server forced to shutdown: %v", err)
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	pkglogger.Info("Server exited")
}
