package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"quiz_platform_backend/internal/config"
	"quiz_platform_backend/internal/controller"
	"quiz_platform_backend/internal/repository"
	"quiz_platform_backend/internal/service"
	"quiz_platform_backend/pkg/database"
	"quiz_platform_backend/pkg/logger"
	"quiz_platform_backend/pkg/monitoring"
	"quiz_platform_backend/pkg/security"
	"quiz_platform_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
	tracerShutdown  func(context.Context) error
}

type repositories struct {
	user      *repository.UserRepository
	subject   *repository.SubjectRepository
	chapter   *repository.ChapterRepository
	quiz      *repository.QuizRepository
	question  *repository.QuestionRepository
	score     *repository.ScoreRepository
	analytics *repository.AnalyticsRepository
}

type services struct {
	auth      *service.AuthService
	user      *service.UserService
	catalog   *service.CatalogService
	attempt   *service.AttemptService
	analytics *service.AnalyticsService
	dashboard *service.DashboardService
	storage   *service.StorageService
}

type controllers struct {
	auth      *controller.AuthController
	user      *controller.UserController
	subject   *controller.SubjectController
	chapter   *controller.ChapterController
	quiz      *controller.QuizController
	question  *controller.QuestionController
	attempt   *controller.AttemptController
	analytics *controller.AnalyticsController
	dashboard *controller.DashboardController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热更新入口，运行时标志不随文件刷新。
// 启动时的 Config 不做就地覆盖，请求协程在并发读取它；
// 新配置只通过回调整体下发给订阅的组件。
func (a *App) ApplyConfig(cfg *config.Config) {
	cfg.MigrateOnly = a.Config.MigrateOnly
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		subject:   repository.NewSubjectRepository(db),
		chapter:   repository.NewChapterRepository(db),
		quiz:      repository.NewQuizRepository(db),
		question:  repository.NewQuestionRepository(db),
		score:     repository.NewScoreRepository(db),
		analytics: repository.NewAnalyticsRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, rdb, cfg)
	s.user = service.NewUserService(repos.user)
	s.catalog = service.NewCatalogService(repos.subject, repos.chapter, repos.quiz, repos.question)
	s.attempt = service.NewAttemptService(repos.quiz, repos.question, repos.score)
	s.analytics = service.NewAnalyticsService(repos.analytics)
	s.dashboard = service.NewDashboardService(repos.user, repos.subject, repos.quiz, repos.score)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		user:      controller.NewUserController(s.user, s.storage),
		subject:   controller.NewSubjectController(s.catalog),
		chapter:   controller.NewChapterController(s.catalog),
		quiz:      controller.NewQuizController(s.catalog),
		question:  controller.NewQuestionController(s.catalog),
		attempt:   controller.NewAttemptController(s.attempt),
		analytics: controller.NewAnalyticsController(s.analytics),
		dashboard: controller.NewDashboardController(s.dashboard),
		health:    controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(&cfg.Database, &cfg.Admin)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.MigrateOnly {
		logger.Log.Info("Migration completed, exiting (migrate-only mode)")
		os.Exit(0)
	}

	// Redis 只承担令牌黑名单，连不上时降级运行
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, token revocation disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	app.RegisterConfigCallback(services.auth.SetConfig)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("quiz-platform", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		// 随服务器一起在 Run 的优雅退出阶段关闭
		app.tracerShutdown = tp.Shutdown
	}

	app.registerRoutes(router, controllers, services)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
