package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"skillmaster_backend/internal/config"
	"skillmaster_backend/internal/controller"
	"skillmaster_backend/internal/repository"
	"skillmaster_backend/internal/service"
	"skillmaster_backend/pkg/configwatcher"
	"skillmaster_backend/pkg/database"
	"skillmaster_backend/pkg/logger"
	"skillmaster_backend/pkg/monitoring"
	"skillmaster_backend/pkg/security"
	"skillmaster_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	services        *services
	configCallbacks []func(*config.Config)
}

// RegisterConfigCallback adds a hook invoked when the config file is
// reloaded at runtime.
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

type repositories struct {
	user     *repository.UserRepository
	subject  *repository.SubjectRepository
	skill    *repository.SkillRepository
	module   *repository.ModuleRepository
	lesson   *repository.LessonRepository
	activity *repository.ActivityRepository
	progress *repository.ProgressRepository
}

type services struct {
	auth     *service.AuthService
	storage  *service.StorageService
	catalog  *service.CatalogService
	content  *service.ContentService
	quiz     *service.QuizService
	progress *service.ProgressService
	seed     *service.SeedService
}

type controllers struct {
	auth     *controller.AuthController
	subject  *controller.SubjectController
	skill    *controller.SkillController
	content  *controller.ContentController
	quiz     *controller.QuizController
	progress *controller.ProgressController
	seed     *controller.SeedController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		subject:  repository.NewSubjectRepository(db),
		skill:    repository.NewSkillRepository(db),
		module:   repository.NewModuleRepository(db),
		lesson:   repository.NewLessonRepository(db),
		activity: repository.NewActivityRepository(db),
		progress: repository.NewProgressRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.catalog = service.NewCatalogService(repos.subject, repos.skill)
	s.content = service.NewContentService(repos.module, repos.lesson, repos.activity, s.storage, rdb)

	generator := service.NewOpenAIQuizGenerator(cfg.OpenAI)
	s.quiz = service.NewQuizService(repos.lesson, repos.activity, repos.progress, generator, rdb, db)

	s.progress = service.NewProgressService(repos.progress, repos.lesson, repos.activity)
	s.seed = service.NewSeedService(db)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		subject:  controller.NewSubjectController(s.catalog),
		skill:    controller.NewSkillController(s.catalog),
		content:  controller.NewContentController(s.content),
		quiz:     controller.NewQuizController(s.quiz),
		progress: controller.NewProgressController(s.progress),
		seed:     controller.NewSeedController(s.seed),
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
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

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	svcs := app.initServices(repos, cfg, db, rdb)
	app.services = svcs
	ctrls := app.initControllers(svcs, db)

	if cfg.SeedOnStart {
		if err := svcs.seed.Run(); err != nil {
			logger.Log.Fatal("Failed to seed initial catalog", zap.Error(err))
		}
	}

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("skillmaster-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, ctrls, cfg)

	if cfg.Storage.Type == "local" && cfg.Storage.LocalPath != "" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, os.ModePerm)
		}
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		reloaded, ok := newCfg.(*config.Config)
		if !ok {
			return
		}
		logger.Log.Info("Config reloaded")
		app.Config = reloaded
		for _, cb := range app.configCallbacks {
			cb(reloaded)
		}
	})

	return app
}

func (a *App) Run() {
	defer logger.Log.Sync()

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Info("Server exiting")
}
