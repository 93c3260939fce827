package app

import (
	"context"
	"healthlearn_backend/internal/config"
	"healthlearn_backend/internal/controller"
	"healthlearn_backend/internal/repository"
	"healthlearn_backend/internal/service"
	"healthlearn_backend/pkg/database"
	"healthlearn_backend/pkg/logger"
	"healthlearn_backend/pkg/monitoring"
	"healthlearn_backend/pkg/security"
	"healthlearn_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
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
	user          *repository.UserRepository
	course        *repository.CourseRepository
	order         *repository.OrderRepository
	favorite      *repository.FavoriteRepository
	rating        *repository.RatingRepository
	sellerRequest *repository.SellerRequestRepository
}

type services struct {
	storage   *service.StorageService
	mailer    service.Mailer
	access    *service.AccessService
	auth      *service.AuthService
	reset     *service.PasswordResetService
	authoring *service.AuthoringService
	course    *service.CourseService
	rating    *service.RatingService
	order     *service.OrderService
	user      *service.UserService
}

type controllers struct {
	auth      *controller.AuthController
	authoring *controller.AuthoringController
	course    *controller.CourseController
	rating    *controller.RatingController
	order     *controller.OrderController
	user      *controller.UserController
	admin     *controller.AdminController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// OnConfigReload applies the hot-reloadable sections of a fresh config.
// Services keep a pointer to a.Config, so updating the fields in place is
// enough for them to pick the new values up.
func (a *App) OnConfigReload(newCfg *config.Config) {
	a.Config.Auth = newCfg.Auth
	a.Config.Authoring = newCfg.Authoring
	a.Config.RateLimit = newCfg.RateLimit

	logger.Log.Info("configuration reloaded")
	for _, callback := range a.configCallbacks {
		callback(newCfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		course:        repository.NewCourseRepository(db),
		order:         repository.NewOrderRepository(db),
		favorite:      repository.NewFavoriteRepository(db),
		rating:        repository.NewRatingRepository(db),
		sellerRequest: repository.NewSellerRequestRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.mailer = service.NewMailer(cfg)
	s.access = service.NewAccessService()
	s.auth = service.NewAuthService(repos.user, cfg)
	s.reset = service.NewPasswordResetService(repos.user, rdb, s.mailer, cfg)
	s.authoring = service.NewAuthoringService(repos.course, cfg)
	s.course = service.NewCourseService(repos.course, repos.order, repos.favorite, s.access, rdb)
	s.rating = service.NewRatingService(repos.rating, repos.course, repos.order, rdb)
	s.order = service.NewOrderService(repos.order, repos.course)
	s.user = service.NewUserService(repos.user, repos.sellerRequest, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth, s.reset),
		authoring: controller.NewAuthoringController(s.authoring, s.storage),
		course:    controller.NewCourseController(s.course, s.auth),
		rating:    controller.NewRatingController(s.rating),
		order:     controller.NewOrderController(s.order),
		user:      controller.NewUserController(s.user),
		admin:     controller.NewAdminController(s.course, s.user),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxReq := cfg.RateLimit.MaxRequests
	if maxReq <= 0 {
		maxReq = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxReq, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
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
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("healthlearn-marketplace", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerShutdown = tp.Shutdown
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
		router.Static("/api/uploads", cfg.Storage.LocalPath)
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Drop the in-memory authoring sessions cleanly before exiting.
	if a.services != nil && a.services.authoring != nil {
		a.services.authoring.Stop()
	}

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
