package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/examguard/config"
	"github.com/lshigami/examguard/database"
	_ "github.com/lshigami/examguard/docs" // Swagger docs
	"github.com/lshigami/examguard/internal/auth"
	accountctrl "github.com/lshigami/examguard/internal/controller/account"
	adminctrl "github.com/lshigami/examguard/internal/controller/admin"
	userctrl "github.com/lshigami/examguard/internal/controller/user"
	"github.com/lshigami/examguard/internal/logger"
	"github.com/lshigami/examguard/internal/middleware"
	"github.com/lshigami/examguard/internal/notifier"
	"github.com/lshigami/examguard/internal/repository"
	"github.com/lshigami/examguard/internal/service"
	"github.com/lshigami/examguard/internal/storage"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Exam Guard API
// @version 1.0
// @description Proctored HTML tests: sessions, results, focus tracking and screenshots relayed to Telegram.
// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Infrastructure
		fx.Provide(
			auth.NewTokenManager,
			storage.NewLocalStore,
			storage.NewMediaStore,
			notifier.NewTelegramNotifier,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewTestRepository,
			repository.NewResultRepository,
			repository.NewFocusLogRepository,
			repository.NewScreenshotRepository,
		),

		fx.Provide(
			service.NewAuthService,
			service.NewUserTestService,
			service.NewAdminTestService,
			service.NewResultService,
			service.NewProctoringService,
			service.NewScreenshotService,
		),

		fx.Provide(
			middleware.NewAuth,
			accountctrl.NewAccountController,
			adminctrl.NewAdminTestController,
			userctrl.NewUserTestController,
		),

		fx.Invoke(logger.Configure),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		requestID, _ := param.Keys["request_id"].(string)
		log.Info().
			Str("request_id", requestID).
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())

	origins := cfg.Server.CORSAllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: !(len(origins) == 1 && origins[0] == "*"),
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// RegisterRoutesAndStartServer configures routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	gate *middleware.Auth,
	accountCtrl *accountctrl.AccountController,
	adminTestCtrl *adminctrl.AdminTestController,
	userTestCtrl *userctrl.UserTestController,
) {
	router.GET("/", func(ctx *gin.Context) {
		ctx.Redirect(http.StatusFound, "/tests")
	})
	router.GET("/login", accountCtrl.LoginForm)
	router.POST("/login", accountCtrl.Login)
	router.Any("/logout", accountCtrl.Logout)

	// Pages redirect to /login when there is no session.
	pages := router.Group("", gate.RequireSession(middleware.ModePage))
	{
		pages.GET("/tests", userTestCtrl.ListTests)
		pages.GET("/test/:id/start", userTestCtrl.StartTest)
		pages.GET("/test/:id/file", userTestCtrl.ServeTestFile)
	}

	// The player's endpoints answer 403 instead of redirecting.
	player := router.Group("/test/:id", gate.RequireSession(middleware.ModeAPI))
	{
		player.Any("/submit", userTestCtrl.SubmitTest)
		player.Any("/save-focus", userTestCtrl.SaveFocus)
		player.Any("/screenshot", userTestCtrl.SaveScreenshot)
	}

	admin := router.Group("", gate.RequireSession(middleware.ModePage), gate.RequireSuperuser(middleware.ModePage))
	{
		admin.GET("/dashboard", adminTestCtrl.Dashboard)
		admin.GET("/tests/upload", adminTestCtrl.UploadForm)
		admin.POST("/tests/upload", adminTestCtrl.UploadTest)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Exam Guard server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database auto-migrations...")
	if err := database.AutoMigrate(db); err != nil {
		log.Error().Err(err).Msg("Failed to auto-migrate database")
		return err
	}
	log.Info().Msg("Database auto-migration completed successfully.")
	return nil
}
