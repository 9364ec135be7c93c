package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rafabene/tenantbase-backend/internal/domain/entities"
	httphandlers "github.com/rafabene/tenantbase-backend/internal/handlers/http"
	"github.com/rafabene/tenantbase-backend/internal/handlers/middleware"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/cache"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/config"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/logging"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/mail"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/storage"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/token"
	"github.com/rafabene/tenantbase-backend/internal/services"
)

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	var logOutput io.Writer = os.Stdout
	if cfg.Logging.FileLogs {
		logFile, err := logging.OpenLogFile(cfg.Logging.Directory)
		if err != nil {
			log.Fatal("Failed to open log file:", err)
		}
		defer func() { _ = logFile.Close() }()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}
	logger := logging.NewSlogLogger(cfg.Logging.Level, logOutput)
	logger.Info("starting tenantbase backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	// Migrations e seed
	if err := postgres.Migrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		log.Fatal(err)
	}
	if err := postgres.Seed(db, logger); err != nil {
		logger.Error("failed to seed database", "error", err)
		log.Fatal(err)
	}

	// Cache de respostas
	responseCache, err := cache.New(&cfg.Redis, logger)
	if err != nil {
		logger.Error("failed to initialize cache", "error", err)
		log.Fatal(err)
	}

	// Infraestrutura compartilhada
	mailer := mail.NewSMTPSender(&cfg.SMTP, logger)
	tokens := token.NewService(cfg.JWT.Secret, cfg.JWT.Expiry)
	uow := postgres.NewUnitOfWork(db)
	disk := storage.NewDisk(cfg.Upload.Directory, logger)

	// Inicializar repositories
	usersRepo := postgres.NewRepository[entities.User](db,
		postgres.NewDescriptor[entities.User]("Users",
			[]string{"Role", "Tenant"}, []string{"Password", "ResetToken"}), logger)
	filesRepo := postgres.NewRepository[entities.File](db,
		postgres.NewDescriptor[entities.File]("Files", nil, nil), logger)
	conversationsRepo := postgres.NewRepository[entities.Conversation](db,
		postgres.NewDescriptor[entities.Conversation]("Conversations", nil, nil), logger)
	tenantsRepo := postgres.NewRepository[entities.Tenant](db,
		postgres.NewDescriptor[entities.Tenant]("Tenants", nil, nil), logger)
	rolesRepo := postgres.NewRepository[entities.Role](db,
		postgres.NewDescriptor[entities.Role]("Roles", nil, nil), logger)
	errorLogsRepo := postgres.NewRepository[entities.ErrorLog](db,
		postgres.NewDescriptor[entities.ErrorLog]("ErrorLogs", nil, nil), logger)

	// Inicializar services
	usersService := services.NewUsersService(usersRepo, filesRepo, conversationsRepo,
		tenantsRepo, rolesRepo, uow, disk, cfg.Security.BcryptCost, logger)
	filesService := services.NewFilesService(filesRepo, disk, cfg.Security.BcryptCost, logger)
	conversationsService := services.NewConversationsService(conversationsRepo, cfg.Security.BcryptCost, logger)
	authService := services.NewAuthService(usersRepo, usersService, tokens, mailer,
		uow, cfg.Server.AppURL, logger)
	healthService := services.NewHealthService(db, responseCache, cfg.Logging.Directory, logger)

	// Inicializar handlers
	usersHandler := httphandlers.NewUsersHandler(usersService)
	filesHandler := httphandlers.NewFilesHandler(filesService)
	conversationsHandler := httphandlers.NewConversationsHandler(conversationsService)
	authHandler := httphandlers.NewAuthHandler(authService)
	healthHandler := httphandlers.NewHealthHandler(healthService)

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recover(logger))
	router.Use(middleware.ErrorHandler(cfg, errorLogsRepo, logger))

	// Middleware CORS
	corsConfig := cors.DefaultConfig()
	if cfg.CORS.AllowedOrigins == "" || cfg.CORS.AllowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.CORS.AllowedOrigins}
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	auth := middleware.Auth(tokens)
	cached := middleware.ResponseCache(responseCache, cfg.Cache.TTL)

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Health
		health := v1.Group("/health")
		{
			health.GET("", healthHandler.Check)
			health.POST("/clear-cache", auth, healthHandler.ClearCache)
			health.POST("/clear-logs", auth, healthHandler.ClearLogs)
		}

		// Auth
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/logout", authHandler.Logout)
			authRoutes.POST("/extend-token", authHandler.ExtendToken)
			authRoutes.POST("/forgot-password", authHandler.ForgotPassword)
			authRoutes.POST("/reset-password", authHandler.ResetPassword)
		}

		// Users
		users := v1.Group("/users", auth)
		{
			users.GET("", cached, usersHandler.GetAll)
			users.GET("/:id", usersHandler.GetByID)
			users.GET("/email/:email", usersHandler.GetByEmail)
			users.POST("", usersHandler.Create)
			users.POST("/find", usersHandler.FindByQuery)
			users.POST("/import", usersHandler.Import)
			users.GET("/export", usersHandler.Export)
			users.PUT("/:id", usersHandler.Update)
			users.DELETE("/bulk", usersHandler.DeleteMany)
			users.DELETE("/:id", usersHandler.Delete)
		}

		// Files
		files := v1.Group("/files", auth)
		{
			files.GET("", cached, filesHandler.GetAll)
			files.GET("/:id", filesHandler.GetByID)
			files.GET("/user/:userId", filesHandler.GetByUser)
			files.POST("", filesHandler.Upload)
			files.POST("/find", filesHandler.FindByQuery)
			files.POST("/import", filesHandler.Import)
			files.GET("/export", filesHandler.Export)
			files.PUT("/:id", filesHandler.Update)
			files.DELETE("/bulk", filesHandler.DeleteMany)
			files.DELETE("/:id", filesHandler.Delete)
		}

		// Conversations
		conversations := v1.Group("/conversations", auth)
		{
			conversations.GET("", cached, conversationsHandler.GetAll)
			conversations.GET("/:id", conversationsHandler.GetByID)
			conversations.GET("/user/:userId", conversationsHandler.GetByUser)
			conversations.POST("", conversationsHandler.Create)
			conversations.POST("/find", conversationsHandler.FindByQuery)
			conversations.PUT("/:id", conversationsHandler.Update)
			conversations.DELETE("/bulk", conversationsHandler.DeleteMany)
			conversations.DELETE("/:id", conversationsHandler.Delete)
		}
	}

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
