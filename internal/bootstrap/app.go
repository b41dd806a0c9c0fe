// Package bootstrap loads configuration, wires every component together
// and owns the HTTP server lifecycle.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	httpHandler "chatroom-registry/internal/handler/http"
	gormpersistence "chatroom-registry/internal/infra/persistence/gorm"
	"chatroom-registry/internal/infra/setup"
	"chatroom-registry/internal/middleware"
	"chatroom-registry/internal/service"
)

// Config holds the process-wide settings, loaded once at startup.
type Config struct {
	DBUser          string
	DBPassword      string
	DBHost          string
	DBPort          string
	DBName          string
	JWTSecret       string
	JWTExpiryHours  int
	ServerPort      string
	LogLevel        string
	AppEnv          string
	TemplateGlob    string
	StaticDir       string
	DeleteErrorMode service.DeleteErrorMode
}

// LoadConfig reads configuration from the environment, with a .env file
// as an optional source. JWT_SECRET is the only setting without a
// default: the signing key must never be invented by the process.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // .env is optional, plain env vars win

	cfg := &Config{
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          os.Getenv("DB_PORT"),
		DBName:          os.Getenv("DB_NAME"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		ServerPort:      os.Getenv("SERVER_PORT"),
		LogLevel:        os.Getenv("LOG_LEVEL"),
		AppEnv:          os.Getenv("APP_ENV"),
		TemplateGlob:    os.Getenv("TEMPLATE_GLOB"),
		StaticDir:       os.Getenv("STATIC_DIR"),
		DeleteErrorMode: service.DeleteErrorMode(os.Getenv("DELETE_ERROR_MODE")),
		JWTExpiryHours:  24,
	}

	if hoursStr := os.Getenv("JWT_EXPIRY_HOURS"); hoursStr != "" {
		hours, err := strconv.Atoi(hoursStr)
		if err != nil || hours <= 0 {
			return nil, fmt.Errorf("invalid JWT_EXPIRY_HOURS %q", hoursStr)
		}
		cfg.JWTExpiryHours = hours
	}

	if cfg.DBHost == "" {
		cfg.DBHost = "127.0.0.1"
	}
	if cfg.DBPort == "" {
		cfg.DBPort = "3306"
	}
	if cfg.DBName == "" {
		cfg.DBName = "chat_registry"
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.TemplateGlob == "" {
		cfg.TemplateGlob = "web/templates/*.html"
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = "web/static"
	}
	if cfg.DeleteErrorMode == "" {
		cfg.DeleteErrorMode = service.DeleteErrorUnified
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("environment variable JWT_SECRET must be set")
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// App holds the assembled application.
type App struct {
	Config     *Config
	Log        *logrus.Logger
	DB         *gorm.DB
	Router     *gin.Engine
	HttpServer *http.Server
}

// NewApp loads configuration and wires all components: logger, database
// and migration, repositories, services, handlers, router and server.
func NewApp() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	log := newLogger(cfg)
	log.Info("Configuration loaded successfully")

	log.Info("Initializing infrastructure...")
	db, err := setup.InitDB(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to init DB: %w", err)
	}
	log.Info("Database initialized")

	if err := setup.MigrateDB(db); err != nil {
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}
	log.Info("Database migrated")

	userRepo := gormpersistence.NewGormUserRepository(db)
	roomRepo := gormpersistence.NewGormRoomRepository(db)
	log.Info("Repositories initialized")

	tokens, err := service.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to create TokenManager: %w", err)
	}
	authService := service.NewAuthService(userRepo, tokens)
	roomService := service.NewRoomService(roomRepo, cfg.DeleteErrorMode)
	log.Info("Services initialized")

	authHandler := httpHandler.NewAuthHandler(authService)
	roomHandler := httpHandler.NewRoomHandler(roomService)
	log.Info("Handlers initialized")

	router := newRouter(cfg, log, tokens, authService, authHandler, roomHandler)
	log.Info("Router setup complete")

	httpServer := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	return &App{
		Config:     cfg,
		Log:        log,
		DB:         db,
		Router:     router,
		HttpServer: httpServer,
	}, nil
}

func newLogger(cfg *Config) *logrus.Logger {
	log := logrus.New()
	if cfg.AppEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, ForceColors: true})
	}
	logLevel, _ := logrus.ParseLevel(cfg.LogLevel) // validated by LoadConfig
	log.SetLevel(logLevel)
	log.SetOutput(os.Stdout)
	return log
}

func newRouter(
	cfg *Config,
	log *logrus.Logger,
	tokens *service.TokenManager,
	authService *service.AuthService,
	authHandler *httpHandler.AuthHandler,
	roomHandler *httpHandler.RoomHandler,
) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(LoggerMiddleware(log))

	router.LoadHTMLGlob(cfg.TemplateGlob)
	router.Static("/static", cfg.StaticDir)

	authGate := middleware.Auth(tokens, authService)

	router.GET("/", middleware.OptionalAuth(tokens, authService), authHandler.Index)
	router.GET("/register", authHandler.RegisterPage)
	router.POST("/register", authHandler.Register)
	router.GET("/login", authHandler.LoginPage)
	router.POST("/login", authHandler.Login)
	router.GET("/me", authGate, authHandler.Me)
	router.GET("/logout", authHandler.Logout)

	rooms := router.Group("/rooms").Use(authGate)
	{
		rooms.GET("", roomHandler.List)
		rooms.POST("", roomHandler.Create)
		rooms.GET("/:id", roomHandler.View)
		rooms.DELETE("/:id", roomHandler.Delete)
	}

	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })

	return router
}

// Start runs the HTTP server in a background goroutine.
func (a *App) Start() {
	go func() {
		a.Log.Infof("HTTP server starting to listen on %s", a.HttpServer.Addr)
		if err := a.HttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
}

// Shutdown drains in-flight requests and releases connections.
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HttpServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully.")
	}

	if sqlDB, err := a.DB.DB(); err == nil && sqlDB != nil {
		if err := sqlDB.Close(); err != nil {
			a.Log.Errorf("Error closing database connection: %v", err)
		} else {
			a.Log.Info("Database connection closed.")
		}
	}

	a.Log.Info("Application shutdown complete.")
}

// LoggerMiddleware records one structured log line per request.
func LoggerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		latency := time.Since(startTime)
		statusCode := c.Writer.Status()
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		entry := log.WithFields(logrus.Fields{
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        path,
			"request_id":  c.GetString(middleware.ContextRequestIDKey),
		})

		if errorMessage != "" {
			entry.Error(errorMessage)
		} else if statusCode >= 500 {
			entry.Error("Server error")
		} else if statusCode >= 400 {
			entry.Warn("Client error")
		} else {
			entry.Info("Request handled")
		}
	}
}
