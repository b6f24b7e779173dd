package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	gormlogger "gorm.io/gorm/logger"

	"meetconnect/docs"
	"meetconnect/internal/auth"
	"meetconnect/internal/cache"
	"meetconnect/internal/config"
	"meetconnect/internal/db"
	"meetconnect/internal/handler"
	"meetconnect/internal/logger"
	"meetconnect/internal/middleware"
	"meetconnect/internal/notify"
	"meetconnect/internal/repository"
	"meetconnect/internal/router"
	"meetconnect/internal/service"
)

//go:generate swag init -g cmd/server/main.go -d ../../ -o ../../docs

// @title MeetConnect API
// @version 1.0
// @description Interview scheduling API with JWT authentication, Google sign-in and a practice-resource catalogue.
// @host localhost:5001
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	if err := config.LoadDotenv(*envFile); err != nil {
		log.Fatalf("load %s: %v", *envFile, err)
	}
	cfg := config.Load()

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Log.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Log.Fatalw("invalid configuration", "error", err)
	}

	gormLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		gormLevel = gormlogger.Info
	}
	gormDB, err := db.NewMySQL(cfg.MySQLDSN, db.Options{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		LogLevel:     gormLevel,
	})
	if err != nil {
		logger.Log.Fatalw("database init", "error", err)
	}
	if cfg.ResetDB {
		logger.Log.Warnw("RESET_DB set, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		logger.Log.Fatalw("migrate", "error", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(context.Background()); err != nil {
		logger.Log.Warnw("redis unreachable, token revocation disabled until it recovers", "addr", cfg.RedisAddr, "error", err)
	}

	// Repositories
	accountRepo := repository.NewAccountRepository(gormDB)
	interviewRepo := repository.NewInterviewRepository(gormDB)
	resourceRepo := repository.NewResourceRepository(gormDB)

	// Auth components
	tokens := auth.NewTokenService(cfg.JWTSecret)
	hasher := auth.NewPasswordHasher(0)
	revocations := auth.NewRevocationStore(cacheClient)
	verifier := newFederatedVerifier(cfg)

	var notifier notify.ResetNotifier = notify.LogNotifier{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaNotifier := notify.NewKafkaNotifier(notify.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaResetTopic))
		defer kafkaNotifier.Close()
		notifier = kafkaNotifier
		logger.Log.Infow("reset notifications via kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaResetTopic)
	}

	// Services
	authService := service.NewAuthService(accountRepo, hasher, tokens, verifier, revocations, notifier, cacheClient, service.AuthOptions{
		SessionTTL:       cfg.SessionTokenTTL,
		ResetTTL:         cfg.ResetTokenTTL,
		ExposeResetToken: cfg.IsDevelopment(),
	})
	userService := service.NewUserService(accountRepo, cacheClient)
	interviewService := service.NewInterviewService(interviewRepo)
	resourceService := service.NewResourceService(resourceRepo)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, logger.Log, middleware.NewAuthenticator(tokens, accountRepo, revocations), router.Handlers{
		Auth:      handler.NewAuthHandler(authService, userService),
		User:      handler.NewUserHandler(userService),
		Interview: handler.NewInterviewHandler(interviewService),
		Resource:  handler.NewResourceHandler(resourceService),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	logger.Log.Infow("swagger documentation", "url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalw("server start", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Log.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("server shutdown", "error", err)
	}
}

func newFederatedVerifier(cfg *config.Config) auth.FederatedIdentityVerifier {
	issuer, audience, err := cfg.Federated()
	if err != nil {
		logger.Log.Fatalw("federated sign-in configuration", "error", err)
	}
	if issuer == "" {
		logger.Log.Warnw("federated sign-in disabled, no issuer configured")
		return auth.DisabledVerifier{}
	}

	verifier, err := auth.NewOIDCVerifier(issuer, audience)
	if err != nil {
		logger.Log.Fatalw("federated sign-in init", "error", err)
	}
	logger.Log.Infow("federated sign-in enabled", "issuer", issuer)
	return verifier
}
