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

	"github.com/gin-gonic/gin"

	"github.com/Harshkesharwani789/wave-backend/internal/cache"
	"github.com/Harshkesharwani789/wave-backend/internal/config"
	"github.com/Harshkesharwani789/wave-backend/internal/domain"
	"github.com/Harshkesharwani789/wave-backend/internal/events"
	"github.com/Harshkesharwani789/wave-backend/internal/handler"
	"github.com/Harshkesharwani789/wave-backend/internal/hub"
	"github.com/Harshkesharwani789/wave-backend/internal/otp"
	"github.com/Harshkesharwani789/wave-backend/internal/repository"
	"github.com/Harshkesharwani789/wave-backend/internal/service"
	"github.com/Harshkesharwani789/wave-backend/internal/sms"
	"github.com/Harshkesharwani789/wave-backend/pkg/database"
	pkglog "github.com/Harshkesharwani789/wave-backend/pkg/log"
	"github.com/Harshkesharwani789/wave-backend/pkg/middleware"
	"github.com/Harshkesharwani789/wave-backend/pkg/storage"
	"github.com/Harshkesharwani789/wave-backend/pkg/token"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		pkglog.L().Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})
	logger := pkglog.L()

	// Connect to database using GORM
	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Auto-migrate
	err = database.AutoMigrate(db,
		&domain.BookingModel{},
		&domain.ChatSessionModel{},
		&domain.ChatMessageModel{},
		&domain.PartnerModel{},
		&domain.ServiceCategoryModel{},
		&domain.ServiceModel{},
		&domain.SubServiceModel{},
		&domain.BannerModel{},
		&domain.ReviewModel{},
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to auto-migrate")
	}
	logger.Info().Msg("database migration completed")

	// Repositories
	bookingRepo := repository.NewGormBookingRepository(db)
	chatRepo := repository.NewGormChatRepository(db)
	partnerRepo := repository.NewGormPartnerRepository(db)
	catalogRepo := repository.NewGormCatalogRepository(db)
	bannerRepo := repository.NewGormBannerRepository(db)
	reviewRepo := repository.NewGormReviewRepository(db)

	// OTP store
	otpStore, err := otp.NewRedisStore(cfg.Redis, "otp")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis for otp store")
	}
	defer otpStore.Close()

	// Catalog cache
	catalogCache, err := cache.NewRedisCatalogCache(cfg.Redis, "catalog")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis for catalog cache")
	}
	defer catalogCache.Close()
	logger.Info().Msg("redis connected")

	// File storage
	files, err := newStorage(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize file storage")
	}

	// SMS sender
	var sender sms.Sender
	if cfg.SMS.GatewayURL != "" {
		sender = sms.NewHTTPGatewaySender(cfg.SMS)
	} else {
		sender = sms.NewLogSender()
		logger.Warn().Msg("no sms gateway configured, using log sender")
	}

	// Booking event producer
	var producer events.Producer
	if cfg.Kafka.Enabled {
		producer, err = events.NewConfluentProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.Partitions)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create kafka producer")
		}
		logger.Info().Str("topic", cfg.Kafka.Topic).Msg("kafka producer connected")
	} else {
		producer = events.NewNoopProducer()
	}
	defer producer.Close()

	// Token manager
	tokens, err := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create token manager")
	}

	// Chat hub
	chatHub := hub.NewHub(cfg.WebSocket)
	go chatHub.Run()

	// Services
	chatService := service.NewChatService(chatHub, bookingRepo, chatRepo)
	bookingService := service.NewBookingService(bookingRepo, catalogRepo, partnerRepo, producer)
	partnerService := service.NewPartnerService(partnerRepo, otpStore, sender, tokens, files, cfg.OTP)
	catalogService := service.NewCatalogService(catalogRepo, catalogCache, files, cfg.Catalog)
	bannerService := service.NewBannerService(bannerRepo, files)
	reviewService := service.NewReviewService(reviewRepo, bookingRepo)

	// Middleware and handlers
	auth := middleware.NewAuthMiddleware(tokens)

	wsHandler := handler.NewWSHandler(chatHub, chatService, cfg.WebSocket)
	partnerHandler := handler.NewPartnerHandler(partnerService, bookingService, auth)
	bookingHandler := handler.NewBookingHandler(bookingService, reviewService, auth)
	adminHandler := handler.NewAdminHandler(partnerService, bookingService, catalogService, bannerService, reviewService, auth)
	publicHandler := handler.NewPublicHandler(catalogService, bannerService, reviewService)

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	wsHandler.RegisterRoutes(r)
	partnerHandler.RegisterRoutes(r)
	bookingHandler.RegisterRoutes(r)
	adminHandler.RegisterRoutes(r)
	publicHandler.RegisterRoutes(r)

	// Start server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("wave-backend starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case "s3":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return storage.NewS3Storage(ctx, cfg.Storage.S3)
	default:
		return storage.NewLocalStorage(cfg.Storage.Local)
	}
}
