package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Vedant-Rajput22/hostel-complain-info/internal/anchor"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/api"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/auth"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/complaints"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/database"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/storage"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/tasks"
	"github.com/Vedant-Rajput22/hostel-complain-info/pkg/config"
	"github.com/Vedant-Rajput22/hostel-complain-info/pkg/queue"
	"github.com/Vedant-Rajput22/hostel-complain-info/pkg/util"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := util.NewLogger(cfg.Server.Env)
	slog.SetDefault(logger)

	logger.Info("starting hostel portal server",
		"env", cfg.Server.Env,
		"addr", cfg.Server.Addr(),
	)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warn("failed to connect to Redis, verification emails disabled", "error", err)
		redisClient = nil
	}

	var asynqClient *asynq.Client
	var mailEnqueuer auth.MailEnqueuer
	if redisClient != nil {
		asynqClient = queue.NewClient(&cfg.Redis)
		mailEnqueuer = tasks.NewEnqueuer(asynqClient)
	}

	jwtService := auth.NewJWTService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry(),
		cfg.JWT.RefreshExpiry(),
	)
	authService := auth.NewService(db, jwtService, cfg.College.Domain, mailEnqueuer, logger)
	googleOAuth := auth.NewGoogleOAuth(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.CallbackURL)

	var uploader storage.Uploader
	if cfg.S3.Bucket != "" {
		s3Uploader, err := storage.NewS3Uploader(context.Background(), &cfg.S3, logger)
		if err != nil {
			logger.Error("failed to initialise S3 uploader", "error", err)
			os.Exit(1)
		}
		uploader = s3Uploader
	} else {
		logger.Warn("S3_BUCKET not set, complaint images disabled")
	}

	anchorer := anchor.NewLighthouseClient(cfg.Lighthouse.APIKey, cfg.Lighthouse.NodeURL, cfg.Lighthouse.GatewayURL)
	complaintService := complaints.NewService(db, uploader, anchorer, cfg.S3.ImageFolder, logger)

	router := api.NewRouter(api.RouterConfig{
		DB:               db,
		Redis:            redisClient,
		Logger:           logger,
		JWTService:       jwtService,
		AuthService:      authService,
		ComplaintService: complaintService,
		GoogleOAuth:      googleOAuth,
		ClientOrigin:     cfg.College.ClientOrigin,
		SecureCookies:    cfg.Server.IsProduction(),
		RateLimitReqs:    cfg.RateLimit.Requests,
		RateLimitSecs:    cfg.RateLimit.WindowSeconds,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if asynqClient != nil {
		asynqClient.Close()
	}
	if redisClient != nil {
		redisClient.Close()
	}

	sqlDB, _ := db.DB()
	sqlDB.Close()

	logger.Info("server stopped")
}
