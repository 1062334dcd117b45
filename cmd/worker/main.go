package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/Vedant-Rajput22/hostel-complain-info/internal/mailer"
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

	logger.Info("starting hostel portal worker")

	srv := queue.NewServer(&cfg.Redis, 10)

	handler := tasks.NewHandler(mailer.New(&cfg.SMTP), logger)

	mux := asynq.NewServeMux()
	handler.RegisterHandlers(mux)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down worker...")
		srv.Shutdown()
		cancel()
	}()

	logger.Info("worker started, waiting for tasks...")

	if err := srv.Run(mux); err != nil {
		logger.Error("worker error", "error", err)
	}

	<-ctx.Done()

	logger.Info("worker stopped")
}
