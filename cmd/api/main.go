package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jeanmvides21/academic-back/internal/app"
	"github.com/jeanmvides21/academic-back/internal/config"
	"github.com/jeanmvides21/academic-back/internal/controller/httpapi"
	"github.com/jeanmvides21/academic-back/internal/repository"
	"github.com/jeanmvides21/academic-back/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting academic-back",
		zap.String("environment", cfg.Environment),
		zap.String("addr", cfg.HTTPAddr))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool, logger)
	slotRepo := repository.NewSlotRepository(pool)
	txManager := repository.NewTxManager(pool)

	userService := service.NewUserService(userRepo, logger)
	subjectService := service.NewSubjectService(subjectRepo, logger)
	slotService := service.NewSlotService(userRepo, subjectRepo, slotRepo, txManager, logger)

	router := httpapi.NewRouter(
		httpapi.NewSlotHandler(slotService, logger),
		httpapi.NewUserHandler(userService, logger),
		httpapi.NewSubjectHandler(subjectService, logger),
		logger,
	)

	server := app.NewServer(cfg.HTTPAddr, router, logger)
	if err := server.Run(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}
