package main

import (
	"context"
	"log"
	"time"

	"watch-store/cmd"
	"watch-store/internal/data/repository"
	"watch-store/internal/usecase"
	"watch-store/internal/wire"
	"watch-store/pkg/database"
	"watch-store/pkg/mailer"
	"watch-store/pkg/media"
	"watch-store/pkg/redisx"
	"watch-store/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Redis backs the OTP resend cooldown; the app starts without it
	rdb := redisx.New(config.Redis.Addr)
	defer rdb.Close()

	mail := mailer.NewSender(config.Email, logger)

	mediaStore, err := media.NewStore(config.Media, logger)
	if err != nil {
		logger.Fatal("Failed to init media store", zap.Error(err))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, rdb, mail, mediaStore, logger)

	// Periodic cleanup of expired codes and refresh tokens
	sweeper := usecase.NewOTPService(repos, rdb, mail, config, logger)
	go runSweeper(sweeper, config.OTP.SweepIntervalMins, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}

func runSweeper(svc usecase.OTPService, intervalMins int, logger *zap.Logger) {
	if intervalMins < 1 {
		intervalMins = 15
	}

	ticker := time.NewTicker(time.Duration(intervalMins) * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := svc.Sweep(ctx); err != nil {
			logger.Error("Sweep failed", zap.Error(err))
		}
		cancel()
	}
}
