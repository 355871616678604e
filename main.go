// main.go
package main

import (
	"log"
	"time"

	"passwordless-auth/cmd"
	"passwordless-auth/internal/data/repository"
	"passwordless-auth/internal/notify"
	"passwordless-auth/internal/wire"
	"passwordless-auth/pkg/database"
	"passwordless-auth/pkg/utils"

	"github.com/redis/go-redis/v9"
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
		zap.String("token_store", config.Token.Store),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Callback tokens can live in redis instead of postgres
	if config.Token.Store == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		window := time.Duration(config.Token.ExpiryMinutes) * time.Minute
		repos.CallbackToken = repository.NewRedisCallbackTokenRepository(client, window, logger)

		logger.Info("Using redis callback token store", zap.String("addr", config.Redis.Addr))
	}

	// Delivery senders per alias channel
	senders := notify.NewSenders(config, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, senders, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
