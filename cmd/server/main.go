package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"hillgate/server/config"
	"hillgate/server/internal/api"
	"hillgate/server/internal/database"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	logger.Infof("Using database at: %s", cfg.DatabasePath)
	db, err := database.NewDatabase(cfg.DatabasePath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}

	logger.Info("Running database migrations...")
	if err := database.MigrateSchema(db); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	if err := database.EnsureDefaultAdmin(db, cfg.DefaultAdminUsername, cfg.DefaultAdminPassword, logger); err != nil {
		logger.WithError(err).Fatal("Failed to seed default admin")
	}

	router := api.SetupRouter(db, cfg, logger)

	logger.Infof("Starting server on port %s", cfg.ServerPort)
	if err := router.Run("0.0.0.0:" + cfg.ServerPort); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
