package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hillgate/server/config"
	"hillgate/server/internal/auth"
	"hillgate/server/internal/database"
	"hillgate/server/internal/models"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "hillgatectl",
		Short: "Hillgate administration tool",
	}

	rootCmd.AddCommand(
		migrateCmd(),
		createUserCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadEnvironment() (*config.Config, *logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, logger, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadEnvironment()
			if err != nil {
				return err
			}

			db, err := database.NewDatabase(cfg.DatabasePath)
			if err != nil {
				return err
			}
			if err := database.MigrateSchema(db); err != nil {
				return err
			}

			fmt.Println("Migration completed")
			return nil
		},
	}
}

func createUserCmd() *cobra.Command {
	var username, password string
	var admin bool

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a staff account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadEnvironment()
			if err != nil {
				return err
			}

			db, err := database.NewDatabase(cfg.DatabasePath)
			if err != nil {
				return err
			}
			if err := database.MigrateSchema(db); err != nil {
				return err
			}

			authService := auth.NewService(db, cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour, logger)
			user, err := authService.Register(username, password)
			if err != nil {
				return err
			}

			if admin {
				if err := db.Model(&models.User{}).Where("id = ?", user.ID).
					Update("is_admin", true).Error; err != nil {
					return fmt.Errorf("failed to grant admin: %w", err)
				}
			}

			fmt.Printf("Created user %q (id %d)\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username for the new account")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password for the new account")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant admin rights")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
