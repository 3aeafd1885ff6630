package main

import (
	"fmt"
	"os"

	"github.com/jatochnietverkeerd/dd-sub000/internal/database"
	"github.com/jatochnietverkeerd/dd-sub000/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "dealerctl",
	Short: "dealerctl - back-office maintenance CLI for the dealership API",
	Long: `dealerctl provides maintenance commands that run against the same
database as the dealership API: seeding the first admin account and
verifying the persisted finance figures.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// configs/.env is optional; real env vars win anyway
		_ = godotenv.Load("configs/.env")
		return logger.Setup(logger.FromEnv())
	},
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func openDB() (*gorm.DB, error) {
	dsn := "postgres://" + envOr("DB_USER", "postgres") + ":" + envOr("DB_PASSWORD", "postgres") +
		"@" + envOr("DB_HOST", "localhost") + ":" + envOr("DB_PORT", "5432") +
		"/" + envOr("DB_NAME", "postgres") + "?sslmode=" + envOr("DB_SSLMODE", "disable")
	return database.NewConnection(dsn)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
