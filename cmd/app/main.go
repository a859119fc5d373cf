package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"freight/cmd"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatalf("freight: %v", err)
	}
}

func rootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "freight",
		Short:         "Freight allocation engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(serveCmd(&envFile), migrateCmd(&envFile), rolloverCmd(&envFile))
	return root
}

// bootstrap loads configuration, builds the logger and opens the database.
func bootstrap(envFile string) (cmd.Config, *gorm.DB, *slog.Logger, error) {
	config, err := cmd.LoadConfig(envFile)
	if err != nil {
		return cmd.Config{}, nil, nil, fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.LogLevel}))
	slog.SetDefault(logger)

	db, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return cmd.Config{}, nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	return config, db, logger, nil
}
