package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Behyna/airtime-topup/internal/config"
	"github.com/Behyna/airtime-topup/internal/database"
	"github.com/Behyna/airtime-topup/pkg/mysql"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Config error", zap.Error(err))
	}

	flag.Parse()
	args := flag.Args()

	if len(args) < 1 {
		fmt.Println("Error: migration command is required")
		fmt.Println("Usage: go run cmd/migrate/main.go [command] [args]")
		fmt.Println("Commands: up, down, status, redo, version")
		os.Exit(1)
	}

	command := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := database.RunMigrations(ctx, mysql.DSN(cfg.Database), command, logger, args[1:]...); err != nil {
		logger.Fatal("Migration error", zap.Error(err))
	}

	fmt.Println("Migration finished successfully")
}
