package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const migrationsDir = "migrations"

// RunMigrations applies a goose command (up, down, status, redo, version...)
// against the MySQL database at dsn.
func RunMigrations(ctx context.Context, dsn string, command string, logger *zap.Logger, args ...string) error {
	migrationCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("sql open: %w", err)
	}
	defer func() { _ = db.Close() }()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(zap.NewStdLog(logger))

	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	logger.Info("Starting migrations", zap.String("command", command), zap.Strings("args", args))

	if err := goose.RunContext(migrationCtx, command, db, migrationsDir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}

	return nil
}
