package main

import (
	"context"

	"github.com/Behyna/airtime-topup/internal/api"
	v1 "github.com/Behyna/airtime-topup/internal/api/v1"
	"github.com/Behyna/airtime-topup/internal/config"
	"github.com/Behyna/airtime-topup/internal/database"
	apperrors "github.com/Behyna/airtime-topup/internal/errors"
	"github.com/Behyna/airtime-topup/internal/metrics"
	"github.com/Behyna/airtime-topup/internal/repository"
	"github.com/Behyna/airtime-topup/internal/service"
	"github.com/Behyna/airtime-topup/internal/validator"
	"github.com/Behyna/airtime-topup/pkg/httpclient"
	"github.com/Behyna/airtime-topup/pkg/mpesa"
	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const version = "1.0.0"

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			database.NewConnection,

			NewMetrics,
			NewDatabaseCollector,
			NewSystemCollector,
			NewHealthChecker,
			NewXValidator,

			repository.NewSessionRepository,
			repository.NewTransactionRepository,
			repository.NewAuditLogRepository,
			repository.NewTransactionManager,

			NewPaymentGateway,
			service.NewSessionService,
			service.NewTopUpService,

			v1.NewHandler,
			NewFiber,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config, m *metrics.Metrics,
	dbCollector *metrics.DatabaseMetricsCollector, systemCollector *metrics.SystemCollector,
	db *gorm.DB, logger *zap.Logger, lc fx.Lifecycle) {
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))
	api.SetupRoutes(app, handler)
	if cfg.Metrics.Enabled {
		api.SetupMetricsRoute(app, prometheus.DefaultGatherer)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.Metrics.Enabled {
				dbCollector.Start(cfg.Metrics.CollectInterval)
				systemCollector.Start(cfg.Metrics.CollectInterval)
			}

			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("server stopped", zap.Error(err))
				}
			}()

			logger.Info("airtime top-up api started", zap.String("port", cfg.API.Port))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping airtime top-up api")
			if cfg.Metrics.Enabled {
				dbCollector.Stop()
				systemCollector.Stop()
			}

			if err := app.ShutdownWithContext(ctx); err != nil {
				return err
			}

			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
}

func NewFiber(cfg *config.Config, logger *zap.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "airtime-topup",
		ErrorHandler: apperrors.ErrorHandler(logger),
		ProxyHeader:  cfg.API.ProxyHeader,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	})
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}

func NewDatabaseCollector(m *metrics.Metrics, logger *zap.Logger, db *gorm.DB) (*metrics.DatabaseMetricsCollector, error) {
	collector := metrics.NewDatabaseMetricsCollector(m, logger, db)
	if err := db.Use(collector); err != nil {
		return nil, err
	}

	return collector, nil
}

func NewSystemCollector(m *metrics.Metrics, logger *zap.Logger) *metrics.SystemCollector {
	return metrics.NewSystemCollector(m, logger, version)
}

func NewHealthChecker(collector *metrics.DatabaseMetricsCollector) v1.HealthChecker {
	return collector
}

func NewXValidator(m *metrics.Metrics) validator.IXValidator {
	return validator.NewXValidator(playground.New(), m)
}

func NewPaymentGateway(cfg *config.Config) (mpesa.Gateway, error) {
	if err := cfg.Mpesa.Validate(); err != nil {
		return nil, err
	}

	client := httpclient.NewHTTPClient(cfg.Mpesa.Timeout)
	return mpesa.NewGateway(cfg.Mpesa, client), nil
}
