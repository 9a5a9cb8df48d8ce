package main

import (
	"context"
	"time"

	"github.com/Behyna/airtime-topup/internal/config"
	"github.com/Behyna/airtime-topup/internal/database"
	"github.com/Behyna/airtime-topup/internal/metrics"
	"github.com/Behyna/airtime-topup/internal/publishers"
	"github.com/Behyna/airtime-topup/internal/repository"
	"github.com/Behyna/airtime-topup/internal/service"
	"github.com/Behyna/airtime-topup/pkg/mq"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,

			database.NewConnection,
			NewMQConnection,
			NewMQPublisher,
			NewMetrics,

			repository.NewAuditLogRepository,

			service.NewAuditQueueService,

			publishers.NewAuditPublisher,
		),
		fx.Invoke(runAuditPublisher),
	).Run()
}

func runAuditPublisher(cfg *config.Config, publisher publishers.AuditPublisher, logger *zap.Logger,
	rabbit *mq.RabbitMQ, mqPublisher mq.Publisher, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	queue := cfg.AuditPublisher.Queue
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareQueues(queue); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			logger.Info("queue declared", zap.String("queue", queue))

			go func() {
				ticker := time.NewTicker(cfg.AuditPublisher.Interval)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						if err := publisher.Publish(appCtx); err != nil {
							logger.Error("failed to publish audit entries", zap.Error(err))
						}
					case <-appCtx.Done():
						logger.Info("publisher context cancelled")
						return
					}
				}
			}()

			logger.Info("audit publisher started", zap.Duration("interval", cfg.AuditPublisher.Interval))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping audit publisher")
			cancel()
			if err := mqPublisher.Close(); err != nil {
				logger.Warn("failed to close publisher channel", zap.Error(err))
			}
			return rabbit.Close()
		},
	})
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}
