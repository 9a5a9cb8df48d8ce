package metrics

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DatabaseMetricsCollector publishes connection pool gauges and backs the
// health endpoint.
type DatabaseMetricsCollector struct {
	metrics *Metrics
	logger  *zap.Logger
	sqlDB   *sql.DB
	ticker  *time.Ticker
	stopCh  chan struct{}
}

func NewDatabaseMetricsCollector(metrics *Metrics, logger *zap.Logger, db *gorm.DB) *DatabaseMetricsCollector {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get sql.DB from gorm.DB", zap.Error(err))
		metrics.RecordDBConnectionError()
	}

	return &DatabaseMetricsCollector{
		metrics: metrics,
		logger:  logger,
		sqlDB:   sqlDB,
		stopCh:  make(chan struct{}),
	}
}

func (dmc *DatabaseMetricsCollector) Start(interval time.Duration) {
	if dmc.sqlDB == nil {
		dmc.logger.Warn("Cannot start database metrics collector: sqlDB is nil")
		return
	}

	dmc.ticker = time.NewTicker(interval)
	go dmc.collectLoop()
	dmc.logger.Info("Database metrics collector started", zap.Duration("interval", interval))
}

func (dmc *DatabaseMetricsCollector) Stop() {
	if dmc.ticker != nil {
		dmc.ticker.Stop()
	}
	close(dmc.stopCh)
	dmc.logger.Info("Database metrics collector stopped")
}

func (dmc *DatabaseMetricsCollector) collectLoop() {
	dmc.collect()

	for {
		select {
		case <-dmc.ticker.C:
			dmc.collect()
		case <-dmc.stopCh:
			return
		}
	}
}

func (dmc *DatabaseMetricsCollector) collect() {
	if dmc.sqlDB == nil {
		return
	}

	stats := dmc.sqlDB.Stats()
	dmc.metrics.DBConnectionsInUse.Set(float64(stats.InUse))
	dmc.metrics.DBConnectionsIdle.Set(float64(stats.Idle))

	dmc.logger.Debug("Database connection stats", zap.Any("pool", poolStats(stats)))
}

func poolStats(stats sql.DBStats) map[string]interface{} {
	return map[string]interface{}{
		"open_connections":   stats.OpenConnections,
		"connections_in_use": stats.InUse,
		"idle_connections":   stats.Idle,
		"wait_count":         stats.WaitCount,
		"wait_duration_ms":   stats.WaitDuration.Milliseconds(),
	}
}

const queryStartKey = "metrics:query_start"

// WithMetrics times fn and records it under operation and table.
func (dmc *DatabaseMetricsCollector) WithMetrics(operation, table string, fn func() error) error {
	start := time.Now()
	err := fn()
	dmc.observe(operation, table, err, time.Since(start))

	return err
}

// Name and Initialize make the collector a gorm plugin that times every
// statement issued through the connection.
func (dmc *DatabaseMetricsCollector) Name() string {
	return "airtime:query_metrics"
}

func (dmc *DatabaseMetricsCollector) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	return errors.Join(
		cb.Create().Before("gorm:create").Register("metrics:start_create", startQueryTimer),
		cb.Create().After("gorm:create").Register("metrics:observe_create", dmc.observeQuery("create")),
		cb.Query().Before("gorm:query").Register("metrics:start_query", startQueryTimer),
		cb.Query().After("gorm:query").Register("metrics:observe_query", dmc.observeQuery("select")),
		cb.Update().Before("gorm:update").Register("metrics:start_update", startQueryTimer),
		cb.Update().After("gorm:update").Register("metrics:observe_update", dmc.observeQuery("update")),
		cb.Delete().Before("gorm:delete").Register("metrics:start_delete", startQueryTimer),
		cb.Delete().After("gorm:delete").Register("metrics:observe_delete", dmc.observeQuery("delete")),
		cb.Row().Before("gorm:row").Register("metrics:start_row", startQueryTimer),
		cb.Row().After("gorm:row").Register("metrics:observe_row", dmc.observeQuery("row")),
		cb.Raw().Before("gorm:raw").Register("metrics:start_raw", startQueryTimer),
		cb.Raw().After("gorm:raw").Register("metrics:observe_raw", dmc.observeQuery("raw")),
	)
}

func startQueryTimer(db *gorm.DB) {
	db.InstanceSet(queryStartKey, time.Now())
}

func (dmc *DatabaseMetricsCollector) observeQuery(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		value, ok := db.InstanceGet(queryStartKey)
		if !ok {
			return
		}

		start, ok := value.(time.Time)
		if !ok {
			return
		}

		dmc.observe(operation, db.Statement.Table, db.Error, time.Since(start))
	}
}

// observe records one statement. Statements slower than 100ms are logged.
func (dmc *DatabaseMetricsCollector) observe(operation, table string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = "not_found"
		}
	}

	dmc.metrics.RecordDBQuery(operation, table, status, duration)

	if duration > 100*time.Millisecond {
		dmc.logger.Warn("Slow database query",
			zap.String("operation", operation),
			zap.String("table", table),
			zap.String("status", status),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
	}
}

func (dmc *DatabaseMetricsCollector) HealthCheck(ctx context.Context) error {
	if dmc.sqlDB == nil {
		dmc.metrics.RecordDBConnectionError()
		return sql.ErrConnDone
	}

	return dmc.WithMetrics("ping", "health_check", func() error {
		return dmc.sqlDB.PingContext(ctx)
	})
}

// DatabaseInfo describes the pool for the health endpoint.
func (dmc *DatabaseMetricsCollector) DatabaseInfo() map[string]interface{} {
	info := map[string]interface{}{"driver": "mysql"}
	if dmc.sqlDB != nil {
		info["connection_stats"] = poolStats(dmc.sqlDB.Stats())
	}

	return info
}
