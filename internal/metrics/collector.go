package metrics

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

// SystemCollector collects process-level metrics on a ticker.
type SystemCollector struct {
	metrics   *Metrics
	logger    *zap.Logger
	startTime time.Time
	version   string
	ticker    *time.Ticker
	stopCh    chan struct{}
}

func NewSystemCollector(metrics *Metrics, logger *zap.Logger, version string) *SystemCollector {
	return &SystemCollector{
		metrics:   metrics,
		logger:    logger,
		startTime: time.Now(),
		version:   version,
		stopCh:    make(chan struct{}),
	}
}

func (sc *SystemCollector) Start(interval time.Duration) {
	sc.ticker = time.NewTicker(interval)

	sc.metrics.SetServiceVersion(sc.version, "unknown", sc.startTime.Format("2006-01-02"))

	go sc.collectLoop()
	sc.logger.Info("System metrics collector started", zap.Duration("interval", interval))
}

func (sc *SystemCollector) Stop() {
	if sc.ticker != nil {
		sc.ticker.Stop()
	}
	close(sc.stopCh)
	sc.logger.Info("System metrics collector stopped")
}

func (sc *SystemCollector) collectLoop() {
	sc.collect()

	for {
		select {
		case <-sc.ticker.C:
			sc.collect()
		case <-sc.stopCh:
			return
		}
	}
}

func (sc *SystemCollector) collect() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	sc.metrics.UpdateSystemMetrics(time.Since(sc.startTime), &memStats)
}
