// Package metrics provides internal metrics collection.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Load outcome labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Collector records loader activity as Prometheus metrics.
type Collector struct {
	loadsTotal   *prometheus.CounterVec
	recordsTotal *prometheus.CounterVec
	loadDuration *prometheus.HistogramVec
	filesTotal   *prometheus.CounterVec

	logger *zap.Logger
}

// NewCollector registers the loader metrics under namespace with the default
// registry. Each namespace can only be registered once per process.
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.loadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Total number of Load calls",
		},
		[]string{"loader", "status"},
	)

	c.recordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Total number of validated records returned",
		},
		[]string{"loader"},
	)

	c.filesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Total number of files read",
		},
		[]string{"loader"},
	)

	c.loadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Load duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"loader"},
	)

	c.logger.Info("metrics collector initialized", zap.String("namespace", namespace))

	return c
}

// RecordLoad records one finished Load call. records is ignored on failure.
func (c *Collector) RecordLoad(loader string, records int, duration time.Duration, err error) {
	if c == nil {
		return
	}
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	c.loadsTotal.WithLabelValues(loader, status).Inc()
	c.loadDuration.WithLabelValues(loader).Observe(duration.Seconds())
	if err == nil {
		c.recordsTotal.WithLabelValues(loader).Add(float64(records))
	}
}

// RecordFile records one file read by a loader.
func (c *Collector) RecordFile(loader string) {
	if c == nil {
		return
	}
	c.filesTotal.WithLabelValues(loader).Inc()
}
