package prometheus

import (
	"strconv"
	"time"

	"github.com/dttrue/mabels-pawfect-sub001/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthErrorsCounter prometheus.Counter

	// Soft-delete lifecycle metrics
	LifecycleOperationsCounter prometheus.CounterVec
	UndoExpiredCounter         prometheus.CounterVec

	// Hard-purge sweep metrics
	PurgedRowsCounter      prometheus.CounterVec
	PurgeFailuresCounter   prometheus.CounterVec
	SweepDurationHistogram prometheus.Histogram

	// Inventory metrics
	InventoryOperationsCounter prometheus.CounterVec
	InventoryOnHandGauge       prometheus.GaugeVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	// Use metric prefix from configuration
	prefix := cfg.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Authentication metrics
	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
	)

	// Soft-delete lifecycle metrics
	LifecycleOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_lifecycle_operations_total",
			Help: "Total number of soft-delete and undo operations",
		},
		[]string{"entity", "operation"},
	)

	UndoExpiredCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_undo_window_expired_total",
			Help: "Total number of undo attempts rejected past the recovery window",
		},
		[]string{"entity"},
	)

	// Hard-purge sweep metrics
	PurgedRowsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_purged_rows_total",
			Help: "Total number of rows hard-purged after the recovery window",
		},
		[]string{"entity"},
	)

	PurgeFailuresCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_purge_failures_total",
			Help: "Total number of purge candidates skipped due to remote asset errors",
		},
		[]string{"entity"},
	)

	SweepDurationHistogram = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_sweep_duration_seconds",
			Help:    "Duration of hard-purge sweeps in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Inventory metrics
	InventoryOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_inventory_operations_total",
			Help: "Total number of inventory ledger operations",
		},
		[]string{"action"},
	)

	InventoryOnHandGauge = *promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_inventory_on_hand",
			Help: "Current on-hand stock per product variant",
		},
		[]string{"product_id", "variant_id"},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordLifecycleOperation increments the counter for soft-delete/undo operations
func RecordLifecycleOperation(entity, operation string) {
	LifecycleOperationsCounter.WithLabelValues(entity, operation).Inc()
}

// RecordInventoryOperation increments the counter for ledger actions
func RecordInventoryOperation(action string) {
	InventoryOperationsCounter.WithLabelValues(action).Inc()
}

// SetInventoryOnHand records the current stock level for a product variant
func SetInventoryOnHand(productID, variantID uint, onHand int) {
	InventoryOnHandGauge.WithLabelValues(formatID(productID), formatID(variantID)).Set(float64(onHand))
}

// ClearInventoryOnHand drops the gauge series for a removed inventory row
func ClearInventoryOnHand(productID, variantID uint) {
	InventoryOnHandGauge.DeleteLabelValues(formatID(productID), formatID(variantID))
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
