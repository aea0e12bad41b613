package runtime

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/arloliu/mdarr/format"
)

// PrometheusCollector exports Runtime metrics as Prometheus collectors.
type PrometheusCollector struct {
	OperationsTotal  *prometheus.CounterVec
	FailuresTotal    *prometheus.CounterVec
	OperationLatency *prometheus.HistogramVec
	ProducedBytes    *prometheus.CounterVec
	DatumRawBytes    *prometheus.CounterVec
	DatumStoredBytes *prometheus.CounterVec
}

var _ MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector registers the collectors with reg under namespace.
// A nil reg registers with prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusCollector{
		OperationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "array_operations_total",
			Help:      "Total number of array operations",
		}, []string{"op"}),
		FailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "array_operation_failures_total",
			Help:      "Total number of failed array operations",
		}, []string{"op"}),
		OperationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "array_operation_duration_seconds",
			Help:      "Array operation latency in seconds",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"op"}),
		ProducedBytes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "array_produced_bytes_total",
			Help:      "Total size of values produced by array operations",
		}, []string{"op"}),
		DatumRawBytes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datum_raw_bytes_total",
			Help:      "Total size of packed buffers sealed into datums",
		}, []string{"compression"}),
		DatumStoredBytes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datum_stored_bytes_total",
			Help:      "Total size of datum payloads after compression",
		}, []string{"compression"}),
	}
}

// RecordOperation implements MetricsCollector.
func (p *PrometheusCollector) RecordOperation(op string, size int, duration time.Duration, err error) {
	p.OperationsTotal.WithLabelValues(op).Inc()
	p.OperationLatency.WithLabelValues(op).Observe(duration.Seconds())
	if err != nil {
		p.FailuresTotal.WithLabelValues(op).Inc()
		return
	}
	p.ProducedBytes.WithLabelValues(op).Add(float64(size))
}

// RecordCompression implements MetricsCollector.
func (p *PrometheusCollector) RecordCompression(algorithm format.CompressionType, original, compressed int) {
	label := algorithm.String()
	p.DatumRawBytes.WithLabelValues(label).Add(float64(original))
	p.DatumStoredBytes.WithLabelValues(label).Add(float64(compressed))
}
