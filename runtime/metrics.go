package runtime

import (
	"sync/atomic"
	"time"

	"github.com/arloliu/mdarr/format"
)

// MetricsCollector receives operational metrics from a Runtime.
// Implementations must be safe for concurrent use.
type MetricsCollector interface {
	// RecordOperation is called after each array operation.
	// size is the byte size of the produced value, err is nil if successful.
	RecordOperation(op string, size int, duration time.Duration, err error)

	// RecordCompression is called after a datum payload is compressed.
	RecordCompression(algorithm format.CompressionType, original, compressed int)
}

// NoopMetricsCollector discards all metrics.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordOperation(string, int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordCompression(format.CompressionType, int, int) {}

// BasicMetricsCollector keeps in-memory totals across all operations.
type BasicMetricsCollector struct {
	Operations      atomic.Int64
	Failures        atomic.Int64
	TotalNanos      atomic.Int64
	ProducedBytes   atomic.Int64
	RawBytes        atomic.Int64
	CompressedBytes atomic.Int64
}

// RecordOperation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOperation(_ string, size int, duration time.Duration, err error) {
	b.Operations.Add(1)
	b.TotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.Failures.Add(1)
		return
	}
	b.ProducedBytes.Add(int64(size))
}

// RecordCompression implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCompression(_ format.CompressionType, original, compressed int) {
	b.RawBytes.Add(int64(original))
	b.CompressedBytes.Add(int64(compressed))
}

var (
	_ MetricsCollector = NoopMetricsCollector{}
	_ MetricsCollector = (*BasicMetricsCollector)(nil)
)
