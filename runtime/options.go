package runtime

import (
	"fmt"

	"github.com/arloliu/mdarr/array"
	"github.com/arloliu/mdarr/compress"
	"github.com/arloliu/mdarr/format"
	"github.com/arloliu/mdarr/internal/options"
)

// Option configures a Runtime.
type Option = options.Option[*Runtime]

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *Logger) Option {
	return options.NoError(func(r *Runtime) {
		if l == nil {
			l = NoopLogger()
		}
		r.logger = l
	})
}

// WithMetrics sets the metrics collector. A nil collector disables metrics.
func WithMetrics(m MetricsCollector) Option {
	return options.NoError(func(r *Runtime) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		r.metrics = m
	})
}

// WithCompression sets the codec used by EncodeDatum.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(r *Runtime) error {
		if _, err := compress.CreateCodec(c, "datum"); err != nil {
			return fmt.Errorf("runtime: %w", err)
		}
		r.compression = c

		return nil
	})
}

// WithParseOptions sets the options passed to the literal parser by FromLiteral.
func WithParseOptions(opts ...array.ParseOption) Option {
	return options.NoError(func(r *Runtime) {
		r.parseOpts = append([]array.ParseOption(nil), opts...)
	})
}
