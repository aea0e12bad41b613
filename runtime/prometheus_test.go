package runtime

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/mdarr/format"
)

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewPrometheusCollector(reg, "mdarr")
	rt := newTestRuntime(t, WithMetrics(collector), WithCompression(format.CompressionS2))

	v := mustLiteral(t, rt, "{1,2,3}", format.TypeInt32)
	_, err := rt.Add(v, v)
	require.NoError(t, err)
	_, err = rt.Add(v, mustLiteral(t, rt, "{1}", format.TypeInt32))
	require.Error(t, err)

	_, err = rt.EncodeDatum(v)
	require.NoError(t, err)

	require.InDelta(t, 2.0, testutil.ToFloat64(collector.OperationsTotal.WithLabelValues("add")), 0)
	require.InDelta(t, 1.0, testutil.ToFloat64(collector.FailuresTotal.WithLabelValues("add")), 0)
	require.InDelta(t, 2.0, testutil.ToFloat64(collector.OperationsTotal.WithLabelValues("from_literal")), 0)
	require.InDelta(t, float64(len(v.Data)), testutil.ToFloat64(collector.ProducedBytes.WithLabelValues("add")), 0)
	require.Positive(t, testutil.ToFloat64(collector.DatumRawBytes.WithLabelValues("S2")))

	count, err := testutil.GatherAndCount(reg, "mdarr_array_operation_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}
