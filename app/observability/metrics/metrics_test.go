package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestObserveQuery(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))

	m := Get()
	require.NotNil(t, m)
	assert.Same(t, m, Get())

	ctx := context.Background()
	m.ObserveQuery(ctx, "SELECT", time.Now(), nil)
	m.ObserveQuery(ctx, "INSERT", time.Now(), errors.New("duplicate key"))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	found := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			found[md.Name] = md.Data
		}
	}

	require.Contains(t, found, "db_query_duration_seconds")
	require.Contains(t, found, "db_query_errors_total")

	errorsSum, ok := found["db_query_errors_total"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, errorsSum.DataPoints, 1)
	assert.EqualValues(t, 1, errorsSum.DataPoints[0].Value)

	durations, ok := found["db_query_duration_seconds"].(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.Len(t, durations.DataPoints, 2)
}
