package oteladapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"telematics-hq/mygeotab-go/geotab/oteladapters"
)

func Test_MetricsCollector_RecordsToOpenTelemetryInstruments(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	collector := oteladapters.NewMetricsCollector(provider.Meter("geotab-test"))

	labels := map[string]string{"operation": "get", "status": "success"}

	collector.RecordDuration("geotab_client_call_duration", 150*time.Millisecond, labels)
	collector.IncrementCounter("geotab_client_errors", map[string]string{"error_type": "transport"})
	collector.RecordValue("geotab_client_results_returned", 3, labels)

	var collected metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &collected))
	require.Len(t, collected.ScopeMetrics, 1)

	names := make([]string, 0)
	for _, m := range collected.ScopeMetrics[0].Metrics {
		names = append(names, m.Name)
	}

	assert.Contains(t, names, "geotab_client_call_duration")
	assert.Contains(t, names, "geotab_client_errors")
	assert.Contains(t, names, "geotab_client_results_returned")
}

func Test_MetricsCollector_ContextAwareMethodsRecordAsWell(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	collector := oteladapters.NewMetricsCollector(provider.Meter("geotab-test"))

	ctx := context.Background()
	collector.RecordDurationContext(ctx, "geotab_client_call_duration", time.Millisecond, nil)
	collector.IncrementCounterContext(ctx, "geotab_client_errors", nil)
	collector.RecordValueContext(ctx, "geotab_client_results_returned", 1, nil)

	var collected metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &collected))
	require.Len(t, collected.ScopeMetrics, 1)
	assert.Len(t, collected.ScopeMetrics[0].Metrics, 3)
}
