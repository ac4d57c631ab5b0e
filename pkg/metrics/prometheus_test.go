package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordProviderOutcome("listings", "ok")
	r.RecordProviderOutcome("listings", "ok")
	r.RecordProviderOutcome("aggregate", "failed")
	r.RecordResolution("resolved")
	r.RecordWebhookEvent("price.updated", "ok")
	r.RecordLatency("provider.listings", 0.12)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.providerOutcomes.WithLabelValues("listings", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.providerOutcomes.WithLabelValues("aggregate", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.resolutions.WithLabelValues("resolved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.webhookEvents.WithLabelValues("price.updated", "ok")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 4)
}
