package kafka

import (
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducerAppliesOptions(t *testing.T) {
	p, err := NewProducer(
		WithBrokers([]string{"kafka-1:9092", "kafka-2:9092"}),
		WithDelivery(1, "zstd", 5),
		WithBatching(50, 4096, 20*time.Millisecond),
		WithTimeouts(time.Second, 2*time.Second),
		WithAsync(true),
		WithAutoCreateTopics(true),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	w := p.writer
	assert.Contains(t, w.Addr.String(), "kafka-1:9092")
	assert.Contains(t, w.Addr.String(), "kafka-2:9092")
	assert.Equal(t, kafka.RequireOne, w.RequiredAcks)
	assert.Equal(t, kafka.Zstd, w.Compression)
	assert.Equal(t, "zstd", p.comp)
	assert.Equal(t, 5, w.MaxAttempts)
	assert.Equal(t, 50, w.BatchSize)
	assert.Equal(t, int64(4096), w.BatchBytes)
	assert.Equal(t, 20*time.Millisecond, w.BatchTimeout)
	assert.Equal(t, time.Second, w.WriteTimeout)
	assert.True(t, w.Async)
	assert.True(t, w.AllowAutoTopicCreation)
	assert.IsType(t, &kafka.Hash{}, w.Balancer)
}

func TestNewProducerDefaults(t *testing.T) {
	p, err := NewProducer(WithBrokers([]string{"localhost:9092"}), WithDelivery(-1, "", 0))
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	assert.Equal(t, kafka.RequireAll, p.writer.RequiredAcks)
	assert.Equal(t, kafka.Snappy, p.writer.Compression)
	assert.Equal(t, "snappy", p.comp)
	assert.Equal(t, 3, p.writer.MaxAttempts)
}
