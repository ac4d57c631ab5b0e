package logger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu      sync.Mutex
	topics  []string
	batches [][]AggregatedLogEntry
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, _ []byte, value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.batches = append(p.batches, value.([]AggregatedLogEntry))
	return nil
}

func (p *recordingPublisher) snapshot() [][]AggregatedLogEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]AggregatedLogEntry(nil), p.batches...)
}

func TestLogCollectorAggregatesDuplicates(t *testing.T) {
	t.Parallel()

	// Arrange
	pub := &recordingPublisher{}
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 100,
		Topic:          "logs",
		Service:        "raptor",
		Publisher:      pub,
	})

	// Act
	for i := 0; i < 3; i++ {
		c.AddLog("error", "provider failed", map[string]interface{}{"provider": "vinaudit"}, "x.go:1")
	}
	c.AddLog("error", "other failure", nil, "y.go:2")
	c.Close()

	// Assert
	batches := pub.snapshot()
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 2)
	counts := map[string]int{}
	for _, e := range batches[0] {
		counts[e.Message] = e.Count
		require.Equal(t, "raptor", e.Service)
	}
	require.Equal(t, 3, counts["provider failed"])
	require.Equal(t, 1, counts["other failure"])
	require.Equal(t, []string{"logs"}, pub.topics)
}

func TestLogCollectorFlushesOnThreshold(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{}
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 2,
		Topic:          "logs",
		Publisher:      pub,
	})
	defer c.Close()

	c.AddLog("error", "a", nil, "a.go:1")
	c.AddLog("error", "b", nil, "b.go:1")

	require.Eventually(t, func() bool {
		return len(pub.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestLoggerErrorFeedsCollector(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{}
	l := Nop()
	l.AddCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 10, Topic: "logs", Publisher: pub})

	l.Error("resolve failed", String("provider", "listings"))
	l.Warn("ignored by collector")
	l.Close()

	batches := pub.snapshot()
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 1)
	require.Equal(t, "resolve failed", batches[0][0].Message)
	require.Equal(t, "listings", batches[0][0].Fields["provider"])
}
