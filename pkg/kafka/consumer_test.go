package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingHandler struct {
	failures int
	err      error
	calls    int
	traceIDs []string
}

func (h *countingHandler) Topic() string { return "lookups" }

func (h *countingHandler) Handle(ctx context.Context, _ []byte) error {
	h.calls++
	h.traceIDs = append(h.traceIDs, TraceID(ctx))
	if h.calls <= h.failures {
		return h.err
	}
	return nil
}

func newTestConsumer(t *testing.T) *Consumer {
	t.Helper()
	c, err := NewConsumer(
		WithConsumerBrokers([]string{"localhost:9092"}),
		WithConsumerRetry(2, time.Millisecond, 2*time.Millisecond),
	)
	require.NoError(t, err)
	return c
}

func testMessage() *message {
	return &message{topic: "lookups", km: kafka.Message{
		Value:   []byte(`{}`),
		Headers: []kafka.Header{{Key: HeaderTraceID, Value: []byte("req-1")}},
	}}
}

func TestHandleWithRetryRecovers(t *testing.T) {
	c := newTestConsumer(t)
	c.WithConsumerHook(NewHookChain(TraceHook(), nil))
	h := &countingHandler{failures: 2, err: errors.New("clickhouse down")}

	attempts, err := c.handleWithRetry(h, testMessage())
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []string{"req-1", "req-1", "req-1"}, h.traceIDs)
}

func TestHandleWithRetryGivesUp(t *testing.T) {
	c := newTestConsumer(t)
	h := &countingHandler{failures: 10, err: errors.New("clickhouse down")}

	attempts, err := c.handleWithRetry(h, testMessage())
	require.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestHandleWithRetrySkipsPermanent(t *testing.T) {
	c := newTestConsumer(t)
	h := &countingHandler{failures: 10, err: Permanent(errors.New("bad json"))}

	attempts, err := c.handleWithRetry(h, testMessage())
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestHookChainRecoversPanics(t *testing.T) {
	var errSeen error
	chain := NewHookChain(
		HookFuncs{Before: func(context.Context, string, kafka.Message, []byte) (context.Context, kafka.Message, []byte, error) {
			panic("bad hook")
		}},
		HookFuncs{Err: func(_ context.Context, _ string, _ kafka.Message, _ []byte, err error) { errSeen = err }},
	)

	_, _, _, err := chain.BeforeHandle(context.Background(), "t", kafka.Message{}, nil)
	var he *HookError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "ERR_PANIC", he.Code)
	assert.Equal(t, err, errSeen)
}

func TestBackoffWithJitterBounds(t *testing.T) {
	for attempt := 1; attempt < 10; attempt++ {
		d := backoffWithJitter(10*time.Millisecond, 80*time.Millisecond, attempt)
		assert.Greater(t, d, time.Duration(0))
		assert.LessOrEqual(t, d, 80*time.Millisecond)
	}
}

func TestNewConsumerRequiresBrokers(t *testing.T) {
	_, err := NewConsumer()
	assert.Error(t, err)
	_, err = NewProducer()
	assert.Error(t, err)
}
