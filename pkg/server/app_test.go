package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownClosesInReverseOrder(t *testing.T) {
	var order []string
	closer := func(name string, err error) Option {
		return WithCloser(name, func() error {
			order = append(order, name)
			return err
		})
	}

	a := New(nil, nil,
		closer("producer", nil),
		closer("redis", errors.New("already closed")),
		closer("clickhouse", nil),
	)
	require.NoError(t, a.Start())

	err := a.Shutdown(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close redis")
	assert.Equal(t, []string{"clickhouse", "redis", "producer"}, order)

	// second call is a no-op
	assert.NoError(t, a.Shutdown(context.Background()))
	assert.Len(t, order, 3)
}

func TestBackgroundStopsOnShutdown(t *testing.T) {
	stopped := make(chan struct{})
	a := New(nil, nil, WithBackground(func(done <-chan struct{}) {
		<-done
		close(stopped)
	}))
	require.NoError(t, a.Start())
	require.NoError(t, a.Shutdown(context.Background()))

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("background loop did not stop")
	}
}

func TestRunReturnsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	closed := false
	a := New(nil, nil, WithCloser("cache", func() error {
		closed = true
		return nil
	}))

	errCh := make(chan error, 1)
	go func() { errCh <- a.Run(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
		assert.True(t, closed)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}
