package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"RaptorExplorer/internal/domain/models"
	repomocks "RaptorExplorer/internal/domain/repository/mocks"
	pkgkafka "RaptorExplorer/pkg/kafka"
	"RaptorExplorer/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestLookupEventsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := repomocks.NewMockLookupStorage(ctrl)
	h := NewLookupEventsHandler("lookups", storage, metrics.Nop{})

	assert.Equal(t, "lookups", h.Topic())

	storage.EXPECT().StoreLookup(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *models.LookupEvent) error {
			assert.Equal(t, "trace-1", e.RequestID)
			assert.Equal(t, "2019_ford_f150", e.VehicleID)
			assert.Equal(t, int64(48000), e.Price)
			return nil
		})

	ctx := pkgkafka.WithTraceID(context.Background(), "trace-1")
	require.NoError(t, h.Handle(ctx, []byte(`{"vehicleId":"2019_ford_f150","price":48000,"outcome":"resolved"}`)))
}

func TestLookupEventsHandlerErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := repomocks.NewMockLookupStorage(ctrl)
	h := NewLookupEventsHandler("lookups", storage, metrics.Nop{})

	err := h.Handle(context.Background(), []byte(`not json`))
	var perm *pkgkafka.PermanentError
	assert.True(t, errors.As(err, &perm))

	storage.EXPECT().StoreLookup(gomock.Any(), gomock.Any()).Return(errors.New("clickhouse down"))
	err = h.Handle(context.Background(), []byte(`{"requestId":"r"}`))
	require.Error(t, err)
	assert.False(t, errors.As(err, &perm))
}

func TestLookupEventsHandlerRecordsHandleLatency(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := repomocks.NewMockLookupStorage(ctrl)
	m := repomocks.NewMockMetrics(ctrl)
	h := NewLookupEventsHandler("lookups", storage, m)

	storage.EXPECT().StoreLookup(gomock.Any(), gomock.Any()).Return(nil)
	m.EXPECT().RecordLatency("lookup_store", gomock.Any())
	m.EXPECT().RecordLatency("lookup_handle", gomock.Any())

	ctx := pkgkafka.WithStartTime(context.Background(), time.Now())
	require.NoError(t, h.Handle(ctx, []byte(`{"requestId":"r"}`)))
}
