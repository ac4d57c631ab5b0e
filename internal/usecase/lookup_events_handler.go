package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"RaptorExplorer/internal/domain/models"
	domrepo "RaptorExplorer/internal/domain/repository"
	pkgkafka "RaptorExplorer/pkg/kafka"
)

// LookupEventsHandler consumes lookup events and writes them to storage.
type LookupEventsHandler struct {
	topic   string
	storage domrepo.LookupStorage
	metrics domrepo.Metrics
}

func NewLookupEventsHandler(topic string, storage domrepo.LookupStorage, metrics domrepo.Metrics) *LookupEventsHandler {
	return &LookupEventsHandler{topic: topic, storage: storage, metrics: metrics}
}

func (h *LookupEventsHandler) Topic() string { return h.topic }

// Handle stores one event. Undecodable payloads are permanent failures and
// go straight to the DLQ.
func (h *LookupEventsHandler) Handle(ctx context.Context, b []byte) error {
	var e models.LookupEvent
	if err := json.Unmarshal(b, &e); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return pkgkafka.Permanent(fmt.Errorf("decode lookup event: %w", err))
	}
	if e.RequestID == "" {
		e.RequestID = pkgkafka.TraceID(ctx)
	}
	if !e.OccurredAt.IsZero() {
		h.metrics.RecordLatency("lookup_ingest_e2e", time.Since(e.OccurredAt).Seconds())
	}

	start := time.Now()
	err := h.storage.StoreLookup(ctx, &e)
	h.metrics.RecordLatency("lookup_store", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	if t, ok := pkgkafka.StartTime(ctx); ok {
		h.metrics.RecordLatency("lookup_handle", time.Since(t).Seconds())
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*LookupEventsHandler)(nil)
