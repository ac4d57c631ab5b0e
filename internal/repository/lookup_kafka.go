package repository

import (
	"context"
	"fmt"

	"RaptorExplorer/internal/domain/models"
	pkgkafka "RaptorExplorer/pkg/kafka"
)

// Producer is the publishing side of *pkgkafka.Producer.
type Producer interface {
	PublishMessage(ctx context.Context, topic string, msg pkgkafka.Message) error
	Close() error
}

// KafkaLookupPublisher publishes lookup events as JSON, keyed by vehicle id
// so lookups of one vehicle stay ordered on one partition.
type KafkaLookupPublisher struct {
	producer Producer
	topic    string
}

func NewKafkaLookupPublisher(p Producer, topic string) *KafkaLookupPublisher {
	return &KafkaLookupPublisher{producer: p, topic: topic}
}

func (p *KafkaLookupPublisher) PublishLookup(ctx context.Context, key string, e *models.LookupEvent) error {
	msg := pkgkafka.Message{
		Key:     []byte(key),
		Value:   e,
		Headers: map[string]string{pkgkafka.HeaderTraceID: e.RequestID},
	}
	if err := p.producer.PublishMessage(ctx, p.topic, msg); err != nil {
		return fmt.Errorf("publish lookup %s: %w", e.RequestID, err)
	}
	return nil
}

func (p *KafkaLookupPublisher) Close() error {
	return p.producer.Close()
}

// NopLookupPublisher drops events. It is wired when analytics is disabled.
type NopLookupPublisher struct{}

func (NopLookupPublisher) PublishLookup(context.Context, string, *models.LookupEvent) error {
	return nil
}

func (NopLookupPublisher) Close() error { return nil }
