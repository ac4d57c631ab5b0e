package kafka

import (
	"time"

	"github.com/segmentio/kafka-go"
)

// ProducerOption tunes the writer behind a Producer.
type ProducerOption func(*producerSettings)

type producerSettings struct {
	writer      *kafka.Writer
	brokers     []string
	compression string
}

func WithBrokers(brokers []string) ProducerOption {
	return func(s *producerSettings) {
		s.brokers = brokers
	}
}

// WithDelivery sets acks (-1 waits for all replicas), the codec name
// (gzip, snappy, lz4, zstd) and how often a failed batch is retried.
func WithDelivery(acks int, compression string, maxAttempts int) ProducerOption {
	return func(s *producerSettings) {
		s.writer.RequiredAcks = kafka.RequiredAcks(acks)
		if compression != "" {
			s.compression = compression
		}
		if maxAttempts > 0 {
			s.writer.MaxAttempts = maxAttempts
		}
	}
}

// WithBatching flushes a batch at size messages, bytes bytes or after
// linger, whichever comes first.
func WithBatching(size, bytes int, linger time.Duration) ProducerOption {
	return func(s *producerSettings) {
		s.writer.BatchSize = size
		s.writer.BatchBytes = int64(bytes)
		s.writer.BatchTimeout = linger
	}
}

func WithTimeouts(write, read time.Duration) ProducerOption {
	return func(s *producerSettings) {
		s.writer.WriteTimeout = write
		s.writer.ReadTimeout = read
	}
}

// WithAsync makes writes fire-and-forget. Errors then only show up in the
// producer metrics.
func WithAsync(async bool) ProducerOption {
	return func(s *producerSettings) {
		s.writer.Async = async
	}
}

func WithAutoCreateTopics(enabled bool) ProducerOption {
	return func(s *producerSettings) {
		s.writer.AllowAutoTopicCreation = enabled
	}
}
