package kafka_middleware

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/reshmacodewarrior/BusBookingSystem/pkg/kafka"
)

// Metrics counts publishes across every producer in the process.
type Metrics struct {
	MessagesPublished       atomic.Int64
	MessagesPublishedFailed atomic.Int64
	PublishDurationTotal    atomic.Int64 // nanoseconds, successes and failures
}

var globalMetrics = &Metrics{}

// GetMetrics returns the process-wide metrics instance.
func GetMetrics() *Metrics {
	return globalMetrics
}

// Reset zeroes all counters. Intended for tests.
func (m *Metrics) Reset() {
	m.MessagesPublished.Store(0)
	m.MessagesPublishedFailed.Store(0)
	m.PublishDurationTotal.Store(0)
}

// GetPublishRate returns successful publishes per second over duration.
func (m *Metrics) GetPublishRate(duration time.Duration) float64 {
	return float64(m.MessagesPublished.Load()) / duration.Seconds()
}

// GetAvgPublishDuration returns the mean latency of successful publishes.
func (m *Metrics) GetAvgPublishDuration() time.Duration {
	published := m.MessagesPublished.Load()
	if published == 0 {
		return 0
	}
	return time.Duration(m.PublishDurationTotal.Load() / published)
}

// MetricsProducerMiddleware records the outcome and latency of each publish
// into the process-wide counters.
func MetricsProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		globalMetrics.PublishDurationTotal.Add(int64(time.Since(start)))

		if err != nil {
			globalMetrics.MessagesPublishedFailed.Add(1)
		} else {
			globalMetrics.MessagesPublished.Add(1)
		}

		return err
	}
}
