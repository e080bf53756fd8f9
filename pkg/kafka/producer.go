package kafka

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"

	kafka_config "github.com/reshmacodewarrior/BusBookingSystem/pkg/kafka/config"
)

// ProducerMiddleware wraps a publish. Middleware runs in registration order,
// outermost first.
type ProducerMiddleware func(ctx context.Context, msg Message, next func(ctx context.Context, msg Message) error) error

// Producer publishes messages to a single topic, optionally diverting
// failed writes to a dead-letter topic.
type Producer struct {
	writer    *kafka.Writer
	dlqWriter *kafka.Writer
	topic     string
	dlqTopic  string

	mu         sync.RWMutex
	middleware []ProducerMiddleware
	closed     bool
}

func NewProducer(cfg *kafka_config.Config, topic, dlqTopic string) (*Producer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}
	if topic == "" {
		return nil, ErrNoTopic
	}

	codec := compressionCodec(cfg.ProducerCompression)

	p := &Producer{
		topic:    topic,
		dlqTopic: dlqTopic,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{}, // same key, same partition
			RequiredAcks: acksMode(cfg.ProducerRequireAcks),
			Compression:  codec,
			MaxAttempts:  cfg.ProducerMaxAttempts,
			BatchTimeout: cfg.ProducerBatchTimeout,
			Async:        cfg.ProducerAsync,
			Logger:       kafka.LoggerFunc(func(string, ...any) {}),
			ErrorLogger:  kafka.LoggerFunc(log.Printf),
		},
	}

	if dlqTopic != "" {
		p.dlqWriter = &kafka.Writer{
			Addr:     kafka.TCP(cfg.Brokers...),
			Topic:    dlqTopic,
			Balancer: &kafka.Hash{},
			// The DLQ is the last stop for a failed event, so it always
			// waits for all replicas.
			RequiredAcks: kafka.RequireAll,
			Compression:  codec,
			MaxAttempts:  3,
			Logger:       kafka.LoggerFunc(func(string, ...any) {}),
			ErrorLogger:  kafka.LoggerFunc(log.Printf),
		}
	}

	return p, nil
}

func compressionCodec(name string) compress.Compression {
	switch name {
	case "gzip":
		return compress.Gzip
	case "lz4":
		return compress.Lz4
	case "zstd":
		return compress.Zstd
	default:
		return compress.Snappy
	}
}

func acksMode(acks int) kafka.RequiredAcks {
	switch acks {
	case 0:
		return kafka.RequireNone
	case 1:
		return kafka.RequireOne
	default:
		return kafka.RequireAll
	}
}

// Use registers middleware. Call before the first Publish; registration is
// not synchronized with in-flight publishes.
func (p *Producer) Use(mw ProducerMiddleware) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.middleware = append(p.middleware, mw)
}

// Publish runs the message through the middleware chain and writes it to the
// topic. Messages must carry a key and a non-empty value.
func (p *Producer) Publish(ctx context.Context, msg Message) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrProducerClosed
	}
	chain := p.middleware
	p.mu.RUnlock()

	if msg.Key == "" {
		return ErrEmptyKey
	}
	if len(msg.Value) == 0 {
		return ErrEmptyValue
	}

	send := p.deliver
	for i := len(chain) - 1; i >= 0; i-- {
		mw, next := chain[i], send
		send = func(ctx context.Context, m Message) error {
			return mw(ctx, m, next)
		}
	}

	return send(ctx, msg)
}

// deliver writes one message, diverting it to the DLQ when the write fails.
// The original write error is returned even after a successful diversion.
func (p *Producer) deliver(ctx context.Context, msg Message) error {
	err := p.writer.WriteMessages(ctx, toKafkaMessage(msg))
	if err == nil {
		return nil
	}

	if p.dlqWriter != nil {
		if dlqErr := p.divertToDLQ(ctx, msg, err); dlqErr != nil {
			return fmt.Errorf("failed to send to DLQ: %v (original error: %v)", dlqErr, err)
		}
	}
	return err
}

// PublishBatch writes several messages in one call, skipping the middleware
// chain. Messages without a key or value are dropped; an all-invalid batch
// returns ErrInvalidMessage.
func (p *Producer) PublishBatch(ctx context.Context, messages []Message) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrProducerClosed
	}
	p.mu.RUnlock()

	batch := make([]kafka.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Key == "" || len(msg.Value) == 0 {
			continue
		}
		batch = append(batch, toKafkaMessage(msg))
	}

	if len(batch) == 0 {
		return ErrInvalidMessage
	}

	return p.writer.WriteMessages(ctx, batch...)
}

func (p *Producer) divertToDLQ(ctx context.Context, msg Message, cause error) error {
	if msg.Headers == nil {
		msg.Headers = make(map[string]string, 3)
	}
	msg.Headers[HeaderOriginalTopic] = p.topic
	msg.Headers["dlq-error"] = cause.Error()
	msg.Headers["dlq-timestamp"] = time.Now().Format(time.RFC3339)

	dlqMsg := toKafkaMessage(msg)
	dlqMsg.Time = time.Now()

	return p.dlqWriter.WriteMessages(ctx, dlqMsg)
}

func toKafkaMessage(msg Message) kafka.Message {
	out := kafka.Message{
		Key:   []byte(msg.Key),
		Value: msg.Value,
		Time:  msg.Timestamp,
	}
	for k, v := range msg.Headers {
		out.Headers = append(out.Headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	return out
}

// Close flushes and closes both writers. Subsequent publishes return
// ErrProducerClosed.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	var err error
	if p.writer != nil {
		err = p.writer.Close()
	}
	if p.dlqWriter != nil {
		if dlqErr := p.dlqWriter.Close(); err == nil {
			err = dlqErr
		}
	}
	return err
}

// Stats reports the underlying writer's counters.
func (p *Producer) Stats() kafka.WriterStats {
	return p.writer.Stats()
}
