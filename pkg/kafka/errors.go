package kafka

import "errors"

var (
	ErrProducerClosed = errors.New("kafka producer is closed")
	ErrNoBrokers      = errors.New("at least one broker is required")
	ErrNoTopic        = errors.New("topic cannot be empty")

	// ErrEmptyKey and ErrEmptyValue reject messages that would either lose
	// partition ordering or carry no payload.
	ErrEmptyKey   = errors.New("message key cannot be empty")
	ErrEmptyValue = errors.New("message value cannot be empty")

	// ErrInvalidMessage is returned by PublishBatch when no message in the
	// batch survives validation.
	ErrInvalidMessage = errors.New("invalid message")
)
