package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Header keys stamped on every published event. Consumers route and
// deduplicate on these, so the names are part of the wire contract.
const (
	HeaderEventID       = "event-id"
	HeaderEventType     = "event-type"
	HeaderCorrelationID = "correlation-id"
	HeaderSchemaVersion = "schema-version"
	HeaderSource        = "source"
	HeaderTimestamp     = "timestamp"
	HeaderOriginalTopic = "original-topic"
)

// Message is a broker-agnostic event: a partition key, a JSON payload and a
// set of string headers.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Topic     string
	Timestamp time.Time
}

// DecodeValue unmarshals the JSON payload into v.
func (m *Message) DecodeValue(v any) error {
	return json.Unmarshal(m.Value, v)
}

// GetHeader returns a header value and whether it was set.
func (m *Message) GetHeader(key string) (string, bool) {
	value, ok := m.Headers[key]
	return value, ok
}

func (m *Message) GetEventID() string {
	return m.Headers[HeaderEventID]
}

func (m *Message) GetEventType() string {
	return m.Headers[HeaderEventType]
}

func (m *Message) GetCorrelationID() string {
	return m.Headers[HeaderCorrelationID]
}

// MessageBuilder assembles a Message. Build fills in an event ID and a
// timestamp header when the caller did not set them, so every event that
// leaves the process is traceable.
type MessageBuilder struct {
	msg Message
}

func NewMessage() *MessageBuilder {
	return &MessageBuilder{
		msg: Message{
			Headers:   make(map[string]string),
			Timestamp: time.Now(),
		},
	}
}

// WithKey sets the partition key.
func (b *MessageBuilder) WithKey(key string) *MessageBuilder {
	b.msg.Key = key
	return b
}

// WithValue JSON-encodes payload into the message value. An unencodable
// payload leaves the value empty and the producer rejects it on publish.
func (b *MessageBuilder) WithValue(payload any) *MessageBuilder {
	data, err := json.Marshal(payload)
	if err != nil {
		b.msg.Value = nil
		return b
	}
	b.msg.Value = data
	return b
}

// WithRawValue sets an already-encoded value.
func (b *MessageBuilder) WithRawValue(value []byte) *MessageBuilder {
	b.msg.Value = value
	return b
}

func (b *MessageBuilder) WithHeader(key, value string) *MessageBuilder {
	b.msg.Headers[key] = value
	return b
}

// WithEventID sets the event ID, generating one when eventID is empty.
func (b *MessageBuilder) WithEventID(eventID string) *MessageBuilder {
	if eventID == "" {
		eventID = uuid.New().String()
	}
	b.msg.Headers[HeaderEventID] = eventID
	return b
}

func (b *MessageBuilder) WithEventType(eventType string) *MessageBuilder {
	b.msg.Headers[HeaderEventType] = eventType
	return b
}

func (b *MessageBuilder) WithCorrelationID(correlationID string) *MessageBuilder {
	b.msg.Headers[HeaderCorrelationID] = correlationID
	return b
}

func (b *MessageBuilder) WithSchemaVersion(version string) *MessageBuilder {
	b.msg.Headers[HeaderSchemaVersion] = version
	return b
}

func (b *MessageBuilder) WithSource(source string) *MessageBuilder {
	b.msg.Headers[HeaderSource] = source
	return b
}

func (b *MessageBuilder) Build() Message {
	if b.msg.Headers[HeaderEventID] == "" {
		b.msg.Headers[HeaderEventID] = uuid.New().String()
	}
	if b.msg.Headers[HeaderTimestamp] == "" {
		b.msg.Headers[HeaderTimestamp] = b.msg.Timestamp.Format(time.RFC3339)
	}
	return b.msg
}
