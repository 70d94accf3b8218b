package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Bus publishes one typed payload to a topic, wrapped in an Envelope.
type Bus interface {
	Publish(ctx context.Context, topic string, msgType string, payload any) error
}

// Envelope is the wire shape of every message on the users topic.
type Envelope struct {
	MessageID     string          `json:"messageId"`
	CorrelationID string          `json:"correlationId,omitempty"`
	Type          string          `json:"type"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Payload       json.RawMessage `json:"payload"`
}

// Decode unmarshals the payload into v.
func (e Envelope) Decode(v any) error {
	if len(e.Payload) == 0 {
		return fmt.Errorf("%s envelope %s has no payload", e.Type, e.MessageID)
	}
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return nil
}
