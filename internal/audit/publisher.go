// Package audit publishes domain events to Kafka for offline analysis.
// Publishing is best-effort: a broker outage never fails the request that
// produced the event.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	ActionUserSignedUp = "user.signed_up"
	ActionSpamReported = "spam.reported"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Action      string            `json:"action"`
	UserID      string            `json:"user_id,omitempty"`
	PhoneNumber string            `json:"phone_number,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
	Meta        map[string]string `json:"meta,omitempty"`
}

// Publisher emits events to a Kafka topic. A nil Publisher is valid and drops
// every event, so callers never guard the unconfigured case.
type Publisher struct {
	client *kgo.Client
	logger *slog.Logger
}

// NewPublisher connects to the given brokers. An empty broker list means
// Kafka is not configured and returns a nil publisher.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, nil
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{client: client, logger: logger}, nil
}

// Emit produces the event asynchronously. Failures are logged, not returned.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if p == nil || p.client == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal audit event", "action", event.Action, "err", err)
		return
	}

	record := &kgo.Record{Key: []byte(event.PhoneNumber), Value: value}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Error("publish audit event", "action", event.Action, "err", err)
		}
	})
}

// Close flushes buffered records and releases the client.
func (p *Publisher) Close() {
	if p == nil || p.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.client.Flush(ctx); err != nil {
		p.logger.Error("flush audit events", "err", err)
	}
	p.client.Close()
}
