package notify

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
)

// Publisher hands an encoded payload to a message broker or outbox for
// delivery by a downstream worker.
type Publisher interface {
	Publish(ctx context.Context, key string, payload []byte) error
}

// BrokerSender delivers messages by publishing them as JSON, keyed by the
// lead reference number so all messages of one lead stay ordered.
type BrokerSender struct {
	publisher Publisher
}

func NewBrokerSender(p Publisher) *BrokerSender {
	return &BrokerSender{publisher: p}
}

func (s *BrokerSender) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if err := s.publisher.Publish(ctx, msg.ReferenceNumber, payload); err != nil {
		return fmt.Errorf("publish message %s: %w", msg.ID, err)
	}
	return nil
}
