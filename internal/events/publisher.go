package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
)

// Publisher appends account events to Redis streams. Event timestamps come
// from clock, the same one the command service stamps opening dates with.
type Publisher struct {
	client redis.Cmdable
	clock  clockwork.Clock
}

func NewPublisher(client redis.Cmdable, clock clockwork.Clock) *Publisher {
	return &Publisher{client: client, clock: clock}
}

// Publish appends an event to stream as a single "event" field holding the
// JSON-encoded Event envelope.
func (p *Publisher) Publish(ctx context.Context, stream, eventType string, data any) error {
	event := Event{
		Type:      eventType,
		Timestamp: p.clock.Now().UTC(),
		Data:      data,
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{
			"event": eventJSON,
		},
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// NopPublisher discards events. Used when no Redis is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }
