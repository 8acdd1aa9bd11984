// Package pubsub relays overtime domain events across instances via Redis.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"dutywire/internal/domain/shared/events"
	"dutywire/internal/shared/biztime"
	"dutywire/internal/shared/goroutine"
	"dutywire/internal/shared/logger"
)

const (
	overtimeEventPrefix = "overtime."
	publishTimeout      = 5 * time.Second
)

// EventEnvelope wraps a domain event for cross-instance delivery. Payload
// carries the full event JSON so consumers can decode per event type.
type EventEnvelope struct {
	EventType   string          `json:"event_type"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  int64           `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
	InstanceID  string          `json:"instance_id,omitempty"` // Source instance ID to avoid self-delivery
}

// OvertimeEventPublisher defines the interface for publishing overtime events across instances.
type OvertimeEventPublisher interface {
	PublishEvent(ctx context.Context, event events.DomainEvent) error
}

// OvertimeEventSubscriber defines the interface for consuming relayed overtime events.
type OvertimeEventSubscriber interface {
	SubscribeEvents(ctx context.Context, handler func(envelope EventEnvelope)) error
}

// RedisOvertimeRelay implements the relay using Redis Pub/Sub. It also
// satisfies events.EventHandler so it can hang off the in-memory dispatcher.
type RedisOvertimeRelay struct {
	client     *redis.Client
	logger     logger.Interface
	channel    string
	instanceID string // Unique ID for this instance to avoid self-delivery
}

// NewRedisOvertimeRelay creates a new Redis-based overtime event relay.
func NewRedisOvertimeRelay(client *redis.Client, channel string, logger logger.Interface) *RedisOvertimeRelay {
	return &RedisOvertimeRelay{
		client:     client,
		logger:     logger,
		channel:    channel,
		instanceID: uuid.NewString(),
	}
}

// PublishEvent publishes a domain event to Redis for cross-instance delivery.
func (r *RedisOvertimeRelay) PublishEvent(ctx context.Context, event events.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := EventEnvelope{
		EventType:   event.GetEventType(),
		AggregateID: event.GetAggregateID(),
		OccurredAt:  event.GetOccurredAt().Unix(),
		Payload:     payload,
		InstanceID:  r.instanceID,
	}
	if envelope.OccurredAt <= 0 {
		envelope.OccurredAt = biztime.NowUTC().Unix()
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		r.logger.Errorw("failed to publish overtime event",
			"event_type", envelope.EventType,
			"aggregate_id", envelope.AggregateID,
			"error", err,
		)
		return fmt.Errorf("failed to publish overtime event: %w", err)
	}

	r.logger.Debugw("overtime event published to Redis",
		"event_type", envelope.EventType,
		"aggregate_id", envelope.AggregateID,
	)
	return nil
}

// Handle relays a dispatched domain event. Relay failures are logged and
// swallowed; event delivery must never gate an allocation write.
func (r *RedisOvertimeRelay) Handle(event events.DomainEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := r.PublishEvent(ctx, event); err != nil {
		return err
	}
	return nil
}

// CanHandle reports whether the relay handles the given event type.
func (r *RedisOvertimeRelay) CanHandle(eventType string) bool {
	return strings.HasPrefix(eventType, overtimeEventPrefix)
}

// RegisterWith subscribes the relay to every overtime event type on the dispatcher.
func (r *RedisOvertimeRelay) RegisterWith(dispatcher events.EventSubscriber, eventTypes []string) error {
	for _, eventType := range eventTypes {
		if err := dispatcher.Subscribe(eventType, r); err != nil {
			return fmt.Errorf("failed to subscribe relay to %s: %w", eventType, err)
		}
	}
	return nil
}

// SubscribeEvents subscribes to relayed overtime events from Redis.
// Events published by this instance are automatically filtered out.
func (r *RedisOvertimeRelay) SubscribeEvents(ctx context.Context, handler func(envelope EventEnvelope)) error {
	return r.subscribeWithReconnect(ctx, func(payload string) {
		var envelope EventEnvelope
		if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
			r.logger.Warnw("failed to unmarshal overtime event envelope",
				"payload", payload,
				"error", err,
			)
			return
		}

		// Skip events from own instance to avoid duplicate local delivery
		if envelope.InstanceID == r.instanceID {
			return
		}

		handler(envelope)
	})
}

// subscribeWithReconnect wraps subscribe with automatic reconnection and exponential backoff.
func (r *RedisOvertimeRelay) subscribeWithReconnect(ctx context.Context, handler func(payload string)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := r.subscribe(ctx, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		r.logger.Warnw("overtime event subscription disconnected, reconnecting",
			"channel", r.channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (r *RedisOvertimeRelay) subscribe(ctx context.Context, handler func(payload string)) error {
	pubsub := r.client.Subscribe(ctx, r.channel)
	defer pubsub.Close()

	_, err := pubsub.Receive(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", r.channel, err)
	}

	r.logger.Infow("subscribed to overtime event channel",
		"channel", r.channel,
	)

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			r.logger.Infow("overtime event subscriber stopped",
				"channel", r.channel,
				"reason", ctx.Err(),
			)
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				r.logger.Warnw("overtime event channel closed",
					"channel", r.channel,
				)
				return nil
			}

			goroutine.SafeGo(r.logger, "overtime-event-handler", func() {
				handler(msg.Payload)
			})
		}
	}
}
