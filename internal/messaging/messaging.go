// Package messaging defines the domain event transport.
package messaging

import (
	"context"

	"go.uber.org/zap"

	"github.com/Rafa37412/CeFoods/internal/entity"
)

// Topics carrying the storefront domain events.
const (
	TopicAccountRegistered = "accounts.registered"
	TopicStoreOpened       = "stores.opened"
	TopicProductListed     = "products.listed"
	TopicOrderSettled      = "orders.settled"
	TopicProductRated      = "products.rated"
)

// Publisher defines an interface for publishing events to a message broker.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event any) error
	Close() error
}

// Subscriber defines an interface for subscribing to a message topic.
type Subscriber interface {
	Consume(ctx context.Context, topic string, groupID string, handler func(ctx context.Context, payload []byte) error)
}

// Topic returns the topic an event is published on.
func Topic(event entity.Event) string {
	switch event.(type) {
	case entity.AccountRegistered:
		return TopicAccountRegistered
	case entity.StoreOpened:
		return TopicStoreOpened
	case entity.ProductListed:
		return TopicProductListed
	case entity.OrderSettled:
		return TopicOrderSettled
	case entity.ProductRated:
		return TopicProductRated
	}
	return ""
}

// Emit publishes event on its topic. Failures are logged and otherwise
// ignored; the action that produced the event has already been committed.
func Emit(ctx context.Context, pub Publisher, log *zap.SugaredLogger, key string, event entity.Event) {
	topic := Topic(event)
	if err := pub.PublishEvent(ctx, topic, key, event); err != nil {
		log.Errorw("Failed to publish event", "topic", topic, "event", event.EventType(), "key", key, "err", err)
	}
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishEvent(context.Context, string, string, any) error { return nil }

func (NopPublisher) Close() error { return nil }
