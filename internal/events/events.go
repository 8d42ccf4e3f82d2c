package events

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/multierr"
)

// Event types published after successful mutations.
const (
	RestaurantCreated = "restaurant.created"
	RestaurantUpdated = "restaurant.updated"
	RestaurantDeleted = "restaurant.deleted"
	DishCreated       = "dish.created"
	DishDeleted       = "dish.deleted"
	DishesCleared     = "dish.cleared"
)

// Event describes a committed change to a restaurant or one of its dishes.
type Event struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId"`
	Topic      string            `json:"topic"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// New builds an event for the given type ("entity.action") and resource id.
func New(eventType string, resourceID int, data any) Event {
	entity, action := splitType(eventType)
	return Event{
		Entity:     entity,
		Action:     action,
		ResourceID: strconv.Itoa(resourceID),
		Topic:      eventType,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

// WithMetadata returns a copy of the event with an extra metadata entry.
func (e Event) WithMetadata(key, value string) Event {
	meta := make(map[string]string, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		meta[k] = v
	}
	meta[key] = value
	e.Metadata = meta
	return e
}

// Publisher delivers events to interested parties.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Nop discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }

// Multi publishes to every wrapped publisher and combines their failures.
type Multi []Publisher

// Publish implements Publisher.
func (m Multi) Publish(ctx context.Context, event Event) error {
	var errs error
	for _, publisher := range m {
		if publisher == nil {
			continue
		}
		errs = multierr.Append(errs, publisher.Publish(ctx, event))
	}
	return errs
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, event Event) error

// Publish implements Publisher.
func (f PublisherFunc) Publish(ctx context.Context, event Event) error {
	return f(ctx, event)
}

func splitType(eventType string) (string, string) {
	for i := len(eventType) - 1; i >= 0; i-- {
		if eventType[i] == '.' {
			return eventType[:i], eventType[i+1:]
		}
	}
	return eventType, "unknown"
}
