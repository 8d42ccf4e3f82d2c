package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/charlesng35/restaurants/internal/events"
	"github.com/charlesng35/restaurants/pkg/metrics"
)

// publishEvent delivers a domain event after a committed change. Failures are
// logged and never reach the caller.
func publishEvent(ctx context.Context, publisher events.Publisher, log *zap.Logger, event events.Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		metrics.DomainEvents.WithLabelValues(event.Topic, "error").Inc()
		log.Warn("publish event failed",
			zap.String("event", event.Topic),
			zap.String("resource_id", event.ResourceID),
			zap.Error(err),
		)
		return
	}
	metrics.DomainEvents.WithLabelValues(event.Topic, "ok").Inc()
}
