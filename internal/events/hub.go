package events

import (
	"context"

	"github.com/charlesng35/restaurants/internal/realtime"
)

// Broadcaster is the realtime fan-out used by HubPublisher.
type Broadcaster interface {
	Broadcast(stream string, message realtime.Message) int
}

// HubPublisher forwards events to websocket subscribers. Restaurant events go
// to the restaurants stream and dish events to the dishes stream.
type HubPublisher struct {
	hub Broadcaster
}

// NewHubPublisher wraps a realtime hub.
func NewHubPublisher(hub Broadcaster) *HubPublisher {
	return &HubPublisher{hub: hub}
}

// Publish implements Publisher.
func (p *HubPublisher) Publish(_ context.Context, event Event) error {
	if p == nil || p.hub == nil {
		return nil
	}

	stream := realtime.StreamRestaurants
	if event.Entity == "dish" {
		stream = realtime.StreamDishes
	}
	p.hub.Broadcast(stream, realtime.Message{Event: event.Topic, Data: event})
	return nil
}
