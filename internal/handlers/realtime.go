package handlers

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/restaurants/internal/realtime"
	"github.com/charlesng35/restaurants/pkg/errors"
	"github.com/charlesng35/restaurants/pkg/response"
)

// RealtimeHandler upgrades HTTP connections into websocket event streams.
// Streams carry public data, so no token is required.
type RealtimeHandler struct {
	hub *realtime.Hub
}

// NewRealtimeHandler constructs a realtime handler.
func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// GET /ws/:stream
func (h *RealtimeHandler) Stream(c *gin.Context) {
	if h.hub == nil {
		response.Error(c, errors.ErrNotFound)
		return
	}

	streams := gatherStreams(c)
	if len(streams) == 0 {
		streams = []string{realtime.StreamRestaurants}
	}
	for _, stream := range streams {
		if !slices.Contains(realtime.KnownStreams, stream) {
			response.Error(c, errors.NewNotFound("Unknown stream "+stream))
			return
		}
	}

	h.hub.Serve(streams, c.Writer, c.Request)
}

func gatherStreams(c *gin.Context) []string {
	var streams []string

	if pathStream := normalizeStream(c.Param("stream")); pathStream != "" {
		streams = append(streams, pathStream)
	}

	for _, queryStream := range c.QueryArray("stream") {
		if normalized := normalizeStream(queryStream); normalized != "" {
			streams = append(streams, normalized)
		}
	}

	if raw := c.Query("streams"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if normalized := normalizeStream(part); normalized != "" {
				streams = append(streams, normalized)
			}
		}
	}

	return streams
}

func normalizeStream(stream string) string {
	return strings.ToLower(strings.TrimSpace(stream))
}
