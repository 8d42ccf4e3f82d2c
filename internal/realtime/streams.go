package realtime

// Named realtime streams.
const (
	StreamRestaurants = "restaurants"
	StreamDishes      = "dishes"
)

// KnownStreams lists every stream a client may subscribe to.
var KnownStreams = []string{StreamRestaurants, StreamDishes}
