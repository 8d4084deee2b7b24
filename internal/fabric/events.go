package fabric

import "github.com/quasar/mcinstall/internal/events"

// Event wraps an inner event from the layer below (Mojang, itself
// possibly wrapping a raw installer event), so a generic handler can
// reach the innermost event via events.Unwrap without knowing this
// layer exists.
type Event struct {
	events.Base
	Inner events.Event
}

func (e Event) Unwrap() events.Event { return e.Inner }
