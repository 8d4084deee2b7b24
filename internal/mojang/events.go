package mojang

import "github.com/quasar/mcinstall/internal/events"

// Event wraps every inner internal/installer event this layer forwards, so a
// handler written against this layer can type-switch on mojang.Event while
// events.Unwrap still reaches the original installer event underneath.
type Event struct {
	events.Base
	Inner events.Event
}

// Unwrap implements events.Wrapped.
func (e Event) Unwrap() events.Event { return e.Inner }

// FixedLegacyQuickPlay is emitted when the requested quick-play mode wasn't
// natively supported by the resolved version and was instead patched in via
// legacy `--server`/`--port` game arguments.
type FixedLegacyQuickPlay struct {
	events.Base
	Host string
	Port string
}

// WarnUnsupportedQuickPlay is emitted when the requested quick-play mode
// could neither be substituted through a token nor patched in legacily.
type WarnUnsupportedQuickPlay struct {
	events.Base
	Mode QuickPlayMode
}

// WarnUnsupportedResolution is emitted when a custom resolution was
// requested but the resolved version exposes neither a resolution token nor
// the legacy-fix fallback.
type WarnUnsupportedResolution struct {
	events.Base
}
