package fabric

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/events"
	"github.com/quasar/mcinstall/internal/installer"
)

// handler watches the events the Mojang layer forwards, looking for the
// NeedVersion request for this install's synthesized root name. It never
// touches any other event type — everything else is just forwarded.
type handler struct {
	ctx      context.Context
	client   *retryablehttp.Client
	baseURL  string
	game     string
	loader   string
	rootName string
	inner    events.Handler

	err error
}

func (h *handler) Handle(e events.Event) {
	if nv, ok := events.Unwrap(e).(installer.NeedVersion); ok && nv.Name == h.rootName {
		h.handleNeedVersion(nv)
	}
	if h.inner != nil {
		h.inner.Handle(Event{Inner: e})
	}
}

// handleNeedVersion fetches the loader profile, overrides its id to the
// synthesized root name, and writes it into place so Base's retry finds
// a version file whose inheritsFrom chain resolves the rest of the way
// through the vanilla hierarchy.
func (h *handler) handleNeedVersion(nv installer.NeedVersion) {
	meta, status, err := fetchProfile(h.ctx, h.client, h.baseURL, h.game, h.loader)
	if err != nil {
		if status == 400 || status == 404 {
			h.err = h.classifyMissing()
		}
		return
	}
	meta.ID = h.rootName

	data, err := json.Marshal(meta)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(nv.File), 0o755); err != nil {
		return
	}
	if err := os.WriteFile(nv.File, data, 0o644); err != nil {
		return
	}
	*nv.Retry = true
}

// classifyMissing distinguishes an unknown game version from an unknown
// loader version by re-probing /versions/loader/<game>: an empty result
// means the game version itself has no loader builds (GameVersionNotFound);
// a non-empty result means the requested loader version just isn't one
// of them (LoaderVersionNotFound).
func (h *handler) classifyMissing() error {
	entries, _, err := fetchLoaderVersionsForGame(h.ctx, h.client, h.baseURL, h.game)
	if err != nil || len(entries) == 0 {
		return core.Newf(core.KindGameVersionNotFound, h.game, err)
	}
	return core.Newf(core.KindLoaderVersionNotFound, h.loader, nil)
}
