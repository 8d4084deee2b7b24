package installer

import (
	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/download"
)

// runDownloadBatch runs stage (i): give a handler one chance to cancel the
// whole batch, then fetch every entry queued by the prior stages
// concurrently, surfacing per-entry failures as one KindDownload error
// wrapping the engine's *download.AggregateError.
func (r *run) runDownloadBatch() error {
	r.setState(StateDownloadBatch)

	cancel := false
	r.emit(DownloadResources{Cancel: &cancel})
	if cancel {
		return core.Newf(core.KindDownloadResourcesCancelled, "", nil)
	}

	if len(r.pending) == 0 {
		return nil
	}

	err := r.mgr.Batch(r.ctx, r.pending, func(p download.Progress) {
		r.emit(DownloadProgress{Progress: p})
	})
	if err != nil {
		return core.Newf(core.KindDownload, "", err)
	}
	return nil
}
