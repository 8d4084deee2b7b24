package installer

import (
	"context"

	"github.com/quasar/mcinstall/internal/download"
	"github.com/quasar/mcinstall/internal/events"
	"github.com/quasar/mcinstall/internal/telemetry"
)

// run carries the mutable state of one Install call across every pipeline
// stage. Each stage is a method on *run living in its own file, mirroring
// how the reference launcher's single long-lived struct grew one method
// per responsibility rather than one type per responsibility.
type run struct {
	ctx     context.Context
	opts    Options
	handler events.Handler
	log     *telemetry.Logger

	state State

	mgr *download.Manager

	pending []download.Entry
}

func newRun(ctx context.Context, opts Options, handler events.Handler) *run {
	return &run{
		ctx:     ctx,
		opts:    opts,
		handler: handler,
		log:     opts.Logger,
		state:   StateIdle,
		mgr:     download.NewManager(opts.Concurrency),
	}
}

// enqueue adds e to the batch this run will fetch in the download stage.
// No two entries in a single run may target the same destination;
// later stages only ever enqueue a destination once per run.
func (r *run) enqueue(e download.Entry) {
	r.pending = append(r.pending, e)
}
