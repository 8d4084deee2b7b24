package installer

import (
	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/download"
	"github.com/quasar/mcinstall/internal/javart"
)

// resolveJVM runs stage (h): apply the configured acquisition policy
// against the hierarchy's required major version, enqueueing the Mojang
// runtime's files when that path is taken.
func (r *run) resolveJVM(h core.Hierarchy) (core.JVMDescriptor, error) {
	r.setState(StateJVM)

	req := h.JavaVersion()

	sel, err := javart.Resolve(r.ctx, r.opts.JVMPolicy, req.MajorVersion, r.opts.StaticJVMPath, r.mgr, r.opts.JVMDir, r.opts.StrictJVMCheck, func(c javart.Candidate) {
		r.emit(FoundJvmSystemVersion{Candidate: c})
	})
	if err != nil {
		return core.JVMDescriptor{}, err
	}

	if sel.Plan != nil {
		for _, e := range sel.Plan.Entries {
			r.enqueueJVMFile(e)
		}
	}

	compatible := sel.Descriptor.CompatScore != nil
	r.emit(LoadedJvm{File: sel.Descriptor.File, DetectedVersion: sel.Descriptor.DetectedVersion, Compatible: compatible})

	return sel.Descriptor, nil
}

// enqueueJVMFile adapts a javart.Plan download entry to the run's shared
// pending batch, applying the strict-check gate the plan already baked its
// SHA-1 presence on.
func (r *run) enqueueJVMFile(e download.Entry) {
	r.enqueue(e)
}
