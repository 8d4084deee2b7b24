package installer

// resolveFeatures runs stage (a): give a handler one chance to add or
// remove entries of the active feature set before any rule evaluation
// happens. A nil Env.Features is treated as empty.
func (r *run) resolveFeatures() {
	if r.opts.Env.Features == nil {
		r.opts.Env.Features = map[string]bool{}
	}
	r.emit(FilterFeatures{Features: &r.opts.Env.Features})
	r.emit(LoadedFeatures{Features: r.opts.Env.Features})
}
