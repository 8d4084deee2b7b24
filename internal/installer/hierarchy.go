package installer

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/events"
)

// versionFile returns the on-disk path of a version's metadata file,
// <versions_dir>/<name>/<name>.json.
func (r *run) versionFile(name string) string {
	return filepath.Join(r.opts.VersionsDir, name, name+".json")
}

// loadHierarchy follows inheritsFrom from opts.RootVersion, most-derived
// first, applying the NeedVersion retry-once protocol at each level and
// failing with HierarchyLoop if a name repeats.
func (r *run) loadHierarchy() (core.Hierarchy, error) {
	r.setState(StateHierarchy)

	var h core.Hierarchy
	seen := map[string]bool{}
	name := r.opts.RootVersion

	for name != "" {
		if seen[name] {
			return core.Hierarchy{}, core.Newf(core.KindHierarchyLoop, name, nil)
		}
		seen[name] = true

		r.emit(LoadVersion{Name: name})

		meta, err := r.loadOneVersion(name)
		if err != nil {
			return core.Hierarchy{}, err
		}

		h.Names = append(h.Names, name)
		h.Metas = append(h.Metas, meta)
		r.emit(LoadedVersion{Name: name})

		name = meta.InheritsFrom
	}

	r.emit(LoadedHierarchy{Names: h.Names})
	return h, nil
}

// loadOneVersion reads and parses one <name>.json, giving a wrapping
// handler one chance to supply the file (e.g. by fetching it from a
// version manifest) if it's missing on first attempt.
func (r *run) loadOneVersion(name string) (core.VersionMeta, error) {
	file := r.versionFile(name)

	data, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		retry := false
		r.emit(NeedVersion{Name: name, File: file, Retry: &retry})
		if retry {
			data, err = os.ReadFile(file)
		}
	}
	if err != nil {
		if os.IsNotExist(err) {
			return core.VersionMeta{}, core.Newf(core.KindVersionNotFound, name, nil)
		}
		return core.VersionMeta{}, core.Internal(file, err)
	}

	var meta core.VersionMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return core.VersionMeta{}, core.Internal(file, err)
	}
	return meta, nil
}

// emit forwards e to the run's handler, or to events.Nop if none was given.
func (r *run) emit(e events.Event) {
	if r.handler != nil {
		r.handler.Handle(e)
		return
	}
	events.Nop.Handle(e)
}

func (r *run) setState(s State) {
	r.state = s
}
