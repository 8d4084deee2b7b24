package installer

import (
	"os"
	"path/filepath"

	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/download"
	"github.com/quasar/mcinstall/internal/gav"
	"github.com/quasar/mcinstall/internal/integrity"
)

// collectLibraries runs stage (d): resolve every hierarchy level's raw
// library list in order (most-derived first), applying natives-classifier
// resolution, rule evaluation, and wildcard-GAV de-duplication where the
// first occurrence across the whole hierarchy wins.
func (r *run) collectLibraries(h core.Hierarchy) ([]core.ResolvedLibrary, error) {
	r.setState(StateLibraries)

	seen := map[gav.GAV]bool{}
	var out []core.ResolvedLibrary
	for _, level := range h.LibraryLevels() {
		resolved, err := core.ResolveLibraries(level, r.opts.Env, seen)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved...)
	}

	r.emit(FilterLibraries{Libraries: &out})
	r.emit(LoadedLibraries{Libraries: out})
	return out, nil
}

// libraryDest returns the on-disk path a resolved library belongs at,
// honoring an explicit path override (rare, used by some Forge-family
// metadata) over the GAV-derived Maven layout.
func (r *run) libraryDest(lib core.ResolvedLibrary) string {
	if lib.PathOverride != "" {
		return filepath.Join(r.opts.LibrariesDir, filepath.FromSlash(lib.PathOverride))
	}
	return filepath.Join(r.opts.LibrariesDir, lib.GAV.FilePath(string(filepath.Separator)))
}

// verifyLibraries runs stage (e): for each resolved library, decide whether
// its file already satisfies integrity.Verify or must be enqueued, and
// builds the two ordered file vectors. The classpath vector here holds
// only non-natives entries; the caller prepends the client JAR so the
// final classpath always starts with it.
func (r *run) verifyLibraries(libs []core.ResolvedLibrary) (core.LibrariesFiles, error) {
	var files core.LibrariesFiles

	for _, lib := range libs {
		dest := r.libraryDest(lib)

		want := integrity.Expectation{}
		if lib.Artifact != nil {
			want.Size = lib.Artifact.Size
			if r.opts.StrictLibrariesCheck {
				want.Sha1 = lib.Artifact.SHA1
			}
		}

		ok, err := integrity.Verify(dest, want)
		if err != nil {
			return core.LibrariesFiles{}, core.Internal(dest, err)
		}
		if !ok {
			if lib.Artifact == nil {
				if _, statErr := os.Stat(dest); statErr != nil {
					return core.LibrariesFiles{}, core.Newf(core.KindLibraryNotFound, lib.GAV.String(), nil)
				}
			} else {
				r.enqueue(download.Entry{
					URL:  lib.Artifact.URL,
					Dest: dest,
					Size: lib.Artifact.Size,
					SHA1: want.Sha1,
					Mode: download.Cache,
				})
			}
		}

		if lib.Natives {
			files.Natives = append(files.Natives, dest)
		} else {
			files.Classpath = append(files.Classpath, dest)
		}
	}

	return files, nil
}
