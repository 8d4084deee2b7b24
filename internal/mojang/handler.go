package mojang

import (
	"context"
	"os"

	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/download"
	"github.com/quasar/mcinstall/internal/events"
	"github.com/quasar/mcinstall/internal/installer"
	"github.com/quasar/mcinstall/internal/integrity"
	"github.com/quasar/mcinstall/internal/rules"
)

// handler wraps a caller's events.Handler, inserting the manifest-backed
// NeedVersion/invalidation hooks, feature injection, and library fixes
// adds on top of the Base installer's own event protocol.
type handler struct {
	ctx      context.Context
	mgr      *download.Manager
	cacheDir string
	opts     Options
	env      rules.Environment
	inner    events.Handler

	manifest    *core.Manifest
	manifestErr error
	fetched     bool

	libErr error // set by applyLibraryFixes, checked by Install after the run completes
}

func (h *handler) getManifest() (core.Manifest, error) {
	if h.fetched {
		return deref(h.manifest), h.manifestErr
	}
	h.fetched = true
	mm, err := fetchManifest(h.ctx, h.mgr, h.cacheDir)
	if err != nil {
		h.manifestErr = err
		return core.Manifest{}, err
	}
	h.manifest = &mm
	return mm, nil
}

func deref(mm *core.Manifest) core.Manifest {
	if mm == nil {
		return core.Manifest{}
	}
	return *mm
}

// Handle implements events.Handler.
func (h *handler) Handle(e events.Event) {
	switch ev := e.(type) {
	case installer.FilterFeatures:
		h.injectFeatures(ev.Features)
	case installer.LoadVersion:
		h.maybeInvalidate(ev.Name)
	case installer.NeedVersion:
		h.handleNeedVersion(ev)
	case installer.FilterLibraries:
		h.applyLibraryFixes(ev.Libraries)
	}

	if h.inner != nil {
		h.inner.Handle(Event{Inner: e})
	}
}

// injectFeatures sets the quick-play/demo/resolution feature flags Base's
// rule evaluation needs before it filters libraries and arguments.
func (h *handler) injectFeatures(features *map[string]bool) {
	if *features == nil {
		*features = map[string]bool{}
	}
	f := *features
	f["is_demo_user"] = h.opts.Demo
	f["has_custom_resolution"] = h.opts.Resolution != nil

	f["has_quick_plays_support"] = h.opts.QuickPlay.Mode != QuickPlayNone
	f["is_quick_play_singleplayer"] = false
	f["is_quick_play_multiplayer"] = false
	f["is_quick_play_realms"] = false
	switch h.opts.QuickPlay.Mode {
	case QuickPlaySingleplayer:
		f["is_quick_play_singleplayer"] = true
	case QuickPlayMultiplayer:
		f["is_quick_play_multiplayer"] = true
	case QuickPlayRealms:
		f["is_quick_play_realms"] = true
	}
}

// maybeInvalidate compares name's on-disk metadata sha1 against the
// manifest and deletes the file on mismatch, so the normal missing-file
// path (and this layer's NeedVersion hook) re-fetches it.
func (h *handler) maybeInvalidate(name string) {
	if h.opts.SkipInvalidation || h.opts.FetchExclude[name] {
		return
	}
	mm, err := h.getManifest()
	if err != nil {
		return // best-effort: an unreachable manifest never blocks a local install
	}
	entry, ok := find(mm, name)
	if !ok || entry.SHA1 == "" {
		return
	}
	file := h.opts.Installer.VersionFile(name)
	ok2, err := integrity.Verify(file, integrity.Expectation{Sha1: entry.SHA1})
	if err != nil || ok2 {
		return
	}
	os.Remove(file)
}

// handleNeedVersion services the Base installer's retry-once protocol by
// downloading the manifest-addressed version file when one is missing.
func (h *handler) handleNeedVersion(ev installer.NeedVersion) {
	mm, err := h.getManifest()
	if err != nil {
		return
	}
	entry, ok := find(mm, ev.Name)
	if !ok {
		return
	}
	if err := h.mgr.Single(h.ctx, download.Entry{URL: entry.URL, Dest: ev.File, Mode: download.Cache}, nil); err != nil {
		return
	}
	*ev.Retry = true
}

// applyLibraryFixes runs the broken-authlib fix and, if requested, the
// LWJGL swap over the collected library list before files are computed.
// A failed swap is recorded on h.libErr; Install checks it
// once the run otherwise completes successfully.
func (h *handler) applyLibraryFixes(libs *[]core.ResolvedLibrary) {
	fixBrokenAuthlib(*libs)

	if h.opts.LWJGLVersion == "" {
		return
	}
	swapped, err := swapLwjgl(*libs, h.opts.LWJGLVersion, h.env)
	if err != nil {
		h.libErr = err
		return
	}
	*libs = swapped
}
