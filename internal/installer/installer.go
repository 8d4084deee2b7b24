// Package installer implements the Base installer pipeline: hierarchy load,
// client/library/logger/asset/JVM resolution, the download batch, on-disk
// finalization, and argument assembly, producing a core.Game a caller can
// spawn.
package installer

import (
	"context"

	"go.uber.org/zap"

	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/events"
)

// Install runs the full pipeline described by opts, reporting progress and
// inviting mutation through handler, and returns the assembled Game ready
// to spawn. handler may be nil, equivalent to events.Nop.
func Install(ctx context.Context, opts Options, handler events.Handler) (core.Game, error) {
	opts = opts.withDefaults()
	r := newRun(ctx, opts, handler)
	r.log.Info("install starting", zap.String("root_version", opts.RootVersion), zap.String("main_dir", opts.MainDir))

	r.resolveFeatures()

	h, err := r.loadHierarchy()
	if err != nil {
		return core.Game{}, err
	}
	r.log.Info("hierarchy loaded", zap.Strings("versions", h.Names))

	clientJar, err := r.resolveClient(h)
	if err != nil {
		return core.Game{}, err
	}

	libs, err := r.collectLibraries(h)
	if err != nil {
		return core.Game{}, err
	}

	libFiles, err := r.verifyLibraries(libs)
	if err != nil {
		return core.Game{}, err
	}
	libFiles.Classpath = append([]string{clientJar}, libFiles.Classpath...)
	r.emit(FilterLibrariesFiles{Files: &libFiles})
	r.emit(LoadedLibrariesFiles{Files: libFiles})

	logger, err := r.resolveLogger(h)
	if err != nil {
		return core.Game{}, err
	}

	_, assetsMapping, err := r.resolveAssets(h)
	if err != nil {
		return core.Game{}, err
	}

	jvmDesc, err := r.resolveJVM(h)
	if err != nil {
		return core.Game{}, err
	}

	r.log.Info("download batch starting", zap.Int("entries", len(r.pending)))
	if err := r.runDownloadBatch(); err != nil {
		return core.Game{}, err
	}

	binDir, err := r.finalizeLibraries(libFiles)
	if err != nil {
		return core.Game{}, err
	}

	if err := r.finalizeAssets(assetsMapping); err != nil {
		return core.Game{}, err
	}

	if err := r.finalizeJVM(jvmDesc); err != nil {
		return core.Game{}, err
	}

	assetIndexName := ""
	if ref, legacy := h.AssetIndexRef(); ref != nil {
		assetIndexName = ref.ID
	} else {
		assetIndexName = legacy
	}

	game, err := r.buildArguments(h, libFiles, binDir, assetIndexName, assetsMapping, logger, jvmDesc)
	if err != nil {
		return core.Game{}, err
	}

	r.setState(StateDone)
	r.emit(Done{Game: game})
	r.log.Info("install finished", zap.String("main_class", game.MainClass))
	return game, nil
}
