package mojang

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/quasar/mcinstall/internal/account"
	"github.com/quasar/mcinstall/internal/argtmpl"
	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/download"
	"github.com/quasar/mcinstall/internal/events"
	"github.com/quasar/mcinstall/internal/installer"
)

// Install resolves opts.GameVersion against the online manifest (if it
// names an alias), runs the Base installer with the manifest-backed
// NeedVersion/invalidation/feature/library hooks wired in, and applies the
// authentication substitution and legacy-version fixes this layer adds
// before returning the final Game.
func Install(ctx context.Context, opts Options, caller events.Handler) (core.Game, error) {
	cacheDir := opts.CacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(opts.Installer.MainDir, "cache")
	}

	h := &handler{
		ctx:      ctx,
		mgr:      download.NewManager(opts.Installer.Concurrency),
		cacheDir: cacheDir,
		opts:     opts,
		env:      opts.Installer.Env,
		inner:    caller,
	}

	rootVersion := opts.GameVersion.name
	if opts.GameVersion.alias != "" {
		mm, err := h.getManifest()
		if err != nil {
			return core.Game{}, err
		}
		rootVersion, err = opts.GameVersion.resolve(mm)
		if err != nil {
			return core.Game{}, err
		}
	}

	installerOpts := opts.Installer
	installerOpts.RootVersion = rootVersion

	game, err := installer.Install(ctx, installerOpts, h)
	if err != nil {
		return core.Game{}, err
	}
	if h.libErr != nil {
		return core.Game{}, h.libErr
	}

	acc := opts.Account
	if acc == nil {
		acc = defaultAccount()
	}
	applyAuthAndFixes(&game, opts, rootVersion, acc, caller)

	return game, nil
}

// applyAuthAndFixes re-expands the auth_*/resolution/quick-play tokens Base
// left unresolved, falls back to legacy argument injection where a
// resolved version predates those tokens, and appends the unconditional
// disable-multiplayer/chat flags.
func applyAuthAndFixes(game *core.Game, opts Options, rootVersion string, acc *account.Account, caller events.Handler) {
	preGame := append([]string{}, game.GameArgs...)
	preJVM := append([]string{}, game.JVMArgs...)

	vars := authVars(acc)

	quickplaySupported := false
	switch opts.QuickPlay.Mode {
	case QuickPlaySingleplayer:
		vars["quickPlayPath"] = opts.QuickPlay.Path
		quickplaySupported = argtmpl.ContainsToken(preGame, "quickPlayPath")
	case QuickPlayMultiplayer:
		vars["quickPlayMultiplayer"] = opts.QuickPlay.Host + ":" + opts.QuickPlay.Port
		quickplaySupported = argtmpl.ContainsToken(preGame, "quickPlayMultiplayer")
	case QuickPlayRealms:
		vars["quickPlayRealms"] = opts.QuickPlay.RealmID
		quickplaySupported = argtmpl.ContainsToken(preGame, "quickPlayRealms")
	}

	resolutionSupported := opts.Resolution != nil && (argtmpl.ContainsToken(preGame, "resolution_width") || argtmpl.ContainsToken(preJVM, "resolution_width"))
	if opts.Resolution != nil {
		vars["resolution_width"] = strconv.Itoa(opts.Resolution.Width)
		vars["resolution_height"] = strconv.Itoa(opts.Resolution.Height)
	}

	game.JVMArgs = argtmpl.ExpandAll(game.JVMArgs, vars)
	game.GameArgs = argtmpl.ExpandAll(game.GameArgs, vars)

	if opts.QuickPlay.Mode != QuickPlayNone && !quickplaySupported {
		if opts.QuickPlay.Mode == QuickPlayMultiplayer && opts.LegacyFixes {
			game.GameArgs = append(game.GameArgs, "--server", opts.QuickPlay.Host, "--port", opts.QuickPlay.Port)
			emit(caller, FixedLegacyQuickPlay{Host: opts.QuickPlay.Host, Port: opts.QuickPlay.Port})
		} else {
			emit(caller, WarnUnsupportedQuickPlay{Mode: opts.QuickPlay.Mode})
		}
	}

	if opts.Resolution != nil && !resolutionSupported {
		if opts.LegacyFixes {
			game.GameArgs = append(game.GameArgs, "--width", strconv.Itoa(opts.Resolution.Width), "--height", strconv.Itoa(opts.Resolution.Height))
		} else {
			emit(caller, WarnUnsupportedResolution{})
		}
	}

	if opts.LegacyFixes {
		if port, ok := legacyProxyPort(rootVersion); ok {
			game.JVMArgs = append(game.JVMArgs, "-Dhttp.proxyHost=betacraft.uk", "-Dhttp.proxyPort="+strconv.Itoa(port))
		}
		if usesLegacyMergeSort(rootVersion) {
			game.JVMArgs = append(game.JVMArgs, "-Djava.util.Arrays.useLegacyMergeSort=true")
		}
	}

	if opts.DisableMultiplayer {
		game.GameArgs = append(game.GameArgs, "--disableMultiplayer")
	}
	if opts.DisableChat {
		game.GameArgs = append(game.GameArgs, "--disableChat")
	}
}

func emit(caller events.Handler, e events.Event) {
	if caller != nil {
		caller.Handle(e)
	}
}
