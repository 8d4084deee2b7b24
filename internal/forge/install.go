package forge

import (
	"context"
	"fmt"

	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/download"
	"github.com/quasar/mcinstall/internal/events"
	"github.com/quasar/mcinstall/internal/mojang"
)

// Install synthesizes this install's root version name and installs it by
// wrapping internal/mojang exactly the way the Fabric-family layer does:
// the NeedVersion hook that fires for the missing synthesized file is
// where the entire installer-processor pipeline runs.
func Install(ctx context.Context, opts Options, caller events.Handler) (core.Game, error) {
	entry, ok := opts.Kind.lookup()
	if !ok {
		return core.Game{}, fmt.Errorf("forge: unknown kind %v", opts.Kind)
	}
	if opts.GameVersion == "" {
		return core.Game{}, fmt.Errorf("forge: GameVersion is required")
	}

	client := newMavenClient()
	mgr := download.NewManager(opts.Mojang.Installer.Concurrency)

	loaderVersion, err := resolveLoaderVersion(ctx, client, entry, opts.GameVersion, opts.LoaderVersion)
	if err != nil {
		return core.Game{}, err
	}
	rootName := opts.Kind.String() + "-" + opts.GameVersion + "-" + loaderVersion

	h := &handler{
		ctx: ctx, client: client, mgr: mgr, entry: entry,
		rootName: rootName, loaderVersion: loaderVersion, opts: opts, inner: caller,
	}

	mojangOpts := opts.Mojang
	mojangOpts.GameVersion = mojang.Name(rootName)

	result, err := mojang.Install(ctx, mojangOpts, h)
	if h.err != nil {
		return core.Game{}, h.err
	}
	if err != nil {
		return core.Game{}, err
	}
	return result, nil
}
