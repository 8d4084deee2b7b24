package fabric

import (
	"context"
	"fmt"

	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/events"
	"github.com/quasar/mcinstall/internal/mojang"
)

// Install resolves opts' (possibly-aliased) game and loader versions,
// synthesizes the root version name, and installs it by wrapping
// internal/mojang exactly the way internal/mojang wraps internal/installer.
func Install(ctx context.Context, opts Options, caller events.Handler) (core.Game, error) {
	entry, ok := opts.Loader.lookup()
	if !ok {
		return core.Game{}, fmt.Errorf("fabric: unknown loader %v", opts.Loader)
	}

	client := newClient()

	game, err := resolveGameVersion(ctx, client, entry.baseURL, opts.GameVersion)
	if err != nil {
		return core.Game{}, err
	}
	loader, err := resolveLoaderVersion(ctx, client, entry.baseURL, game, opts.LoaderVersion)
	if err != nil {
		return core.Game{}, err
	}

	rootName := entry.prefix + "-" + game + "-" + loader

	h := &handler{
		ctx: ctx, client: client, baseURL: entry.baseURL,
		game: game, loader: loader, rootName: rootName, inner: caller,
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
