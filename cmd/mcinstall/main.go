// Command mcinstall is a thin CLI front end over the installer engine: it
// parses a loader/version request, wires up config-derived options, drives
// the right extension layer's Install, and prints progress events as they
// arrive. It exists to make the engine runnable end to end; a real
// front end (TUI, GUI, launcher backend) is expected to drive the same
// packages directly instead of shelling out to this binary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/quasar/mcinstall/internal/account"
	"github.com/quasar/mcinstall/internal/config"
	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/events"
	"github.com/quasar/mcinstall/internal/fabric"
	"github.com/quasar/mcinstall/internal/forge"
	"github.com/quasar/mcinstall/internal/installer"
	"github.com/quasar/mcinstall/internal/javart"
	"github.com/quasar/mcinstall/internal/mojang"
)

var offlineNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

func main() {
	loader := flag.String("loader", "vanilla", "vanilla|fabric|quilt|legacyfabric|babric|forge|neoforge")
	gameVersion := flag.String("game-version", "", "Minecraft version, or \"release\"/\"snapshot\" for vanilla, \"stable\"/\"unstable\" for Fabric-family")
	loaderVersion := flag.String("loader-version", "", "loader version, or \"stable\"/\"latest\" depending on -loader")
	playerName := flag.String("player-name", "", "offline account name (derives a UUIDv5 identity); empty uses the host name")
	dataDir := flag.String("data-dir", "", "override the default data directory")
	demo := flag.Bool("demo", false, "request demo mode")
	width := flag.Int("width", 0, "custom window width (0 = unset)")
	height := flag.Int("height", 0, "custom window height (0 = unset)")
	flag.Parse()

	if *gameVersion == "" {
		fmt.Fprintln(os.Stderr, "mcinstall: -game-version is required")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("load config", err)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if err := cfg.EnsureDirs(); err != nil {
		fatal("create directories", err)
	}

	var acc *account.Account
	if *playerName != "" {
		acc = &account.Account{
			ID:   uuid.NewSHA1(offlineNamespace, []byte(*playerName)).String(),
			Name: *playerName,
			Type: account.TypeOffline,
		}
	}

	mojangOpts := mojang.Options{
		Installer:   cfg.InstallerOptions(),
		Account:     acc,
		Demo:        *demo,
		LegacyFixes: true,
	}
	if *width > 0 && *height > 0 {
		mojangOpts.Resolution = &mojang.Resolution{Width: *width, Height: *height}
	}

	handler := events.HandlerFunc(printEvent)

	var game core.Game
	switch *loader {
	case "vanilla":
		mojangOpts.GameVersion = gameVersionFrom(*gameVersion)
		game, err = mojang.Install(context.Background(), mojangOpts, handler)
	case "fabric", "quilt", "legacyfabric", "babric":
		l, ok := loaderKind(*loader)
		if !ok {
			fatal("unknown loader", fmt.Errorf("%s", *loader))
		}
		game, err = fabric.Install(context.Background(), fabric.Options{
			Mojang:        mojangOpts,
			Loader:        l,
			GameVersion:   fabricGameVersionFrom(*gameVersion),
			LoaderVersion: fabricLoaderVersionFrom(*loaderVersion),
		}, handler)
	case "forge", "neoforge":
		kind := forge.Forge
		if *loader == "neoforge" {
			kind = forge.NeoForge
		}
		game, err = forge.Install(context.Background(), forge.Options{
			Mojang:        mojangOpts,
			Kind:          kind,
			GameVersion:   *gameVersion,
			LoaderVersion: forgeLoaderVersionFrom(*loaderVersion),
			JavaPolicy:    javart.PolicySystemThenMojang,
		}, handler)
	default:
		fatal("unknown loader", fmt.Errorf("%s", *loader))
	}
	if err != nil {
		fatal("install", err)
	}

	fmt.Printf("\nReady to launch: %s\n", game.MainClass)
	fmt.Printf("  %s (cwd %s)\n", game.JVMFile, game.MCDir)
}

func gameVersionFrom(s string) mojang.GameVersion {
	switch s {
	case "release":
		return mojang.Release()
	case "snapshot":
		return mojang.Snapshot()
	default:
		return mojang.Name(s)
	}
}

func fabricGameVersionFrom(s string) fabric.GameVersion {
	switch s {
	case "stable":
		return fabric.GameStable()
	case "unstable":
		return fabric.GameUnstable()
	default:
		return fabric.GameName(s)
	}
}

func fabricLoaderVersionFrom(s string) fabric.LoaderVersion {
	switch s {
	case "", "stable":
		return fabric.LoaderStable()
	case "unstable":
		return fabric.LoaderUnstable()
	default:
		return fabric.LoaderName(s)
	}
}

func forgeLoaderVersionFrom(s string) forge.Version {
	switch s {
	case "", "latest":
		return forge.Latest(true)
	case "latest-unstable":
		return forge.Latest(false)
	default:
		return forge.VersionName(s)
	}
}

func loaderKind(s string) (fabric.Loader, bool) {
	switch s {
	case "fabric":
		return fabric.Fabric, true
	case "quilt":
		return fabric.Quilt, true
	case "legacyfabric":
		return fabric.LegacyFabric, true
	case "babric":
		return fabric.Babric, true
	default:
		return 0, false
	}
}

func printEvent(e events.Event) {
	inner := events.Unwrap(e)
	if dp, ok := inner.(installer.DownloadProgress); ok {
		fmt.Printf("  downloading: %d/%d files, %d/%d bytes\n",
			dp.Progress.DoneCount, dp.Progress.TotalCount, dp.Progress.DoneBytes, dp.Progress.TotalBytes)
		return
	}
	fmt.Printf("  %T\n", inner)
}

func fatal(stage string, err error) {
	fmt.Fprintf(os.Stderr, "mcinstall: %s: %v\n", stage, err)
	os.Exit(1)
}
