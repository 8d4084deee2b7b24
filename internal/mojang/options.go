package mojang

import (
	"github.com/quasar/mcinstall/internal/account"
	"github.com/quasar/mcinstall/internal/installer"
)

// QuickPlayMode selects which of Mojang's four quick-play launch features,
// if any, was requested.
type QuickPlayMode int

const (
	QuickPlayNone QuickPlayMode = iota
	QuickPlaySingleplayer
	QuickPlayMultiplayer
	QuickPlayRealms
)

// QuickPlay carries the quick-play request and whichever of its fields the
// selected Mode needs: Path for singleplayer, Host/Port for multiplayer,
// RealmID for realms.
type QuickPlay struct {
	Mode    QuickPlayMode
	Path    string
	Host    string
	Port    string
	RealmID string
}

// Resolution is a requested custom window size.
type Resolution struct {
	Width, Height int
}

// Options configures one Mojang-layer install, wrapping the Base installer's
// own Options with the manifest/auth/feature concerns adds.
type Options struct {
	Installer installer.Options

	GameVersion GameVersion

	Account *account.Account

	Demo       bool
	Resolution *Resolution
	QuickPlay  QuickPlay

	DisableMultiplayer bool
	DisableChat        bool

	// LWJGLVersion, if set, requests the LWJGL dependency swap fix for a
	// version like "3.2.3" or any "3.3.*" patch release.
	LWJGLVersion string

	// LegacyFixes enables the proxy/merge-sort/resolution/quick-play
	// fallbacks for versions that predate the tokens they patch around.
	// Disabled callers get bare unsupported-feature warnings
	// instead of argument injection.
	LegacyFixes bool

	// CacheDir holds the downloaded version manifest and its sidecar,
	// defaulting to <MainDir>/cache if unset.
	CacheDir string

	// FetchExclude names versions the invalidation check skips even when
	// their on-disk metadata's sha1 disagrees with the manifest.
	FetchExclude map[string]bool
	// SkipInvalidation disables the invalidation check entirely; no
	// manifest fetch is required in that case unless a NeedVersion hook
	// fires for a genuinely missing file.
	SkipInvalidation bool
}
