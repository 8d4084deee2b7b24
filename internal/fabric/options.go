package fabric

import "github.com/quasar/mcinstall/internal/mojang"

// Options configures one Fabric-family install. Mojang carries the
// wrapped installer/auth/legacy-fix configuration; its GameVersion field
// is overwritten internally with this layer's synthesized root name once
// resolution completes, so a caller doesn't set it directly.
type Options struct {
	Mojang        mojang.Options
	Loader        Loader
	GameVersion   GameVersion
	LoaderVersion LoaderVersion
}
