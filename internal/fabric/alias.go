package fabric

// GameVersion is a possibly-aliased Minecraft version request: a literal
// id, or Stable/Unstable resolved against /versions/game.
type GameVersion struct {
	mode string // "stable", "unstable", or "" for a literal Name
	name string
}

func GameStable() GameVersion          { return GameVersion{mode: "stable"} }
func GameUnstable() GameVersion        { return GameVersion{mode: "unstable"} }
func GameName(id string) GameVersion   { return GameVersion{name: id} }

// LoaderVersion is a possibly-aliased loader version request, resolved
// against /versions/loader/<game> when aliased.
type LoaderVersion struct {
	mode string
	name string
}

func LoaderStable() LoaderVersion        { return LoaderVersion{mode: "stable"} }
func LoaderUnstable() LoaderVersion      { return LoaderVersion{mode: "unstable"} }
func LoaderName(id string) LoaderVersion { return LoaderVersion{name: id} }
