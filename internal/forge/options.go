package forge

import (
	"github.com/quasar/mcinstall/internal/javart"
	"github.com/quasar/mcinstall/internal/mojang"
)

// Options configures one Forge/NeoForge install.
type Options struct {
	Mojang mojang.Options

	Kind Kind

	// GameVersion is the vanilla Minecraft version this loader version
	// targets; Forge/NeoForge installers are always tied to one specific
	// game version, so unlike Fabric there is no online alias for it.
	GameVersion string

	LoaderVersion Version

	// JavaPolicy/StaticJavaPath select the JVM processors run under,
	// reusing the same policy vocabulary the Base installer's own JVM
	// resolution uses.
	JavaPolicy      javart.Policy
	StaticJavaPath  string
	RequiredJavaMajor int

	// TmpDir overrides the temporary working directory the multi-stage
	// install unpacks into; defaults to a fresh os.MkdirTemp when unset.
	TmpDir string
}
