// Package installer implements the Base installer pipeline: hierarchy load,
// client/library/logger/asset/JVM resolution, the download batch, on-disk
// finalization, and argument assembly, producing a core.Game a caller can
// spawn.
package installer

import (
	"path/filepath"

	"github.com/quasar/mcinstall/internal/javart"
	"github.com/quasar/mcinstall/internal/rules"
	"github.com/quasar/mcinstall/internal/telemetry"
)

// Options configures one install invocation.
type Options struct {
	MainDir string // everything else defaults relative to this unless overridden

	VersionsDir   string
	LibrariesDir  string
	AssetsDir     string
	JVMDir        string
	BinDir        string

	RootVersion string

	LauncherName    string
	LauncherVersion string

	Env rules.Environment

	// StrictLibrariesCheck gates whether the client JAR and library
	// artifacts are SHA-1 verified (always size-verified).
	StrictLibrariesCheck bool
	// StrictJVMCheck gates whether Mojang-provided JVM files are SHA-1
	// verified as well as size-verified.
	StrictJVMCheck bool

	JVMPolicy     javart.Policy
	StaticJVMPath string

	Concurrency int

	Logger *telemetry.Logger
}

// VersionFile returns the on-disk path of name's metadata file, applying
// the same VersionsDir default withDefaults would, so wrapping layers (e.g.
// internal/mojang's invalidation check) can locate it before an Install call
// has run withDefaults itself.
func (o Options) VersionFile(name string) string {
	versionsDir := o.VersionsDir
	if versionsDir == "" {
		versionsDir = filepath.Join(o.MainDir, "versions")
	}
	return filepath.Join(versionsDir, name, name+".json")
}

// withDefaults fills unset directory fields relative to MainDir, matching
// the filesystem layout names.
func (o Options) withDefaults() Options {
	if o.VersionsDir == "" {
		o.VersionsDir = filepath.Join(o.MainDir, "versions")
	}
	if o.LibrariesDir == "" {
		o.LibrariesDir = filepath.Join(o.MainDir, "libraries")
	}
	if o.AssetsDir == "" {
		o.AssetsDir = filepath.Join(o.MainDir, "assets")
	}
	if o.JVMDir == "" {
		o.JVMDir = filepath.Join(o.MainDir, "jvm")
	}
	if o.BinDir == "" {
		o.BinDir = filepath.Join(o.MainDir, "bin")
	}
	if o.LauncherName == "" {
		o.LauncherName = "mcinstall"
	}
	if o.LauncherVersion == "" {
		o.LauncherVersion = "0"
	}
	if o.Logger == nil {
		o.Logger = telemetry.NewNop()
	}
	return o
}
