package forge

import "github.com/quasar/mcinstall/internal/events"

// Event wraps every inner event this layer forwards, composing with
// Mojang/Base the same way the Fabric-family layer does.
type Event struct {
	events.Base
	Inner events.Event
}

// Unwrap implements events.Wrapped.
func (e Event) Unwrap() events.Event { return e.Inner }

// InstallReason names why a Forge/NeoForge install was triggered.
type InstallReason string

const (
	ReasonMissingVersionMetadata InstallReason = "missing_version_metadata"
	ReasonMissingCoreLibrary     InstallReason = "missing_core_library"
	ReasonMissingClientExtra     InstallReason = "missing_client_extra"
	ReasonMissingClientSRG       InstallReason = "missing_client_srg"
	ReasonMissingPatchedClient   InstallReason = "missing_patched_client"
	ReasonMissingUniversalClient InstallReason = "missing_universal_client"
)

// Installing is emitted once an install is triggered, naming the
// temporary directory the multi-stage process works under.
type Installing struct {
	events.Base
	TmpDir string
	Reason InstallReason
}

// FetchInstaller/FetchedInstaller frame the installer JAR download.
type FetchInstaller struct {
	events.Base
	Version string
}

type FetchedInstaller struct {
	events.Base
	Version string
}

// InstallingGame is emitted before recursing into Base/Mojang for the
// game version the installer requires.
type InstallingGame struct {
	events.Base
	GameVersion string
}

// FetchInstallerLibraries/FetchedInstallerLibraries frame the installer's
// own library set being fetched, distinct from the game's libraries.
type FetchInstallerLibraries struct {
	events.Base
	Count int
}

type FetchedInstallerLibraries struct {
	events.Base
}

// RunInstallerProcessor is emitted before each processor invocation.
type RunInstallerProcessor struct {
	events.Base
	Name string
	Task string
}

// Installed is emitted once the synthesized version file has been
// written and Base's retry has been requested.
type Installed struct {
	events.Base
	Name string
}
