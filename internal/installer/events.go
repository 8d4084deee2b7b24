package installer

import (
	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/download"
	"github.com/quasar/mcinstall/internal/events"
	"github.com/quasar/mcinstall/internal/javart"
)

// FilterFeatures invites the caller to add/remove entries of the active
// feature set before rule evaluation begins. Features
// points at the environment's live feature map so a handler's edits take
// effect for the rest of the run.
type FilterFeatures struct {
	events.Base
	Features *map[string]bool
}

// LoadedFeatures reports the final feature set after FilterFeatures ran.
type LoadedFeatures struct {
	events.Base
	Features map[string]bool
}

// NeedVersion is emitted when a hierarchy level's metadata file is missing
// on disk. Retry lets a wrapping layer (Mojang, Fabric, Forge) fetch/
// synthesize the file and ask the pipeline to try again exactly once.
type NeedVersion struct {
	events.Base
	Name  string
	File  string
	Retry *bool
}

// LoadVersion/LoadedVersion frame the parse of one hierarchy level.
type LoadVersion struct {
	events.Base
	Name string
}

type LoadedVersion struct {
	events.Base
	Name string
}

// LoadedHierarchy is emitted once the full inheritsFrom chain is resolved.
type LoadedHierarchy struct {
	events.Base
	Names []string
}

// FilterLibraries invites mutation of the collected, de-duplicated library
// list before files are computed.
type FilterLibraries struct {
	events.Base
	Libraries *[]core.ResolvedLibrary
}

type LoadedLibraries struct {
	events.Base
	Libraries []core.ResolvedLibrary
}

// FilterLibrariesFiles invites mutation of the classpath/natives file lists
// before they're locked in.
type FilterLibrariesFiles struct {
	events.Base
	Files *core.LibrariesFiles
}

type LoadedLibrariesFiles struct {
	events.Base
	Files core.LibrariesFiles
}

// LoadAssets/LoadedAssets/VerifiedAssets frame the asset index stage.
type LoadAssets struct {
	events.Base
	IndexID string
}

type LoadedAssets struct {
	events.Base
	IndexID string
	Count   int
}

type VerifiedAssets struct {
	events.Base
	Missing int
}

// FoundJvmSystemVersion is emitted once per System-policy probe result.
type FoundJvmSystemVersion struct {
	events.Base
	Candidate javart.Candidate
}

// LoadedJvm reports the final JVM selection.
type LoadedJvm struct {
	events.Base
	File            string
	DetectedVersion string
	Compatible      bool
}

// DownloadResources invites cancellation before the download batch runs.
type DownloadResources struct {
	events.Base
	Cancel *bool
}

// DownloadProgress forwards the underlying download engine's progress tuple.
type DownloadProgress struct {
	events.Base
	Progress download.Progress
}

// Done is emitted once with the final Game descriptor.
type Done struct {
	events.Base
	Game core.Game
}
