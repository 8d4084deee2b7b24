package installer

// State names one step of the Base installer pipeline, in the order a run
// passes through them.
type State int

const (
	StateIdle State = iota
	StateHierarchy
	StateClient
	StateLibraries
	StateLogger
	StateAssets
	StateJVM
	StateDownloadBatch
	StateFinalizeLibs
	StateFinalizeAssets
	StateFinalizeJvm
	StateArgs
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHierarchy:
		return "hierarchy"
	case StateClient:
		return "client"
	case StateLibraries:
		return "libraries"
	case StateLogger:
		return "logger"
	case StateAssets:
		return "assets"
	case StateJVM:
		return "jvm"
	case StateDownloadBatch:
		return "download_batch"
	case StateFinalizeLibs:
		return "finalize_libs"
	case StateFinalizeAssets:
		return "finalize_assets"
	case StateFinalizeJvm:
		return "finalize_jvm"
	case StateArgs:
		return "args"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}
