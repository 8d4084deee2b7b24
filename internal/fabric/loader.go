// Package fabric wraps the Mojang extension layer with the Fabric-family
// loader meta API (Fabric, Quilt, LegacyFabric, Babric), resolving a
// possibly-aliased (game, loader) version pair and registering a
// NeedVersion hook that synthesizes the merged version file the way the
// Mojang layer does for vanilla versions.
package fabric

// Loader selects which Fabric-family meta API this install targets. Each
// variant speaks the same v2/v3 endpoint shape against a different host
// and uses a different synthesized-version-name prefix.
type Loader int

const (
	Fabric Loader = iota
	Quilt
	LegacyFabric
	Babric
)

// registryEntry is the (base URL, synthesized-name prefix) pair a Loader
// resolves to.
type registryEntry struct {
	baseURL string
	prefix  string
}

var registry = map[Loader]registryEntry{
	Fabric:       {baseURL: "https://meta.fabricmc.net/v2", prefix: "fabric-loader"},
	Quilt:        {baseURL: "https://meta.quiltmc.org/v3", prefix: "quilt-loader"},
	LegacyFabric: {baseURL: "https://meta.legacyfabric.net/v2", prefix: "legacyfabric-loader"},
	Babric:       {baseURL: "https://meta.babric.glass-launcher.net/v2", prefix: "babric-loader"},
}

func (l Loader) lookup() (registryEntry, bool) {
	e, ok := registry[l]
	return e, ok
}

// String names the loader for logging/presentation.
func (l Loader) String() string {
	switch l {
	case Fabric:
		return "fabric"
	case Quilt:
		return "quilt"
	case LegacyFabric:
		return "legacyfabric"
	case Babric:
		return "babric"
	default:
		return "unknown"
	}
}
