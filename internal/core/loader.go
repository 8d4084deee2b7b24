package core

// LoaderType names a mod loader family. Vanilla is a Mojang-only install;
// the rest each correspond to an extension layer on top of Base/Mojang.
type LoaderType string

const (
	LoaderVanilla      LoaderType = "vanilla"
	LoaderFabric       LoaderType = "fabric"
	LoaderQuilt        LoaderType = "quilt"
	LoaderLegacyFabric LoaderType = "legacyfabric"
	LoaderBabric       LoaderType = "babric"
	LoaderForge        LoaderType = "forge"
	LoaderNeoForge     LoaderType = "neoforge"
)
