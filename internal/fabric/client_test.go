package fabric

import "testing"

func TestIsLoaderStableExplicitFlag(t *testing.T) {
	e := loaderVersionEntry{}
	e.Loader.Version = "0.16.0-beta.1"
	e.Loader.Stable = boolPtr(true)
	if !isLoaderStable(e) {
		t.Error("expected the explicit stable flag to win over the version-string heuristic")
	}
}

func TestIsLoaderStableHeuristicBeta(t *testing.T) {
	e := loaderVersionEntry{}
	e.Loader.Version = "0.16.0-beta.1"
	if isLoaderStable(e) {
		t.Error("expected -beta to be treated as unstable")
	}
}

func TestIsLoaderStableHeuristicPre(t *testing.T) {
	e := loaderVersionEntry{}
	e.Loader.Version = "0.15.0-pre.2"
	if isLoaderStable(e) {
		t.Error("expected -pre to be treated as unstable")
	}
}

func TestIsLoaderStableHeuristicPlainVersion(t *testing.T) {
	e := loaderVersionEntry{}
	e.Loader.Version = "0.15.11"
	if !isLoaderStable(e) {
		t.Error("expected a plain version with no stable flag to default stable")
	}
}

func TestLoaderLookupKnownLoaders(t *testing.T) {
	for _, l := range []Loader{Fabric, Quilt, LegacyFabric, Babric} {
		entry, ok := l.lookup()
		if !ok {
			t.Errorf("expected %v to be a registered loader", l)
		}
		if entry.baseURL == "" || entry.prefix == "" {
			t.Errorf("loader %v has an incomplete registry entry: %+v", l, entry)
		}
	}
}

func TestLoaderLookupUnknown(t *testing.T) {
	if _, ok := Loader(99).lookup(); ok {
		t.Error("expected an unregistered Loader value to miss")
	}
}
