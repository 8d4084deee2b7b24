package core

import "testing"

func TestVersionTypeConstantsNonEmpty(t *testing.T) {
	types := []VersionType{VersionTypeRelease, VersionTypeSnapshot, VersionTypeOldBeta, VersionTypeOldAlpha}
	for _, vt := range types {
		if string(vt) == "" {
			t.Errorf("VersionType should not be empty string")
		}
	}
}

func TestLoaderTypeConstantsNonEmpty(t *testing.T) {
	types := []LoaderType{LoaderVanilla, LoaderFabric, LoaderQuilt, LoaderLegacyFabric, LoaderBabric, LoaderForge, LoaderNeoForge}
	for _, lt := range types {
		if string(lt) == "" {
			t.Errorf("LoaderType should not be empty string")
		}
	}
}

func TestDistributionForMajor(t *testing.T) {
	cases := map[int]string{
		8:  "jre-legacy",
		16: "java-runtime-alpha",
		17: "java-runtime-gamma",
		21: "java-runtime-delta",
	}
	for major, want := range cases {
		if got := DistributionForMajor(major); got != want {
			t.Errorf("DistributionForMajor(%d) = %q, want %q", major, got, want)
		}
	}
}
