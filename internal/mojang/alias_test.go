package mojang

import (
	"testing"

	"github.com/quasar/mcinstall/internal/core"
)

func TestGameVersionResolve(t *testing.T) {
	mm := core.Manifest{Latest: core.LatestVersions{Release: "1.21", Snapshot: "24w10a"}}

	cases := []struct {
		name string
		v    GameVersion
		want string
	}{
		{"release", Release(), "1.21"},
		{"snapshot", Snapshot(), "24w10a"},
		{"literal", Name("1.12.2"), "1.12.2"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.v.resolve(mm)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if got != c.want {
				t.Errorf("resolve() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestGameVersionResolveMissingLatestFails(t *testing.T) {
	mm := core.Manifest{}
	if _, err := Release().resolve(mm); err == nil {
		t.Fatal("expected an error when the manifest has no latest.release")
	}
}
