// Package mojang wraps internal/installer with Mojang's online version
// manifest, authentication-argument substitution, and the handful of
// legacy-version launch fixes the reference launcher also special-cases.
package mojang

import "github.com/quasar/mcinstall/internal/core"

// GameVersion names the version to install, either literally or via one of
// the two manifest-relative aliases.
type GameVersion struct {
	alias string // "release", "snapshot", or "" for a literal Name
	name  string
}

// Release resolves to the manifest's current release.
func Release() GameVersion { return GameVersion{alias: "release"} }

// Snapshot resolves to the manifest's current snapshot.
func Snapshot() GameVersion { return GameVersion{alias: "snapshot"} }

// Name passes a literal version id through unresolved.
func Name(id string) GameVersion { return GameVersion{name: id} }

// resolve turns an alias into a concrete version id using mm's latest
// pointers; a literal Name passes through untouched.
func (v GameVersion) resolve(mm core.Manifest) (string, error) {
	switch v.alias {
	case "release":
		if mm.Latest.Release == "" {
			return "", core.Newf(core.KindLatestVersionNotFound, "release", nil)
		}
		return mm.Latest.Release, nil
	case "snapshot":
		if mm.Latest.Snapshot == "" {
			return "", core.Newf(core.KindLatestVersionNotFound, "snapshot", nil)
		}
		return mm.Latest.Snapshot, nil
	default:
		return v.name, nil
	}
}
