package core

import (
	"strings"

	"github.com/quasar/mcinstall/internal/gav"
	"github.com/quasar/mcinstall/internal/rules"
)

// ResolvedLibrary is one entry of the ordered, de-duplicated library list
// produced by the collect stage, before download info or
// on-disk destinations are attached.
type ResolvedLibrary struct {
	GAV        gav.GAV
	Natives    bool // true if this entry is a platform natives artifact
	PathOverride string
	Artifact   *Artifact // download info, if any
}

// ResolveLibraries applies natives-classifier resolution and rule
// evaluation to one hierarchy level's raw library list, in order, skipping
// entries that don't apply to env. seen is the running wildcard-GAV
// de-duplication set shared across all hierarchy levels; first occurrence
// wins so later (less-derived) levels must not override it.
func ResolveLibraries(libs []Library, env rules.Environment, seen map[gav.GAV]bool) ([]ResolvedLibrary, error) {
	var out []ResolvedLibrary
	for _, lib := range libs {
		resolved, ok, err := resolveOne(lib, env)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		key := resolved.GAV.WildcardVersion()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, resolved)
	}
	return out, nil
}

func resolveOne(lib Library, env rules.Environment) (ResolvedLibrary, bool, error) {
	g, err := gav.Parse(lib.Name)
	if err != nil {
		return ResolvedLibrary{}, false, Internal(lib.Name, err)
	}

	natives := false
	if lib.Natives != nil {
		classifierTmpl, ok := lib.Natives[env.OSName]
		if !ok {
			return ResolvedLibrary{}, false, nil // OS not listed: skip entirely
		}
		arch := "64"
		if env.OSArch == "x86" || env.OSArch == "arm" {
			arch = "32"
		}
		classifier := strings.ReplaceAll(classifierTmpl, "${arch}", arch)
		g = g.WithClassifier(classifier)
		natives = true
	}

	if !rules.Matches(lib.Rules, env) {
		return ResolvedLibrary{}, false, nil
	}

	resolved := ResolvedLibrary{GAV: g, Natives: natives, PathOverride: lib.Path}
	resolved.Artifact = artifactFor(lib, g, natives)
	return resolved, true, nil
}

// artifactFor attaches download info from downloads.artifact/classifiers
// when present, or synthesizes it from the library's base URL and the
// GAV's own URL form otherwise.
func artifactFor(lib Library, g gav.GAV, natives bool) *Artifact {
	if lib.Downloads != nil {
		if natives {
			if a, ok := lib.Downloads.Classifiers[g.Classifier()]; ok {
				return a
			}
			return nil
		}
		if lib.Downloads.Artifact != nil {
			return lib.Downloads.Artifact
		}
	}
	if lib.URL == "" {
		return nil
	}
	base := strings.TrimRight(lib.URL, "/")
	return &Artifact{URL: base + "/" + g.URLForm()}
}
