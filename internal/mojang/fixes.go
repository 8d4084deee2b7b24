package mojang

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/gav"
	"github.com/quasar/mcinstall/internal/rules"
)

// lwjglAcceptedRange is "3.2.3, or any 3.3.x patch release" expressed as a
// semver constraint rather than a prefix check, so a future 3.3.10 etc.
// keeps matching without touching this file.
var lwjglAcceptedRange = mustConstraint("3.2.3 || >=3.3.0, <3.4.0")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// legacyProxyPort returns the betacraft.uk proxy port for a leaf version
// name, and whether the fix applies at all.
func legacyProxyPort(name string) (int, bool) {
	switch {
	case name == "13w16a" || name == "13w16b":
		return 11707, true
	case isVersionRange1_0To1_5(name):
		return 11707, true
	case strings.HasPrefix(name, "a1.0."):
		return 80, true
	case strings.HasPrefix(name, "a1.1."):
		return 11702, true
	case strings.HasPrefix(name, "a1.") || strings.HasPrefix(name, "b1."):
		return 11705, true
	default:
		return 0, false
	}
}

// isVersionRange1_0To1_5 approximates the reference launcher's "1.0 through
// 1.5.x" release-name check without a full semver parser: every release in
// that span is "1." followed by a single digit 0-5, optionally a ".x" patch.
func isVersionRange1_0To1_5(name string) bool {
	rest := strings.TrimPrefix(name, "1.")
	if rest == name {
		return false
	}
	if rest == "" {
		return false
	}
	major := rest[0]
	if major < '0' || major > '5' {
		return false
	}
	tail := rest[1:]
	return tail == "" || strings.HasPrefix(tail, ".")
}

// usesLegacyMergeSort reports whether the leaf version name needs
// -Djava.util.Arrays.useLegacyMergeSort=true.
func usesLegacyMergeSort(name string) bool {
	return strings.HasPrefix(name, "a1.") || strings.HasPrefix(name, "b1.")
}

// brokenAuthlibVersion is the com.mojang:authlib version Mojang once
// shipped with a broken download entry; fixedAuthlibVersion/URL/size/sha1
// are the known-good replacement.
var (
	brokenAuthlibVersion = "2.1.28"
	fixedAuthlibVersion  = "2.2.30"
	fixedAuthlibURL      = "https://libraries.minecraft.net/com/mojang/authlib/2.2.30/authlib-2.2.30.jar"
	fixedAuthlibSize     = int64(87497)
	fixedAuthlibSHA1     = "d36d312b8b0d38be5ba367fe2cc53df6d071cd50"
)

// fixBrokenAuthlib rewrites the com.mojang:authlib:2.1.28 entry in place, if
// present, to a known-good version with corrected download info so Base
// re-downloads it.
func fixBrokenAuthlib(libs []core.ResolvedLibrary) {
	for i, lib := range libs {
		if lib.GAV.Group() != "com.mojang" || lib.GAV.Artifact() != "authlib" {
			continue
		}
		if lib.GAV.Version() != brokenAuthlibVersion {
			continue
		}
		libs[i].GAV = lib.GAV.WithVersion(fixedAuthlibVersion)
		libs[i].Artifact = &core.Artifact{
			URL:  fixedAuthlibURL,
			Size: fixedAuthlibSize,
			SHA1: fixedAuthlibSHA1,
		}
	}
}

// lwjglVersionAccepted is the set this layer knows how to rewrite an
// org.lwjgl:* dependency set to: 3.2.3 exactly, or any 3.3.x patch release.
func lwjglVersionAccepted(version string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return lwjglAcceptedRange.Check(v)
}

// lwjglPlatformClassifier derives the natives-<platform> classifier LWJGL
// 3.2.3+ publishes for env's (OS, arch), or "" if the combination has no
// published artifact.
func lwjglPlatformClassifier(env rules.Environment) string {
	switch env.OSName {
	case "linux":
		switch env.OSArch {
		case "x86_64":
			return "natives-linux"
		case "aarch64":
			return "natives-linux-arm64"
		case "arm":
			return "natives-linux-arm32"
		}
	case "osx":
		switch env.OSArch {
		case "x86_64":
			return "natives-macos"
		case "aarch64":
			return "natives-macos-arm64"
		}
	case "windows":
		switch env.OSArch {
		case "x86_64":
			return "natives-windows"
		case "x86":
			return "natives-windows-x86"
		case "aarch64":
			return "natives-windows-arm64"
		}
	}
	return ""
}

// swapLwjgl strips every org.lwjgl:* natives-classifier entry, rewrites the
// remaining org.lwjgl:* artifacts to version, and re-adds one natives
// entry for env's platform per rewritten artifact, addressed on Maven
// Central.
// Returns a LwjglFixNotFound error if version/env has no published natives
// artifact or version isn't one swapLwjgl recognizes.
func swapLwjgl(libs []core.ResolvedLibrary, version string, env rules.Environment) ([]core.ResolvedLibrary, error) {
	if !lwjglVersionAccepted(version) {
		return nil, core.Newf(core.KindLwjglFixNotFound, version, nil)
	}
	classifier := lwjglPlatformClassifier(env)
	if classifier == "" {
		return nil, core.Newf(core.KindLwjglFixNotFound, version, nil).WithDetail(env.OSName + "/" + env.OSArch)
	}

	out := make([]core.ResolvedLibrary, 0, len(libs)+1)
	var artifacts []string
	for _, lib := range libs {
		if lib.GAV.Group() != "org.lwjgl" {
			out = append(out, lib)
			continue
		}
		if lib.Natives {
			continue // dropped: replaced by the single classifier entry below
		}
		rewritten := lib.GAV.WithVersion(version)
		out = append(out, core.ResolvedLibrary{
			GAV:      rewritten,
			Artifact: mavenCentralArtifact(rewritten),
		})
		artifacts = append(artifacts, lib.GAV.Artifact())
	}

	for _, artifact := range artifacts {
		g, err := gav.New("org.lwjgl", artifact, version, classifier, "jar")
		if err != nil {
			return nil, core.Internal(artifact, err)
		}
		out = append(out, core.ResolvedLibrary{
			GAV:      g,
			Natives:  true,
			Artifact: mavenCentralArtifact(g),
		})
	}
	return out, nil
}

const mavenCentralBase = "https://repo1.maven.org/maven2/"

func mavenCentralArtifact(g gav.GAV) *core.Artifact {
	return &core.Artifact{URL: mavenCentralBase + g.URLForm()}
}
