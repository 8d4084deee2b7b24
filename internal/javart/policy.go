package javart

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/download"
)

// Policy selects how the installer acquires a JVM for a required major
// version.
type Policy int

const (
	// PolicyStatic uses a caller-supplied executable path unconditionally.
	PolicyStatic Policy = iota
	PolicySystem
	PolicyMojang
	PolicySystemThenMojang
	PolicyMojangThenSystem
)

// Selection is the resolved JVM this installer will use.
type Selection struct {
	Descriptor core.JVMDescriptor
	Plan       *Plan // non-nil only when satisfied by the Mojang path
}

// Resolve applies policy against a required major version. staticPath is
// only consulted for PolicyStatic. jvmRootDir is the mc_dir/jvm directory
// the Mojang path installs into.
func Resolve(ctx context.Context, policy Policy, required int, staticPath string, mgr *download.Manager, jvmRootDir string, strictJVMCheck bool, onCandidate func(Candidate)) (Selection, error) {
	switch policy {
	case PolicyStatic:
		return resolveStatic(ctx, required, staticPath)
	case PolicySystem:
		return resolveSystem(ctx, required, onCandidate)
	case PolicyMojang:
		return resolveMojang(ctx, required, mgr, jvmRootDir, strictJVMCheck)
	case PolicySystemThenMojang:
		if sel, err := resolveSystem(ctx, required, onCandidate); err == nil {
			return sel, nil
		}
		return resolveMojang(ctx, required, mgr, jvmRootDir, strictJVMCheck)
	case PolicyMojangThenSystem:
		if sel, err := resolveMojang(ctx, required, mgr, jvmRootDir, strictJVMCheck); err == nil {
			return sel, nil
		}
		return resolveSystem(ctx, required, onCandidate)
	default:
		return Selection{}, fmt.Errorf("javart: unknown policy %d", policy)
	}
}

func resolveStatic(ctx context.Context, required int, path string) (Selection, error) {
	version, err := ProbeVersion(ctx, path)
	desc := core.JVMDescriptor{File: path}
	if err == nil && version != "" {
		desc.DetectedVersion = version
		if major, ok := core.ParseJVMMajor(version); ok {
			if score, ok := core.CompatScore(required, major); ok {
				desc.CompatScore = &score
			}
		}
	}
	return Selection{Descriptor: desc}, nil
}

func resolveSystem(ctx context.Context, required int, onCandidate func(Candidate)) (Selection, error) {
	paths := EnumerateSystemCandidates()
	candidates := ProbeAll(ctx, paths)
	if onCandidate != nil {
		for _, c := range candidates {
			onCandidate(c)
		}
	}

	best, score, ok := BestSystemCandidate(required, candidates)
	if !ok {
		return Selection{}, core.Newf(core.KindJvmNotFound, "", nil).WithDetail(strconv.Itoa(required))
	}

	s := score
	return Selection{Descriptor: core.JVMDescriptor{
		File:            best.File,
		DetectedVersion: best.Version,
		CompatScore:     &s,
	}}, nil
}

func resolveMojang(ctx context.Context, required int, mgr *download.Manager, jvmRootDir string, strictJVMCheck bool) (Selection, error) {
	distribution := core.DistributionForMajor(required)
	platform, err := MojangPlatformName()
	if err != nil {
		return Selection{}, core.Internal("jvm platform", err)
	}

	mm, err := FetchMetaManifest(ctx, mgr, jvmRootDir)
	if err != nil {
		return Selection{}, core.Newf(core.KindJvmNotFound, distribution, err).WithDetail(strconv.Itoa(required))
	}

	variant, ok := SelectVariant(mm, platform, distribution)
	if !ok {
		return Selection{}, core.Newf(core.KindJvmNotFound, distribution, nil).WithDetail(strconv.Itoa(required))
	}

	fm, err := FetchFileManifest(ctx, mgr, variant, jvmRootDir, distribution)
	if err != nil {
		return Selection{}, core.Newf(core.KindJvmNotFound, distribution, err).WithDetail(strconv.Itoa(required))
	}

	destDir := filepath.Join(jvmRootDir, distribution)
	plan := BuildPlan(fm, destDir, strictJVMCheck)

	exe := "java"
	execPath := filepath.Join(destDir, "bin", exe)

	return Selection{
		Descriptor: core.JVMDescriptor{
			File:            execPath,
			DetectedVersion: variant.Version.Name,
			ExecutableFiles: plan.Executables,
			Links:           toJVMLinks(plan.Links),
		},
		Plan: &plan,
	}, nil
}

func toJVMLinks(links []LinkStep) []core.JVMLink {
	out := make([]core.JVMLink, len(links))
	for i, l := range links {
		out[i] = core.JVMLink{Link: l.Link, Target: l.Target}
	}
	return out
}
