package javart

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/quasar/mcinstall/internal/download"
)

// MetaManifestURL is the Mojang JVM meta-manifest endpoint.
const MetaManifestURL = "https://piston-meta.mojang.com/v1/products/java-runtime/2ec0cc96c44e5a76b9c8b7c39df7210883d12871/all.json"

// metaManifest mirrors the upstream all.json shape: platform name to
// distribution name to a list of variants (Mojang keeps room for more than
// one, this engine always takes the first).
type metaManifest map[string]map[string][]metaVariant

type metaVariant struct {
	Manifest metaManifestRef    `json:"manifest"`
	Version  metaVariantVersion `json:"version"`
}

type metaVariantVersion struct {
	Name     string `json:"name"`
	Released string `json:"released"`
}

type metaManifestRef struct {
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// FileManifest is the per-distribution file listing a variant's manifest
// URL resolves to.
type FileManifest struct {
	Files map[string]ManifestFile `json:"files"`
}

// ManifestFile is one entry of a FileManifest: exactly one of Directory,
// File, or Link kind fields is populated.
type ManifestFile struct {
	Type       string           `json:"type"` // "directory", "file", "link"
	Executable bool             `json:"executable"`
	Downloads  *ManifestFileDLs `json:"downloads"`
	Target     string           `json:"target"` // populated when Type == "link"
}

// ManifestFileDLs holds the raw download descriptor for a "file" entry.
type ManifestFileDLs struct {
	Raw struct {
		SHA1 string `json:"sha1"`
		Size int64  `json:"size"`
		URL  string `json:"url"`
	} `json:"raw"`
}

// MojangPlatformName maps GOOS/GOARCH to the meta-manifest's platform key.
func MojangPlatformName() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if runtime.GOARCH == "386" {
			return "linux-i386", nil
		}
		return "linux", nil
	case "darwin":
		if runtime.GOARCH == "arm64" {
			return "mac-os-arm64", nil
		}
		return "mac-os", nil
	case "windows":
		if runtime.GOARCH == "386" {
			return "windows-x86", nil
		}
		if runtime.GOARCH == "arm64" {
			return "windows-arm64", nil
		}
		return "windows-x64", nil
	default:
		return "", fmt.Errorf("javart: unsupported platform %s/%s", runtime.GOOS, runtime.GOARCH)
	}
}

// FetchMetaManifest downloads and parses the JVM meta-manifest in Cache
// mode.
func FetchMetaManifest(ctx context.Context, mgr *download.Manager, cacheDir string) (metaManifest, error) {
	dest := filepath.Join(cacheDir, "all.json")
	if err := mgr.Single(ctx, download.Entry{URL: MetaManifestURL, Dest: dest, Mode: download.Cache}, nil); err != nil {
		return nil, fmt.Errorf("javart: fetching jvm meta manifest: %w", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		return nil, fmt.Errorf("javart: reading jvm meta manifest: %w", err)
	}
	var mm metaManifest
	if err := json.Unmarshal(data, &mm); err != nil {
		return nil, fmt.Errorf("javart: parsing jvm meta manifest: %w", err)
	}
	return mm, nil
}

// SelectVariant picks the platform+distribution's first variant
// ("use the first variant").
func SelectVariant(mm metaManifest, platform, distribution string) (metaVariant, bool) {
	dists, ok := mm[platform]
	if !ok {
		return metaVariant{}, false
	}
	variants, ok := dists[distribution]
	if !ok || len(variants) == 0 {
		return metaVariant{}, false
	}
	return variants[0], true
}

// FetchFileManifest downloads a variant's manifest (Cache mode) and
// parses its file listing.
func FetchFileManifest(ctx context.Context, mgr *download.Manager, v metaVariant, cacheDir, distribution string) (*FileManifest, error) {
	dest := filepath.Join(cacheDir, distribution+".json")
	err := mgr.Single(ctx, download.Entry{
		URL:  v.Manifest.URL,
		Dest: dest,
		Size: v.Manifest.Size,
		SHA1: v.Manifest.SHA1,
		Mode: download.Cache,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("javart: fetching %s file manifest: %w", distribution, err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		return nil, fmt.Errorf("javart: reading %s file manifest: %w", distribution, err)
	}
	var fm FileManifest
	if err := json.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("javart: parsing %s file manifest: %w", distribution, err)
	}
	return &fm, nil
}

// Plan is the result of processing a FileManifest: directories to create,
// files to download (download.Entry already carries Cache mode and,
// conditionally, a SHA1 to verify), and links to create during
// finalization.
type Plan struct {
	Directories []string
	Entries     []download.Entry
	Links       []LinkStep
	Executables []string
}

// LinkStep is a (link, target) pair recorded for finalization.
type LinkStep struct {
	Link   string
	Target string
}

// BuildPlan walks a FileManifest's entries relative to destDir and
// produces the download/link/executable-bit plan. strictJVMCheck gates
// whether file entries carry a SHA-1 to verify.
func BuildPlan(fm *FileManifest, destDir string, strictJVMCheck bool) Plan {
	var p Plan
	for rel, f := range fm.Files {
		full := filepath.Join(destDir, rel)
		switch f.Type {
		case "directory":
			p.Directories = append(p.Directories, full)
		case "file":
			e := download.Entry{Dest: full, Mode: download.Cache}
			if f.Downloads != nil {
				e.URL = f.Downloads.Raw.URL
				e.Size = f.Downloads.Raw.Size
				if strictJVMCheck {
					e.SHA1 = f.Downloads.Raw.SHA1
				}
			}
			p.Entries = append(p.Entries, e)
			if f.Executable {
				p.Executables = append(p.Executables, full)
			}
		case "link":
			p.Links = append(p.Links, LinkStep{Link: full, Target: f.Target})
		}
	}
	return p
}
