package mojang

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/download"
)

const versionManifestURL = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"

func manifestPath(cacheDir string) string {
	return filepath.Join(cacheDir, "version_manifest_v2.json")
}

// fetchManifest downloads (or reuses, per download.Cache's conditional-GET
// sidecar) the online version manifest and parses it. cacheDir is the
// directory the manifest file and its `.cache` sidecar live in.
func fetchManifest(ctx context.Context, mgr *download.Manager, cacheDir string) (core.Manifest, error) {
	dest := manifestPath(cacheDir)
	entry := download.Entry{URL: versionManifestURL, Dest: dest, Mode: download.Cache}
	if err := mgr.Single(ctx, entry, nil); err != nil {
		return core.Manifest{}, core.Internal(versionManifestURL, err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		return core.Manifest{}, core.Internal(dest, err)
	}
	var mm core.Manifest
	if err := json.Unmarshal(data, &mm); err != nil {
		return core.Manifest{}, core.Internal(dest, err)
	}

	// Download synthesizes each entry's {url, size?, sha1?} from the
	// manifest's own url/sha1 fields; size isn't published by Mojang for
	// manifest entries so invalidation only ever compares sha1.
	for i, v := range mm.Versions {
		mm.Versions[i].Download = &core.ManifestDownload{URL: v.URL, SHA1: v.SHA1}
	}
	return mm, nil
}

// find returns the manifest entry for id, if any.
func find(mm core.Manifest, id string) (core.ManifestVersion, bool) {
	for _, v := range mm.Versions {
		if v.ID == id {
			return v, true
		}
	}
	return core.ManifestVersion{}, false
}
