package installer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/download"
	"github.com/quasar/mcinstall/internal/integrity"
)

// legacyAssetIndexURLFormat builds the index URL for hierarchies that only
// declare a legacy "assets" id rather than a modern assetIndex block.
const legacyAssetIndexURLFormat = "https://s3.amazonaws.com/Minecraft.Download/indexes/%s.json"

// resolveAssets runs stage (g): locate the hierarchy's asset index (modern
// assetIndex or legacy assets id), fetch and parse it, and enqueue every
// object it names that isn't already present on disk. A
// hierarchy with neither is AssetsNotFound.
func (r *run) resolveAssets(h core.Hierarchy) (core.AssetIndex, *core.AssetsMapping, error) {
	r.setState(StateAssets)

	ref, legacyID := h.AssetIndexRef()
	if ref == nil && legacyID == "" {
		return core.AssetIndex{}, nil, core.Newf(core.KindAssetsNotFound, h.RootName(), nil)
	}

	var (
		indexID  string
		indexURL string
		size     int64
		sha1     string
	)
	if ref != nil {
		indexID, indexURL, size, sha1 = ref.ID, ref.URL, ref.Size, ref.SHA1
	} else {
		indexID = legacyID
		indexURL = fmt.Sprintf(legacyAssetIndexURLFormat, legacyID)
	}
	r.emit(LoadAssets{IndexID: indexID})

	indexDest := filepath.Join(r.opts.AssetsDir, "indexes", indexID+".json")
	want := integrity.Expectation{Size: size}
	if r.opts.StrictLibrariesCheck {
		want.Sha1 = sha1
	}
	ok, err := integrity.Verify(indexDest, want)
	if err != nil {
		return core.AssetIndex{}, nil, core.Internal(indexDest, err)
	}
	if !ok {
		if err := r.fetchNow(download.Entry{URL: indexURL, Dest: indexDest, Size: size, SHA1: want.Sha1, Mode: download.Cache}); err != nil {
			return core.AssetIndex{}, nil, core.Newf(core.KindAssetsNotFound, indexID, err)
		}
	}

	data, err := os.ReadFile(indexDest)
	if err != nil {
		return core.AssetIndex{}, nil, core.Internal(indexDest, err)
	}
	var idx core.AssetIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return core.AssetIndex{}, nil, core.Internal(indexDest, err)
	}
	r.emit(LoadedAssets{IndexID: indexID, Count: len(idx.Objects)})

	var mapping *core.AssetsMapping
	if idx.Virtual || idx.MapToResources {
		entries, err := idx.BuildMapping()
		if err != nil {
			return core.AssetIndex{}, nil, core.Internal(indexID, err)
		}
		mapping = &core.AssetsMapping{
			Entries:           entries,
			VirtualDir:        filepath.Join(r.opts.AssetsDir, "virtual", indexID),
			MirrorToResources: idx.MapToResources,
		}
	}

	objectsDir := filepath.Join(r.opts.AssetsDir, "objects")
	enqueued := map[string]bool{}
	missing := 0
	for _, obj := range idx.Objects {
		relPath, err := obj.ObjectPath()
		if err != nil {
			return core.AssetIndex{}, nil, core.Internal(indexID, err)
		}
		dest := filepath.Join(objectsDir, filepath.FromSlash(relPath))
		if enqueued[dest] {
			continue
		}

		ok, err := integrity.Verify(dest, integrity.Expectation{Size: obj.Size, Sha1: obj.Hash})
		if err != nil {
			return core.AssetIndex{}, nil, core.Internal(dest, err)
		}
		if ok {
			continue
		}

		enqueued[dest] = true
		missing++
		r.enqueue(download.Entry{
			URL:  assetObjectURL(obj.Hash),
			Dest: dest,
			Size: obj.Size,
			SHA1: obj.Hash,
			Mode: download.Cache,
		})
	}
	r.emit(VerifiedAssets{Missing: missing})

	return idx, mapping, nil
}

// assetObjectURL builds the resources.download.minecraft.net URL for a
// content-addressed asset object.
func assetObjectURL(hash string) string {
	return "https://resources.download.minecraft.net/" + hash[:2] + "/" + hash
}

// fetchNow runs a single blocking download immediately, used for files
// (the asset index itself, loader metadata) later stages need the
// contents of before the batch runs, rather than just a finalized path.
func (r *run) fetchNow(e download.Entry) error {
	return r.mgr.Single(r.ctx, e, nil)
}
