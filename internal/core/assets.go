package core

import "fmt"

// AssetIndex is the parsed contents of assets/indexes/<id>.json.
type AssetIndex struct {
	Objects        map[string]AssetObject `json:"objects"`
	Virtual        bool                   `json:"virtual,omitempty"`
	MapToResources bool                   `json:"map_to_resources,omitempty"`
}

// AssetObject is one entry of an asset index's "objects" map: a virtual
// path to a content-addressed {hash, size} pair.
type AssetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// ObjectPath returns the on-disk path of an asset object under
// <assets_dir>/objects: <hh>/<hash> where hh is the first
// two hex characters of the SHA-1.
func (o AssetObject) ObjectPath() (string, error) {
	if len(o.Hash) < 2 {
		return "", fmt.Errorf("core: malformed asset hash %q", o.Hash)
	}
	return o.Hash[:2] + "/" + o.Hash, nil
}

// MappedAsset is one entry of the virtual/map_to_resources mapping list,
// produced only when the index is flagged
// virtual or map_to_resources.
type MappedAsset struct {
	RelFile    string // virtual path, e.g. "icons/icon_16x16.png"
	ObjectFile string // object store path, e.g. "3e/3e25...'"
	Size       int64
}

// BuildMapping returns the (rel_file, object_file, size) list for every
// entry of the index, in map iteration order (asset verification order is
// unspecified).
func (idx AssetIndex) BuildMapping() ([]MappedAsset, error) {
	out := make([]MappedAsset, 0, len(idx.Objects))
	for rel, obj := range idx.Objects {
		objPath, err := obj.ObjectPath()
		if err != nil {
			return nil, err
		}
		out = append(out, MappedAsset{RelFile: rel, ObjectFile: objPath, Size: obj.Size})
	}
	return out, nil
}
