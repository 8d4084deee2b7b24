package core

import "github.com/quasar/mcinstall/internal/rules"

// Hierarchy is the ordered chain of version metadata produced by following
// inheritsFrom from a root_version. Index 0 is the requested (most-derived)
// version; later indices are successively less derived ancestors.
type Hierarchy struct {
	Names []string
	Metas []VersionMeta
}

// RootName is the name the hierarchy was requested for.
func (h Hierarchy) RootName() string {
	if len(h.Names) == 0 {
		return ""
	}
	return h.Names[0]
}

// MainClass returns the first non-empty mainClass in hierarchy order, or
// an error if none of the chain declares one.
func (h Hierarchy) MainClass() (string, error) {
	for _, m := range h.Metas {
		if m.MainClass != "" {
			return m.MainClass, nil
		}
	}
	return "", Newf(KindMainClassNotFound, h.RootName(), nil)
}

// VersionType returns the first non-empty type in hierarchy order.
func (h Hierarchy) VersionType() VersionType {
	for _, m := range h.Metas {
		if m.Type != "" {
			return m.Type
		}
	}
	return ""
}

// ClientDownload returns the first hierarchy level's downloads.client entry.
func (h Hierarchy) ClientDownload() *Artifact {
	for _, m := range h.Metas {
		if m.Downloads.Client != nil {
			return m.Downloads.Client
		}
	}
	return nil
}

// AssetIndexRef returns the first hierarchy level's assetIndex, along with
// the first legacy "assets" id if no modern assetIndex is present anywhere.
func (h Hierarchy) AssetIndexRef() (*AssetIndexRef, string) {
	for _, m := range h.Metas {
		if m.AssetIndex != nil {
			return m.AssetIndex, ""
		}
	}
	for _, m := range h.Metas {
		if m.Assets != "" {
			return nil, m.Assets
		}
	}
	return nil, ""
}

// LoggingClient returns the first hierarchy level's logging.client block.
func (h Hierarchy) LoggingClient() *LoggingClient {
	for _, m := range h.Metas {
		if m.Logging != nil && m.Logging.Client != nil {
			return m.Logging.Client
		}
	}
	return nil
}

// JavaVersion returns the first hierarchy level's javaVersion, defaulting
// to major 8 / component jre-legacy when none of the chain specifies one.
func (h Hierarchy) JavaVersion() JavaVersionReq {
	for _, m := range h.Metas {
		if m.JavaVersion != nil {
			req := *m.JavaVersion
			if req.MajorVersion == 0 {
				req.MajorVersion = DefaultJavaMajor
			}
			if req.Component == "" {
				req.Component = DistributionForMajor(req.MajorVersion)
			}
			return req
		}
	}
	return JavaVersionReq{MajorVersion: DefaultJavaMajor, Component: DistributionForMajor(DefaultJavaMajor)}
}

// Arguments walks the hierarchy in order (most-derived first) and
// accumulates the jvm/game argument templates.
func (h Hierarchy) Arguments(env rules.Environment) AccumulatedArguments {
	var acc AccumulatedArguments
	for _, m := range h.Metas {
		acc.Accumulate(m, env)
	}
	return acc
}

// LibraryLevels returns each hierarchy level's raw library list, in
// hierarchy order (most-derived first).
//
// Natives classifier resolution, rule evaluation and first-wins
// de-duplication keyed by GAV-with-wildcarded-version happen in
// ResolveLibraries, which internal/installer calls once per level; this
// method only supplies the raw per-level library lists in the right order.
func (h Hierarchy) LibraryLevels() [][]Library {
	levels := make([][]Library, len(h.Metas))
	for i, m := range h.Metas {
		levels[i] = m.Libraries
	}
	return levels
}
