// Package core holds the installer's data model: version metadata schema,
// the inheritsFrom hierarchy, library resolution, asset index, JVM
// descriptor, and the final Game result.
package core

import (
	"time"

	"github.com/quasar/mcinstall/internal/rules"
)

// VersionType mirrors Mojang's "type" field.
type VersionType string

const (
	VersionTypeRelease  VersionType = "release"
	VersionTypeSnapshot VersionType = "snapshot"
	VersionTypeOldBeta  VersionType = "old_beta"
	VersionTypeOldAlpha VersionType = "old_alpha"
)

// Manifest is the root of Mojang's version_manifest_v2.json.
type Manifest struct {
	Latest   LatestVersions    `json:"latest"`
	Versions []ManifestVersion `json:"versions"`
}

// LatestVersions names the current release and snapshot.
type LatestVersions struct {
	Release  string `json:"release"`
	Snapshot string `json:"snapshot"`
}

// ManifestVersion is one entry of the manifest's "versions" array.
type ManifestVersion struct {
	ID          string          `json:"id"`
	Type        VersionType     `json:"type"`
	URL         string          `json:"url"`
	Time        time.Time       `json:"time"`
	ReleaseTime time.Time       `json:"releaseTime"`
	SHA1        string          `json:"sha1"`
	Download    *ManifestDownload `json:"-"` // derived: {url, size?, sha1?} synthesized from URL+SHA1 above
}

// ManifestDownload is the derived {url, size?, sha1?} triple for a manifest
// entry, used by the Mojang layer's invalidation check.
type ManifestDownload struct {
	URL  string
	Size int64
	SHA1 string
}

// VersionMeta is the parsed contents of a single <name>.json file.
type VersionMeta struct {
	ID                 string         `json:"id"`
	InheritsFrom       string         `json:"inheritsFrom,omitempty"`
	Type               VersionType    `json:"type,omitempty"`
	MainClass          string         `json:"mainClass,omitempty"`
	MinecraftArguments string         `json:"minecraftArguments,omitempty"`
	Arguments          *Arguments     `json:"arguments,omitempty"`
	Libraries          []Library      `json:"libraries,omitempty"`
	AssetIndex         *AssetIndexRef `json:"assetIndex,omitempty"`
	Assets             string         `json:"assets,omitempty"`
	Downloads          Downloads      `json:"downloads,omitempty"`
	Logging            *Logging       `json:"logging,omitempty"`
	JavaVersion        *JavaVersionReq `json:"javaVersion,omitempty"`
	ReleaseTime        time.Time      `json:"releaseTime,omitempty"`
	Time               time.Time      `json:"time,omitempty"`
}

// Arguments is the modern split jvm/game argument schema. Each slice entry
// is either a bare string literal or a {rules, value} conditional, so it is
// decoded into ArgEntry rather than json.RawMessage/interface{} directly.
type Arguments struct {
	Game []ArgEntry `json:"game"`
	JVM  []ArgEntry `json:"jvm"`
}

// ArgEntry is one element of a modern argument vector: a literal, or a
// rule-gated single/multi value.
type ArgEntry struct {
	Literal string // set when this entry is a bare string
	Rules   []rules.Rule
	Values  []string // one for a scalar "value", many for an array "value"
}

// Library is a dependency entry from the "libraries" array.
type Library struct {
	Name      string            `json:"name"`
	URL       string            `json:"url,omitempty"`
	Path      string            `json:"path,omitempty"` // override relative path, rare
	Downloads *LibraryDownloads `json:"downloads,omitempty"`
	Rules     []rules.Rule      `json:"rules,omitempty"`
	Natives   map[string]string `json:"natives,omitempty"`
}

// LibraryDownloads carries artifact download info for a library.
type LibraryDownloads struct {
	Artifact    *Artifact            `json:"artifact,omitempty"`
	Classifiers map[string]*Artifact `json:"classifiers,omitempty"`
}

// Artifact is a downloadable file: its relative path, expected size/sha1,
// and source URL.
type Artifact struct {
	Path string `json:"path,omitempty"`
	SHA1 string `json:"sha1,omitempty"`
	Size int64  `json:"size,omitempty"`
	URL  string `json:"url"`
}

// AssetIndexRef points at an asset index file plus its own integrity info.
type AssetIndexRef struct {
	ID              string `json:"id"`
	SHA1            string `json:"sha1"`
	Size            int64  `json:"size"`
	TotalSize       int64  `json:"totalSize"`
	URL             string `json:"url"`
	Virtual         bool   `json:"-"` // derived from the index's own flag after fetch, not this ref
	MapToResources  bool   `json:"-"`
}

// Downloads is the "downloads" map of a version's client/server artifacts.
type Downloads struct {
	Client         *Artifact `json:"client,omitempty"`
	ClientMappings *Artifact `json:"client_mappings,omitempty"`
	Server         *Artifact `json:"server,omitempty"`
	ServerMappings *Artifact `json:"server_mappings,omitempty"`
}

// Logging carries the "logging.client" block.
type Logging struct {
	Client *LoggingClient `json:"client,omitempty"`
}

// LoggingClient names the logger config argument template and the file to
// fetch it from.
type LoggingClient struct {
	Argument string   `json:"argument"`
	File     Artifact `json:"file"`
	Type     string   `json:"type"`
}

// JavaVersionReq is the "javaVersion" block.
type JavaVersionReq struct {
	Component    string `json:"component"`
	MajorVersion int    `json:"majorVersion"`
}

// DefaultJavaMajor is used when a hierarchy never specifies javaVersion.
const DefaultJavaMajor = 8

// DistributionForMajor returns Mojang's default JVM distribution component
// name for a given required major version.
func DistributionForMajor(major int) string {
	switch {
	case major >= 21:
		return "java-runtime-delta"
	case major >= 17:
		return "java-runtime-gamma"
	case major >= 16:
		return "java-runtime-alpha"
	default:
		return "jre-legacy"
	}
}
