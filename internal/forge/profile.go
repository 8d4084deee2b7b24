package forge

import (
	"encoding/json"

	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/gav"
)

// sidedValue is a client/server pair from the install profile's "data"
// section; a processor's args reference one of these by its map key.
type sidedValue struct {
	Client string `json:"client"`
	Server string `json:"server"`
}

// processorSpec is one entry of the modern install profile's "processors"
// array. Jar and Classpath are GAV strings; Args is the templated
// argument vector; Outputs maps a (possibly templated) path to its
// expected SHA-1.
type processorSpec struct {
	Sides     []string          `json:"sides"`
	Jar       string            `json:"jar"`
	Classpath []string          `json:"classpath"`
	Args      []string          `json:"args"`
	Outputs   map[string]string `json:"outputs"`
}

// modernProfile is the shape of a 1.13+ installer's install_profile.json.
type modernProfile struct {
	Spec      int                    `json:"spec"`
	Profile   string                 `json:"profile"`
	Version   string                 `json:"version"`
	Minecraft string                 `json:"minecraft"`
	Path      *string                `json:"path"`
	Data      map[string]sidedValue  `json:"data"`
	Processors []processorSpec       `json:"processors"`
	Libraries []core.Library         `json:"libraries"`
}

// legacyProfile is the shape of a pre-1.13 installer's install_profile.json:
// no processors/data, just a pointer at the already-patched universal jar
// (install.path/install.filePath) and a full embedded version descriptor.
type legacyProfile struct {
	Install struct {
		ProfileName string `json:"profileName"`
		Target      string `json:"target"`
		Path        string `json:"path"` // GAV of the universal/patched jar
		FilePath    string `json:"filePath"`
		Minecraft   string `json:"minecraft"`
	} `json:"install"`
	VersionInfo core.VersionMeta `json:"versionInfo"`
}

// installProfile is the normalized view this package works with
// regardless of which installer generation produced it.
type installProfile struct {
	minecraft  string // the vanilla game version the installer patches
	libraries  []core.Library
	data       map[string]sidedValue
	processors []processorSpec
	meta       core.VersionMeta // the synthesized version's metadata, id not yet overridden
}

// parseInstallerProfile extracts and normalizes the installer's embedded
// profile. A modern installer carries install_profile.json and a separate
// version.json; a legacy one carries only install_profile.json with an
// embedded "versionInfo" object and no processor graph at all — its
// "universal jar" library already is the patched client, addressed via
// install.path the same way any other installer-embedded library is.
func parseInstallerProfile(installerJarPath string) (installProfile, error) {
	profileRaw, ok, err := readZipEntry(installerJarPath, "install_profile.json")
	if err != nil {
		return installProfile{}, err
	}
	if !ok {
		return installProfile{}, core.Newf(core.KindInstallerProfileNotFound, installerJarPath, nil)
	}

	if versionRaw, ok, err := readZipEntry(installerJarPath, "version.json"); err == nil && ok {
		return parseModernProfile(profileRaw, versionRaw)
	} else if err != nil {
		return installProfile{}, err
	}
	return parseLegacyProfile(profileRaw)
}

func parseModernProfile(profileRaw, versionRaw []byte) (installProfile, error) {
	var p modernProfile
	if err := json.Unmarshal(profileRaw, &p); err != nil {
		return installProfile{}, core.Newf(core.KindInstallerProfileIncoherent, "install_profile.json", nil)
	}
	var meta core.VersionMeta
	if err := json.Unmarshal(versionRaw, &meta); err != nil {
		return installProfile{}, core.Newf(core.KindInstallerProfileIncoherent, "version.json", nil)
	}
	if p.Minecraft == "" {
		return installProfile{}, core.Newf(core.KindInstallerProfileIncoherent, "install_profile.json", nil).WithDetail("missing minecraft version")
	}

	libs := p.Libraries
	if p.Path != nil {
		libs = append(libs, core.Library{Name: *p.Path})
	}

	return installProfile{
		minecraft:  p.Minecraft,
		libraries:  libs,
		data:       p.Data,
		processors: p.Processors,
		meta:       meta,
	}, nil
}

func parseLegacyProfile(profileRaw []byte) (installProfile, error) {
	var p legacyProfile
	if err := json.Unmarshal(profileRaw, &p); err != nil {
		return installProfile{}, core.Newf(core.KindInstallerProfileIncoherent, "install_profile.json", nil)
	}
	if p.Install.Minecraft == "" {
		return installProfile{}, core.Newf(core.KindInstallerProfileIncoherent, "install_profile.json", nil).WithDetail("missing install.minecraft")
	}

	libs := p.VersionInfo.Libraries
	if p.Install.Path != "" {
		if g, err := gav.Parse(p.Install.Path); err == nil {
			listed := false
			for _, lib := range libs {
				if lg, err := gav.Parse(lib.Name); err == nil && lg == g {
					listed = true
					break
				}
			}
			if !listed {
				libs = append(libs, core.Library{Name: p.Install.Path})
			}
		}
	}

	return installProfile{
		minecraft:  p.Install.Minecraft,
		libraries:  libs,
		processors: nil,
		meta:       p.VersionInfo,
	}, nil
}
