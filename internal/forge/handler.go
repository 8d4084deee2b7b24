package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/download"
	"github.com/quasar/mcinstall/internal/events"
	"github.com/quasar/mcinstall/internal/gav"
	"github.com/quasar/mcinstall/internal/installer"
	"github.com/quasar/mcinstall/internal/javart"
	"github.com/quasar/mcinstall/internal/mojang"
)

// handler wraps a caller's events.Handler, inserting the NeedVersion hook
// that runs the whole installer-processor pipeline for this install's
// synthesized root name.
type handler struct {
	ctx           context.Context
	client        *retryablehttp.Client
	mgr           *download.Manager
	entry         kindEntry
	rootName      string
	loaderVersion string
	opts          Options
	inner         events.Handler

	err error
}

func (h *handler) Handle(e events.Event) {
	if nv, ok := events.Unwrap(e).(installer.NeedVersion); ok && nv.Name == h.rootName {
		h.err = h.install(nv)
	}
	if h.inner != nil {
		h.inner.Handle(Event{Inner: e})
	}
}

func (h *handler) emit(e events.Event) {
	if h.inner != nil {
		h.inner.Handle(Event{Inner: e})
	}
}

func (h *handler) librariesDir() string {
	if h.opts.Mojang.Installer.LibrariesDir != "" {
		return h.opts.Mojang.Installer.LibrariesDir
	}
	return filepath.Join(h.opts.Mojang.Installer.MainDir, "libraries")
}

// install runs the full multi-stage Forge/NeoForge install in a temporary directory and, on success, writes the
// synthesized version file and asks Base to retry.
func (h *handler) install(nv installer.NeedVersion) error {
	tmp := h.opts.TmpDir
	if tmp == "" {
		var err error
		tmp, err = os.MkdirTemp("", "mcinstall-forge-*")
		if err != nil {
			return core.Internal("tmp dir", err)
		}
		defer os.RemoveAll(tmp)
	}
	h.emit(Installing{TmpDir: tmp, Reason: ReasonMissingVersionMetadata})

	installerGAV, err := h.installerGAV(h.loaderVersion)
	if err != nil {
		return err
	}

	h.emit(FetchInstaller{Version: h.loaderVersion})
	installerPath := filepath.Join(tmp, "installer.jar")
	installerURL := h.entry.repoURL + "/" + installerGAV.URLForm()
	if err := h.mgr.Single(h.ctx, download.Entry{URL: installerURL, Dest: installerPath, Mode: download.Force}, nil); err != nil {
		return core.Newf(core.KindInstallerFileNotFound, installerURL, err)
	}
	h.emit(FetchedInstaller{Version: h.loaderVersion})

	profile, err := parseInstallerProfile(installerPath)
	if err != nil {
		return err
	}

	h.emit(InstallingGame{GameVersion: profile.minecraft})
	gameOpts := h.opts.Mojang
	gameOpts.GameVersion = mojang.Name(profile.minecraft)
	if _, err := mojang.Install(h.ctx, gameOpts, events.HandlerFunc(h.emit)); err != nil {
		return err
	}

	librariesDir := h.librariesDir()
	h.emit(FetchInstallerLibraries{Count: len(profile.libraries)})
	if err := fetchInstallerLibraries(h.ctx, h.mgr, librariesDir, installerPath, profile.libraries); err != nil {
		return err
	}
	h.emit(FetchedInstallerLibraries{})

	extractedDir := filepath.Join(tmp, "extracted")
	if err := os.MkdirAll(extractedDir, 0o755); err != nil {
		return core.Internal(extractedDir, err)
	}
	if err := extractZipTo(installerPath, extractedDir); err != nil {
		return err
	}

	if len(profile.processors) > 0 {
		javaExe, err := h.resolveJava()
		if err != nil {
			return err
		}
		if err := runProcessors(h.ctx, javaExe, librariesDir, extractedDir, profile, "client", h.emit); err != nil {
			return err
		}
	}

	meta := profile.meta
	meta.ID = h.rootName
	if meta.InheritsFrom == "" {
		meta.InheritsFrom = profile.minecraft
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return core.Internal(nv.File, err)
	}
	if err := os.MkdirAll(filepath.Dir(nv.File), 0o755); err != nil {
		return core.Internal(nv.File, err)
	}
	if err := os.WriteFile(nv.File, data, 0o644); err != nil {
		return core.Internal(nv.File, err)
	}

	h.emit(Installed{Name: h.rootName})
	*nv.Retry = true
	return nil
}

// installerGAV builds the installer artifact's coordinate. Classic Forge
// encodes the game version into the artifact's own version string
// ("<game>-<loader>"); NeoForge's version already uniquely identifies a
// build without repeating the game version. A Forge loader version that
// already starts with "<game>-" (as a resolved Latest does) is used as is.
func (h *handler) installerGAV(loaderVersion string) (gav.GAV, error) {
	version := loaderVersion
	if h.opts.Kind == Forge && !strings.HasPrefix(loaderVersion, h.opts.GameVersion+"-") {
		version = h.opts.GameVersion + "-" + loaderVersion
	}
	return gav.New(h.entry.group, h.entry.artifact, version, "installer", "jar")
}

func (h *handler) resolveJava() (string, error) {
	if h.opts.JavaPolicy == javart.PolicyStatic {
		if h.opts.StaticJavaPath == "" {
			return "", fmt.Errorf("forge: static java policy requires StaticJavaPath")
		}
		return h.opts.StaticJavaPath, nil
	}
	required := h.opts.RequiredJavaMajor
	if required == 0 {
		required = core.DefaultJavaMajor
	}
	jvmDir := filepath.Join(h.opts.Mojang.Installer.MainDir, "jvm")
	sel, err := javart.Resolve(h.ctx, h.opts.JavaPolicy, required, h.opts.StaticJavaPath, h.mgr, jvmDir, h.opts.Mojang.Installer.StrictJVMCheck, nil)
	if err != nil {
		return "", err
	}
	return sel.Descriptor.File, nil
}
