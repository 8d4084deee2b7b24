package forge

import (
	"context"
	"os"
	"path/filepath"

	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/download"
	"github.com/quasar/mcinstall/internal/gav"
	"github.com/quasar/mcinstall/internal/rules"
)

// fetchInstallerLibraries resolves libs the same way the Base installer
// resolves a hierarchy's own libraries, then materializes each one under
// librariesDir: libraries that carry a download URL go through mgr's
// batch engine; libraries the installer embeds itself (no URL — legacy
// Forge's universal jar, or a modern installer's maven/ fallback) are
// extracted directly from installerJarPath's maven/ directory.
func fetchInstallerLibraries(ctx context.Context, mgr *download.Manager, librariesDir, installerJarPath string, libs []core.Library) error {
	resolved, err := core.ResolveLibraries(libs, rules.Current(), map[gav.GAV]bool{})
	if err != nil {
		return err
	}

	var entries []download.Entry
	var embedded []core.ResolvedLibrary
	for _, lib := range resolved {
		if lib.Artifact != nil && lib.Artifact.URL != "" {
			dest := filepath.Join(librariesDir, lib.GAV.FilePath(string(os.PathSeparator)))
			entries = append(entries, download.Entry{
				URL: lib.Artifact.URL, Dest: dest,
				Size: lib.Artifact.Size, SHA1: lib.Artifact.SHA1,
				Mode: download.Cache,
			})
			continue
		}
		embedded = append(embedded, lib)
	}

	if len(entries) > 0 {
		if err := mgr.Batch(ctx, entries, nil); err != nil {
			return core.Newf(core.KindDownload, installerJarPath, err)
		}
	}

	for _, lib := range embedded {
		if err := extractEmbeddedLibrary(installerJarPath, librariesDir, lib.GAV); err != nil {
			return err
		}
	}
	return nil
}

// extractEmbeddedLibrary copies one library out of the installer archive's
// maven/ directory (the layout every Forge installer generation uses for
// libraries it ships itself rather than pointing at a remote repository).
func extractEmbeddedLibrary(installerJarPath, librariesDir string, g gav.GAV) error {
	entryName := "maven/" + g.URLForm()
	data, ok, err := readZipEntry(installerJarPath, entryName)
	if err != nil {
		return err
	}
	if !ok {
		return core.Newf(core.KindInstallerFileNotFound, entryName, nil)
	}
	dest := filepath.Join(librariesDir, g.FilePath(string(os.PathSeparator)))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return core.Internal(dest, err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return core.Internal(dest, err)
	}
	return nil
}
