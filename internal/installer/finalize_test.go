package installer

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/quasar/mcinstall/internal/core"
)

// buildNativesJar writes a real zip archive with exactly the entry names
// given in files, using the standard library directly so the on-disk entry
// names are exact rather than however archiver.Archive chooses to lay out
// a directory tree.
func buildNativesJar(t *testing.T, dir, jarName string, files map[string]string) string {
	t.Helper()
	jarPath := filepath.Join(dir, jarName)
	f, err := os.Create(jarPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return jarPath
}

func TestFinalizeLibrariesIsDeterministicAcrossOrdering(t *testing.T) {
	r1 := newTestRun(t, Options{})
	r2 := newTestRun(t, Options{})
	r1.opts.BinDir = r2.opts.BinDir // share the same root so uuids are comparable

	jarA := buildNativesJar(t, t.TempDir(), "a.jar", map[string]string{"liba.so": "a"})
	jarB := buildNativesJar(t, t.TempDir(), "b.jar", map[string]string{"libb.so": "b"})

	dir1, err := r1.finalizeLibraries(core.LibrariesFiles{Natives: []string{jarA, jarB}})
	if err != nil {
		t.Fatalf("finalizeLibraries: %v", err)
	}
	dir2, err := r2.finalizeLibraries(core.LibrariesFiles{Natives: []string{jarB, jarA}})
	if err != nil {
		t.Fatalf("finalizeLibraries: %v", err)
	}
	if filepath.Base(dir1) != filepath.Base(dir2) {
		t.Errorf("bin_uuid depends on input order: %q vs %q", dir1, dir2)
	}
}

func TestFinalizeLibrariesExtractsAndTrimsVersionedSo(t *testing.T) {
	r := newTestRun(t, Options{})
	jar := buildNativesJar(t, t.TempDir(), "natives.jar", map[string]string{
		"libopenal.so.1.19.1": "payload",
		"META-INF/MANIFEST.MF": "ignored",
		"readme.txt":           "ignored",
	})

	binDir, err := r.finalizeLibraries(core.LibrariesFiles{Natives: []string{jar}})
	if err != nil {
		t.Fatalf("finalizeLibraries: %v", err)
	}

	versioned := filepath.Join(binDir, "libopenal.so.1.19.1")
	if _, err := os.Stat(versioned); err != nil {
		t.Errorf("expected versioned file extracted: %v", err)
	}
	trimmed := filepath.Join(binDir, "libopenal.so")
	if _, err := os.Lstat(trimmed); err != nil {
		t.Errorf("expected trimmed link created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(binDir, "readme.txt")); err == nil {
		t.Error("expected non-native file to be skipped")
	}
}

func TestFinalizeLibrariesSymlinksBareNativesFile(t *testing.T) {
	r := newTestRun(t, Options{})
	srcDir := t.TempDir()
	bare := filepath.Join(srcDir, "liblwjgl.so.3.3.1")
	if err := os.WriteFile(bare, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}

	binDir, err := r.finalizeLibraries(core.LibrariesFiles{Natives: []string{bare}})
	if err != nil {
		t.Fatalf("finalizeLibraries: %v", err)
	}

	versioned := filepath.Join(binDir, "liblwjgl.so.3.3.1")
	if _, err := os.Lstat(versioned); err != nil {
		t.Errorf("expected bare natives file linked: %v", err)
	}
	if data, err := os.ReadFile(versioned); err != nil || string(data) != "payload" {
		t.Errorf("linked file content mismatch: %v %q", err, data)
	}
	trimmed := filepath.Join(binDir, "liblwjgl.so")
	if _, err := os.Lstat(trimmed); err != nil {
		t.Errorf("expected trimmed link created for bare natives file: %v", err)
	}
}

func TestFinalizeAssetsHardlinksAndMirrorsToResources(t *testing.T) {
	r := newTestRun(t, Options{})
	objPath := filepath.Join(r.opts.AssetsDir, "objects", "3e", "3e25")
	if err := os.MkdirAll(filepath.Dir(objPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(objPath, []byte("icon-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	mapping := &core.AssetsMapping{
		Entries:           []core.MappedAsset{{RelFile: "icons/icon.png", ObjectFile: "3e/3e25", Size: int64(len("icon-bytes"))}},
		VirtualDir:        filepath.Join(r.opts.AssetsDir, "virtual", "legacy"),
		MirrorToResources: true,
	}

	if err := r.finalizeAssets(mapping); err != nil {
		t.Fatalf("finalizeAssets: %v", err)
	}

	virtual := filepath.Join(mapping.VirtualDir, "icons", "icon.png")
	if data, err := os.ReadFile(virtual); err != nil || string(data) != "icon-bytes" {
		t.Errorf("virtual copy missing or wrong: %v %q", err, data)
	}
	resource := filepath.Join(r.opts.MainDir, "resources", "icons", "icon.png")
	if data, err := os.ReadFile(resource); err != nil || string(data) != "icon-bytes" {
		t.Errorf("resources mirror missing or wrong: %v %q", err, data)
	}
}

func TestFinalizeJvmChmodsExecutables(t *testing.T) {
	r := newTestRun(t, Options{})
	exe := filepath.Join(t.TempDir(), "java")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := r.finalizeJVM(core.JVMDescriptor{ExecutableFiles: []string{exe}}); err != nil {
		t.Fatalf("finalizeJVM: %v", err)
	}

	info, err := os.Stat(exe)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&0o111 == 0 {
		t.Errorf("expected at least one execute bit set, got mode %v", info.Mode())
	}
}
