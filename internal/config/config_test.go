package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/quasar/mcinstall/internal/javart"
)

func testConfig(dataDir string) *Config {
	return &Config{
		DataDir:      dataDir,
		VersionsDir:  filepath.Join(dataDir, "versions"),
		LibrariesDir: filepath.Join(dataDir, "libraries"),
		AssetsDir:    filepath.Join(dataDir, "assets"),
		JVMDir:       filepath.Join(dataDir, "jvm"),
		BinDir:       filepath.Join(dataDir, "bin"),
		Concurrency:  4,
		MSAClientID:  DefaultMSAClientID,
	}
}

func TestConfigSaveAndReload(t *testing.T) {
	dataDir := t.TempDir()
	cfg := testConfig(dataDir)
	cfg.JavaPath = "/usr/bin/java"
	cfg.StrictLibrariesCheck = true

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dataDir, "config.json"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	reloaded := &Config{}
	if err := json.Unmarshal(data, reloaded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if reloaded.JavaPath != "/usr/bin/java" {
		t.Errorf("JavaPath = %q, want /usr/bin/java", reloaded.JavaPath)
	}
	if !reloaded.StrictLibrariesCheck {
		t.Error("expected StrictLibrariesCheck to round-trip as true")
	}
}

func TestConfigEnsureDirs(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested")
	cfg := testConfig(dataDir)

	if err := cfg.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	for _, dir := range []string{cfg.DataDir, cfg.VersionsDir, cfg.LibrariesDir, cfg.AssetsDir, cfg.JVMDir, cfg.BinDir} {
		fi, err := os.Stat(dir)
		if err != nil || !fi.IsDir() {
			t.Errorf("expected %s to exist as a directory", dir)
		}
	}
}

func TestInstallerOptionsCarriesDirectoryLayout(t *testing.T) {
	dataDir := t.TempDir()
	cfg := testConfig(dataDir)

	opts := cfg.InstallerOptions()
	if opts.MainDir != cfg.DataDir || opts.VersionsDir != cfg.VersionsDir || opts.LibrariesDir != cfg.LibrariesDir {
		t.Errorf("InstallerOptions did not carry over the directory layout: %+v", opts)
	}
	if opts.JVMPolicy != javart.PolicySystemThenMojang {
		t.Errorf("expected the auto-resolve policy with no JavaPath set, got %v", opts.JVMPolicy)
	}
}

func TestInstallerOptionsStaticJavaPolicy(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.JavaPath = "/opt/jdk/bin/java"

	opts := cfg.InstallerOptions()
	if opts.JVMPolicy != javart.PolicyStatic {
		t.Errorf("expected PolicyStatic when JavaPath is set, got %v", opts.JVMPolicy)
	}
	if opts.StaticJVMPath != "/opt/jdk/bin/java" {
		t.Errorf("StaticJVMPath = %q", opts.StaticJVMPath)
	}
}
