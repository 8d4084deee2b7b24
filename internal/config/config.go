// Package config handles the installer's on-disk directory layout and
// persisted application configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/quasar/mcinstall/internal/installer"
	"github.com/quasar/mcinstall/internal/javart"
	"github.com/quasar/mcinstall/internal/rules"
)

// Config holds the application configuration.
type Config struct {
	// Paths
	DataDir      string `json:"dataDir"`
	VersionsDir  string `json:"versionsDir"`
	LibrariesDir string `json:"librariesDir"`
	AssetsDir    string `json:"assetsDir"`
	JVMDir       string `json:"jvmDir"`
	BinDir       string `json:"binDir"`

	// Java
	JavaPath string   `json:"javaPath"` // static JVM override; empty means auto-resolve
	JVMArgs  []string `json:"jvmArgs"`

	// Download/verification behavior
	Concurrency          int  `json:"concurrency"`
	StrictLibrariesCheck bool `json:"strictLibrariesCheck"`
	StrictJVMCheck       bool `json:"strictJVMCheck"`

	// Auth
	MSAClientID string `json:"msaClientID"`
}

const (
	DefaultMSAClientID = "c36a9fb6-4f2a-41ff-90bd-ae7cc92031eb"

	launcherName    = "mcinstall"
	launcherVersion = "0"
)

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	dataDir := getDefaultDataDir()
	return &Config{
		DataDir:              dataDir,
		VersionsDir:          filepath.Join(dataDir, "versions"),
		LibrariesDir:         filepath.Join(dataDir, "libraries"),
		AssetsDir:            filepath.Join(dataDir, "assets"),
		JVMDir:               filepath.Join(dataDir, "jvm"),
		BinDir:               filepath.Join(dataDir, "bin"),
		JVMArgs:              []string{"-Xmx2G", "-Xms512M"},
		Concurrency:          8,
		StrictLibrariesCheck: true,
		StrictJVMCheck:       false,
		MSAClientID:          DefaultMSAClientID,
	}
}

// Load reads config from disk, falling back to DefaultConfig when no
// config.json exists yet.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath := filepath.Join(cfg.DataDir, "config.json")
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.MSAClientID == "" {
		cfg.MSAClientID = DefaultMSAClientID
	}

	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	configPath := filepath.Join(c.DataDir, "config.json")
	return os.WriteFile(configPath, data, 0o644)
}

// EnsureDirs creates all required directories.
func (c *Config) EnsureDirs() error {
	dirs := []string{c.DataDir, c.VersionsDir, c.LibrariesDir, c.AssetsDir, c.JVMDir, c.BinDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// InstallerOptions builds the Base installer's Options from this config,
// carrying over the directory layout and strictness/concurrency settings
// so a caller never has to repeat them by hand.
func (c *Config) InstallerOptions() installer.Options {
	policy := javart.PolicySystemThenMojang
	if c.JavaPath != "" {
		policy = javart.PolicyStatic
	}
	return installer.Options{
		MainDir:              c.DataDir,
		VersionsDir:          c.VersionsDir,
		LibrariesDir:         c.LibrariesDir,
		AssetsDir:            c.AssetsDir,
		JVMDir:               c.JVMDir,
		BinDir:               c.BinDir,
		LauncherName:         launcherName,
		LauncherVersion:      launcherVersion,
		Env:                  rules.Current(),
		StrictLibrariesCheck: c.StrictLibrariesCheck,
		StrictJVMCheck:       c.StrictJVMCheck,
		JVMPolicy:            policy,
		StaticJVMPath:        c.JavaPath,
		Concurrency:          c.Concurrency,
	}
}

func getDefaultDataDir() string {
	// Check for portable mode first.
	exe, _ := os.Executable()
	portablePath := filepath.Join(filepath.Dir(exe), "data")
	if _, err := os.Stat(portablePath); err == nil {
		return portablePath
	}

	// Use XDG/platform-specific directories.
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, launcherName)
	}

	home, _ := os.UserHomeDir()
	switch {
	case os.Getenv("APPDATA") != "": // Windows
		return filepath.Join(os.Getenv("APPDATA"), launcherName)
	default: // Linux/macOS
		return filepath.Join(home, ".local", "share", launcherName)
	}
}
