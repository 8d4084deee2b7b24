package forge

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/download"
	"github.com/quasar/mcinstall/internal/gav"
)

func sha1Hex(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

func TestFetchInstallerLibrariesDownloadsAndExtractsEmbedded(t *testing.T) {
	remoteData := []byte("remote-jar-bytes")
	mux := http.NewServeMux()
	mux.HandleFunc("/net/minecraftforge/mergetool/1.0/mergetool-1.0.jar", func(w http.ResponseWriter, r *http.Request) {
		w.Write(remoteData)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	installerJar := filepath.Join(t.TempDir(), "installer.jar")
	writeTestZip(t, installerJar, map[string]string{
		"maven/net/minecraftforge/forge/1.20.1-47.2.0/forge-1.20.1-47.2.0-universal.jar": "universal-jar-bytes",
	})

	libs := []core.Library{
		{
			Name: "net.minecraftforge:mergetool:1.0",
			Downloads: &core.LibraryDownloads{
				Artifact: &core.Artifact{
					URL:  srv.URL + "/net/minecraftforge/mergetool/1.0/mergetool-1.0.jar",
					Size: int64(len(remoteData)),
					SHA1: sha1Hex(remoteData),
				},
			},
		},
		{Name: "net.minecraftforge:forge:1.20.1-47.2.0:universal"},
	}

	librariesDir := t.TempDir()
	mgr := download.NewManager(1)
	if err := fetchInstallerLibraries(context.Background(), mgr, librariesDir, installerJar, libs); err != nil {
		t.Fatalf("fetchInstallerLibraries: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(librariesDir, "net/minecraftforge/mergetool/1.0/mergetool-1.0.jar"))
	if err != nil {
		t.Fatalf("ReadFile (remote): %v", err)
	}
	if string(got) != string(remoteData) {
		t.Errorf("got %q", got)
	}

	got, err = os.ReadFile(filepath.Join(librariesDir, "net/minecraftforge/forge/1.20.1-47.2.0/forge-1.20.1-47.2.0-universal.jar"))
	if err != nil {
		t.Fatalf("ReadFile (embedded): %v", err)
	}
	if string(got) != "universal-jar-bytes" {
		t.Errorf("got %q", got)
	}
}

func TestExtractEmbeddedLibraryMissingEntryFails(t *testing.T) {
	installerJar := filepath.Join(t.TempDir(), "installer.jar")
	writeTestZip(t, installerJar, map[string]string{"other": "x"})

	g, err := gav.Parse("net.minecraftforge:forge:1.20.1-47.2.0:universal")
	if err != nil {
		t.Fatalf("gav.Parse: %v", err)
	}
	if err := extractEmbeddedLibrary(installerJar, t.TempDir(), g); err == nil {
		t.Error("expected a missing maven/ entry to error")
	}
}
