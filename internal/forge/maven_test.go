package forge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hashicorp/go-retryablehttp"
)

func newTestMavenClient() *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.Logger = nil
	c.RetryMax = 0
	return c
}

const sampleMetadata = `<?xml version="1.0" encoding="UTF-8"?>
<metadata>
  <groupId>net.minecraftforge</groupId>
  <artifactId>forge</artifactId>
  <versioning>
    <versions>
      <version>1.20.1-47.1.0</version>
      <version>1.20.1-47.2.0</version>
      <version>1.20.1-47.2.1-beta</version>
    </versions>
  </versioning>
</metadata>`

func TestParseMavenVersions(t *testing.T) {
	got, err := parseMavenVersions(strings.NewReader(sampleMetadata))
	if err != nil {
		t.Fatalf("parseMavenVersions: %v", err)
	}
	want := []string{"1.20.1-47.1.0", "1.20.1-47.2.0", "1.20.1-47.2.1-beta"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseMavenVersionsNestedFails(t *testing.T) {
	malformed := `<metadata><versioning><versions><version>a<version>b</version></version></versions></versioning></metadata>`
	if _, err := parseMavenVersions(strings.NewReader(malformed)); err == nil {
		t.Error("expected nested <version> elements to error")
	}
}

func TestParseMavenVersionsMismatchedCloseFails(t *testing.T) {
	malformed := `<metadata><versioning><versions></version></versions></versioning></metadata>`
	if _, err := parseMavenVersions(strings.NewReader(malformed)); err == nil {
		t.Error("expected an unmatched </version> to error")
	}
}

func TestFetchMavenVersions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/maven-metadata.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleMetadata))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	got, err := fetchMavenVersions(context.Background(), newTestMavenClient(), srv.URL+"/maven-metadata.xml")
	if err != nil {
		t.Fatalf("fetchMavenVersions: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d versions, want 3", len(got))
	}
}

func TestFetchMavenVersionsNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/maven-metadata.xml", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	if _, err := fetchMavenVersions(context.Background(), newTestMavenClient(), srv.URL+"/maven-metadata.xml"); err == nil {
		t.Error("expected a 404 response to error")
	}
}

func TestResolveLatestVersionPicksLastMatchingStable(t *testing.T) {
	versions := []string{"1.20.1-47.1.0", "1.20.1-47.2.0", "1.20.1-47.2.1-beta", "1.19.2-43.0.0"}
	got, ok := resolveLatestVersion(versions, "1.20.1", true)
	if !ok {
		t.Fatal("expected a match")
	}
	if got != "1.20.1-47.2.0" {
		t.Errorf("got %q, want 1.20.1-47.2.0 (beta excluded)", got)
	}
}

func TestResolveLatestVersionUnstableAllowed(t *testing.T) {
	versions := []string{"1.20.1-47.1.0", "1.20.1-47.2.1-beta"}
	got, ok := resolveLatestVersion(versions, "1.20.1", false)
	if !ok || got != "1.20.1-47.2.1-beta" {
		t.Errorf("got (%q, %v), want (1.20.1-47.2.1-beta, true)", got, ok)
	}
}

func TestResolveLatestVersionNoMatch(t *testing.T) {
	versions := []string{"1.19.2-43.0.0"}
	if _, ok := resolveLatestVersion(versions, "1.20.1", false); ok {
		t.Error("expected no match for an absent game version prefix")
	}
}

func TestIsStableLoaderVersion(t *testing.T) {
	cases := map[string]bool{
		"47.2.0":      true,
		"47.2.1-beta": false,
		"47.2.1-RC1":  false,
		"47.2.1-pre3": false,
	}
	for v, want := range cases {
		if got := isStableLoaderVersion(v); got != want {
			t.Errorf("isStableLoaderVersion(%q) = %v, want %v", v, got, want)
		}
	}
}

func TestResolveLoaderVersionLiteralPassesThrough(t *testing.T) {
	got, err := resolveLoaderVersion(context.Background(), newTestMavenClient(), kindEntry{}, "1.20.1", VersionName("47.2.0"))
	if err != nil || got != "47.2.0" {
		t.Fatalf("got (%q, %v), want (47.2.0, nil)", got, err)
	}
}

func TestResolveLoaderVersionLatestResolvesAgainstMetadata(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/net/minecraftforge/forge/maven-metadata.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleMetadata))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	entry := kindEntry{repoURL: srv.URL, group: "net.minecraftforge", artifact: "forge"}
	got, err := resolveLoaderVersion(context.Background(), newTestMavenClient(), entry, "1.20.1", Latest(true))
	if err != nil {
		t.Fatalf("resolveLoaderVersion: %v", err)
	}
	if got != "1.20.1-47.2.0" {
		t.Errorf("got %q, want 1.20.1-47.2.0", got)
	}
}
