package fabric

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/quasar/mcinstall/internal/core"
	"github.com/quasar/mcinstall/internal/events"
	"github.com/quasar/mcinstall/internal/installer"
)

func TestHandleNeedVersionWritesOverriddenIDAndRetries(t *testing.T) {
	profile := core.VersionMeta{ID: "fabric-loader-0.15.11-1.20.4", MainClass: "net.fabricmc.loader.impl.launch.knot.KnotClient"}
	mux := http.NewServeMux()
	mux.HandleFunc("/versions/loader/1.20.4/0.15.11/profile/json", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(profile)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	file := filepath.Join(dir, "versions", "fabric-loader-1.20.4-0.15.11", "fabric-loader-1.20.4-0.15.11.json")
	retry := false

	h := &handler{
		ctx: context.Background(), client: newTestClient(), baseURL: srv.URL,
		game: "1.20.4", loader: "0.15.11", rootName: "fabric-loader-1.20.4-0.15.11",
	}
	h.Handle(installer.NeedVersion{Name: h.rootName, File: file, Retry: &retry})

	if !retry {
		t.Fatal("expected retry to be set true on success")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("expected the version file to be written: %v", err)
	}
	var written core.VersionMeta
	if err := json.Unmarshal(data, &written); err != nil {
		t.Fatalf("unmarshal written file: %v", err)
	}
	if written.ID != h.rootName {
		t.Errorf("ID = %q, want %q (overridden to the synthesized name)", written.ID, h.rootName)
	}
	if written.MainClass != profile.MainClass {
		t.Errorf("MainClass = %q, want %q (rest of the profile preserved)", written.MainClass, profile.MainClass)
	}
}

func TestHandleNeedVersionIgnoresOtherNames(t *testing.T) {
	h := &handler{ctx: context.Background(), client: newTestClient(), rootName: "fabric-loader-1.20.4-0.15.11"}
	retry := false
	h.Handle(installer.NeedVersion{Name: "1.20.4", File: "/tmp/unused.json", Retry: &retry})
	if retry {
		t.Error("expected an unrelated NeedVersion to be left alone")
	}
}

func TestClassifyMissingGameVersionNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/versions/loader/does-not-exist", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	h := &handler{ctx: context.Background(), client: newTestClient(), baseURL: srv.URL, game: "does-not-exist"}
	err := h.classifyMissing()
	cerr, ok := err.(*core.Error)
	if !ok || cerr.Kind != core.KindGameVersionNotFound {
		t.Errorf("expected KindGameVersionNotFound, got %v", err)
	}
}

func TestClassifyMissingLoaderVersionNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/versions/loader/1.20.4", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"loader":{"version":"0.15.11"}}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	h := &handler{ctx: context.Background(), client: newTestClient(), baseURL: srv.URL, game: "1.20.4", loader: "9.9.9"}
	err := h.classifyMissing()
	cerr, ok := err.(*core.Error)
	if !ok || cerr.Kind != core.KindLoaderVersionNotFound {
		t.Errorf("expected KindLoaderVersionNotFound, got %v", err)
	}
}

func TestHandlerForwardsWrappedEvents(t *testing.T) {
	var got []events.Event
	h := &handler{
		ctx: context.Background(), rootName: "fabric-loader-1.20.4-0.15.11",
		inner: events.HandlerFunc(func(e events.Event) { got = append(got, e) }),
	}
	h.Handle(installer.LoadedFeatures{Features: map[string]bool{"x": true}})

	if len(got) != 1 {
		t.Fatalf("expected exactly one forwarded event, got %d", len(got))
	}
	wrapped, ok := got[0].(Event)
	if !ok {
		t.Fatalf("expected a fabric.Event wrapper, got %T", got[0])
	}
	if _, ok := wrapped.Unwrap().(installer.LoadedFeatures); !ok {
		t.Errorf("expected the wrapped event to unwrap to installer.LoadedFeatures, got %T", wrapped.Unwrap())
	}
}
