package fabric

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/quasar/mcinstall/internal/core"
)

// gameVersionEntry is one element of /versions/game.
type gameVersionEntry struct {
	Version string `json:"version"`
	Stable  *bool  `json:"stable"`
}

// loaderVersionEntry is one element of /versions/loader and
// /versions/loader/<game>; the meta server nests the interesting fields
// under "loader" alongside intermediary/launcherMeta blocks this
// installer has no use for.
type loaderVersionEntry struct {
	Loader struct {
		Separator string `json:"separator"`
		Build     int    `json:"build"`
		Maven     string `json:"maven"`
		Version   string `json:"version"`
		Stable    *bool  `json:"stable"`
	} `json:"loader"`
}

// isLoaderStable applies a fallback heuristic when the meta server omits
// "stable" on a loader entry: treat it as stable iff its version string
// names neither a beta nor a pre-release.
func isLoaderStable(e loaderVersionEntry) bool {
	if e.Loader.Stable != nil {
		return *e.Loader.Stable
	}
	return !strings.Contains(e.Loader.Version, "-beta") && !strings.Contains(e.Loader.Version, "-pre")
}

func newClient() *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.Logger = nil
	return c
}

// getJSON GETs url and decodes its body into out, returning the HTTP
// status code alongside any error so callers can distinguish a decode
// failure from a 400/404 the way the loader-version-vs-game-version
// probe needs to.
func getJSON(ctx context.Context, client *retryablehttp.Client, url string, out interface{}) (int, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("fabric: %s: unexpected status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("fabric: %s: decoding response: %w", url, err)
	}
	return resp.StatusCode, nil
}

func fetchGameVersions(ctx context.Context, client *retryablehttp.Client, baseURL string) ([]gameVersionEntry, error) {
	var entries []gameVersionEntry
	if _, err := getJSON(ctx, client, baseURL+"/versions/game", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func fetchLoaderVersionsForGame(ctx context.Context, client *retryablehttp.Client, baseURL, game string) ([]loaderVersionEntry, int, error) {
	var entries []loaderVersionEntry
	status, err := getJSON(ctx, client, baseURL+"/versions/loader/"+game, &entries)
	return entries, status, err
}

func fetchProfile(ctx context.Context, client *retryablehttp.Client, baseURL, game, loader string) (core.VersionMeta, int, error) {
	var meta core.VersionMeta
	url := baseURL + "/versions/loader/" + game + "/" + loader + "/profile/json"
	status, err := getJSON(ctx, client, url, &meta)
	return meta, status, err
}

// GameVersionInfo is the caller-facing view of a /versions/game entry.
type GameVersionInfo struct {
	Version string
	Stable  bool
}

// ListGameVersions returns l's full game version list in the meta
// server's reported order, for callers building their own version
// picker rather than relying on the installer's Stable/Unstable alias
// resolution.
func ListGameVersions(ctx context.Context, l Loader) ([]GameVersionInfo, error) {
	entry, ok := l.lookup()
	if !ok {
		return nil, fmt.Errorf("fabric: unknown loader %v", l)
	}
	entries, err := fetchGameVersions(ctx, newClient(), entry.baseURL)
	if err != nil {
		return nil, err
	}
	out := make([]GameVersionInfo, len(entries))
	for i, e := range entries {
		out[i] = GameVersionInfo{Version: e.Version, Stable: e.Stable != nil && *e.Stable}
	}
	return out, nil
}

// LoaderVersionInfo is the caller-facing view of a /versions/loader entry.
type LoaderVersionInfo struct {
	Version string
	Stable  bool
}

// ListLoaderVersions returns l's full, game-independent loader version
// list from /versions/loader.
func ListLoaderVersions(ctx context.Context, l Loader) ([]LoaderVersionInfo, error) {
	entry, ok := l.lookup()
	if !ok {
		return nil, fmt.Errorf("fabric: unknown loader %v", l)
	}
	var entries []loaderVersionEntry
	if _, err := getJSON(ctx, newClient(), entry.baseURL+"/versions/loader", &entries); err != nil {
		return nil, err
	}
	out := make([]LoaderVersionInfo, len(entries))
	for i, e := range entries {
		out[i] = LoaderVersionInfo{Version: e.Loader.Version, Stable: isLoaderStable(e)}
	}
	return out, nil
}
