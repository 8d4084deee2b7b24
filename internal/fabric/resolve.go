package fabric

import (
	"context"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/quasar/mcinstall/internal/core"
)

// resolveGameVersion resolves v against /versions/game when it's an
// alias; a literal GameName passes through without a network call.
// Stable takes the first entry the server marks stable; an Unstable
// request takes the first entry outright, since the list is already
// newest-first.
func resolveGameVersion(ctx context.Context, client *retryablehttp.Client, baseURL string, v GameVersion) (string, error) {
	if v.mode == "" {
		return v.name, nil
	}
	entries, err := fetchGameVersions(ctx, client, baseURL)
	if err != nil {
		return "", core.Internal(baseURL+"/versions/game", err)
	}
	for _, e := range entries {
		if v.mode == "unstable" {
			return e.Version, nil
		}
		if e.Stable != nil && *e.Stable {
			return e.Version, nil
		}
	}
	return "", core.Newf(core.KindLatestVersionNotFound, "game", nil).WithDetail(v.mode)
}

// resolveLoaderVersion resolves v against /versions/loader/<game> when
// it's an alias; a literal LoaderName passes through without a network
// call.
func resolveLoaderVersion(ctx context.Context, client *retryablehttp.Client, baseURL, game string, v LoaderVersion) (string, error) {
	if v.mode == "" {
		return v.name, nil
	}
	entries, _, err := fetchLoaderVersionsForGame(ctx, client, baseURL, game)
	if err != nil {
		return "", core.Internal(baseURL+"/versions/loader/"+game, err)
	}
	wantStable := v.mode == "stable"
	for _, e := range entries {
		if isLoaderStable(e) == wantStable {
			return e.Loader.Version, nil
		}
	}
	return "", core.Newf(core.KindLatestVersionNotFound, "loader", nil).WithDetail(v.mode)
}
