package forge

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/quasar/mcinstall/internal/core"
)

// newMavenClient builds a retryablehttp client with logging disabled,
// matching the Fabric-family layer's own meta-API client.
func newMavenClient() *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.Logger = nil
	return c
}

// resolveLoaderVersion resolves opts.LoaderVersion against entry's
// maven-metadata.xml when the caller asked for the latest build, otherwise
// returns the literal version string unchanged.
func resolveLoaderVersion(ctx context.Context, client *retryablehttp.Client, entry kindEntry, gameVersion string, lv Version) (string, error) {
	if !lv.latest {
		return lv.literal, nil
	}
	metadataURL := entry.repoURL + "/" + strings.ReplaceAll(entry.group, ".", "/") + "/" + entry.artifact + "/maven-metadata.xml"
	versions, err := fetchMavenVersions(ctx, client, metadataURL)
	if err != nil {
		return "", err
	}
	v, ok := resolveLatestVersion(versions, gameVersion, lv.stable)
	if !ok {
		return "", core.Newf(core.KindLatestVersionNotFound, gameVersion, nil)
	}
	return v, nil
}

// fetchMavenVersions streams a maven-metadata.xml document and returns
// every <version> element's text, in the document's own order (Maven lists
// them oldest-first). A one-shot Unmarshal into a nested struct would work
// too, but a streamed token walk mirrors how the reference implementation
// avoids buffering the whole document just to pull out repeated leaves.
func fetchMavenVersions(ctx context.Context, client *retryablehttp.Client, url string) ([]string, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, core.Internal(url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, core.Internal(url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, core.Newf(core.KindMavenMetadataMalformed, url, nil)
	}
	versions, err := parseMavenVersions(resp.Body)
	if err != nil {
		return nil, core.Newf(core.KindMavenMetadataMalformed, url, err)
	}
	return versions, nil
}

// parseMavenVersions walks dec's tokens, collecting character data found
// directly inside a top-level <version> element and nothing else; any
// nested/mismatched element while already inside one aborts the parse,
// matching a malformed document rather than silently returning a partial
// list.
func parseMavenVersions(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	var versions []string
	inVersion := false
	var cur strings.Builder

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "version" {
				if inVersion {
					return nil, errUnexpectedNesting
				}
				inVersion = true
				cur.Reset()
			}
		case xml.CharData:
			if inVersion {
				cur.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "version" {
				if !inVersion {
					return nil, errUnexpectedNesting
				}
				versions = append(versions, cur.String())
				inVersion = false
			}
		}
	}
	return versions, nil
}

var errUnexpectedNesting = xml.UnmarshalError("forge: nested or mismatched <version> element in maven-metadata.xml")

// resolveLatestVersion picks the most recent entry of versions (assumed
// oldest-first, Maven's own listing order) whose string is prefixed by
// gamePrefix + "-", optionally further restricted to versions this
// package's stability heuristic accepts.
func resolveLatestVersion(versions []string, gamePrefix string, stable bool) (string, bool) {
	best := ""
	found := false
	for _, v := range versions {
		if !strings.HasPrefix(v, gamePrefix+"-") {
			continue
		}
		if stable && !isStableLoaderVersion(v) {
			continue
		}
		best = v
		found = true
	}
	return best, found
}

// isStableLoaderVersion applies the same kind of suffix heuristic the
// Fabric-family meta API's "stable" flag would, since Forge's
// maven-metadata.xml carries no explicit stability marker of its own.
func isStableLoaderVersion(v string) bool {
	lower := strings.ToLower(v)
	return !strings.Contains(lower, "-beta") && !strings.Contains(lower, "-rc") && !strings.Contains(lower, "-pre")
}
